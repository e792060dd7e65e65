// Package main provides the interactive Provena chat agent. It connects a
// Gemini-backed conversation loop to the Provena registry, search, datastore
// and provenance APIs through a catalog of callable tools.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/provena/provagent/internal/auth"
	"github.com/provena/provagent/internal/catalog"
	"github.com/provena/provagent/internal/config"
	"github.com/provena/provagent/internal/gateway"
	"github.com/provena/provagent/internal/orchestrator"
	"github.com/provena/provagent/internal/provena"
	"github.com/provena/provagent/internal/provider/gemini"
	provider "github.com/provena/provagent/internal/provider/models"
	"github.com/provena/provagent/internal/ui"
	"google.golang.org/genai"
)

const systemPrompt = "You are connected to Provena tools and prompts. Use them to help the user access and search Provena data. " +
	"Available prompts can be called using get_prompt_<name> to get structured workflow instructions. " +
	"The user can authenticate using login_to_provena. " +
	"For dataset registration, use get_prompt_dataset_registration_workflow to get the structured workflow. " +
	"Autonomously chain multiple tool calls to complete tasks end-to-end without asking for another user prompt. " +
	"Only request confirmation for destructive/irreversible actions. When done, return a concise final answer."

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config          *config.Config
	UI              ui.UserInterface
	ProviderFactory func(context.Context) (provider.Provider, error)
}

func createRealProviderFactory(cfg *config.Config) func(context.Context) (provider.Provider, error) {
	return func(ctx context.Context) (provider.Provider, error) {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}

		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}

		return gemini.New(gemini.NewRealGeminiClient(genaiClient), cfg.Model.Name), nil
	}
}

func createProvenaClient(cfg *config.Config, authState *auth.State) *provena.Client {
	endpoints := provena.Endpoints{
		Datastore: cfg.Provena.Endpoints.DatastoreAPI,
		Registry:  cfg.Provena.Endpoints.RegistryAPI,
		Prov:      cfg.Provena.Endpoints.ProvAPI,
		Search:    cfg.Provena.Endpoints.SearchAPI,
	}
	return provena.NewHTTPClient(endpoints, authState.AccessToken)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	deps := Dependencies{
		Config:          cfg,
		UI:              ui.NewConsole(os.Stdin, os.Stdout),
		ProviderFactory: createRealProviderFactory(cfg),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, deps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, deps Dependencies) error {
	cfg := deps.Config
	userInterface := deps.UI
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(log)

	userInterface.WriteStatus("thinking", "Initializing AI...")
	providerClient, err := deps.ProviderFactory(ctx)
	if err != nil {
		return fmt.Errorf("initializing provider: %w", err)
	}

	flow := auth.NewKeycloakDeviceFlow(
		cfg.Provena.Domain,
		cfg.Provena.Realm,
		cfg.Provena.ClientID,
		func(verificationURL, userCode string) {
			userInterface.WriteMessage(fmt.Sprintf(
				"To authenticate, open %s and enter the code **%s**.", verificationURL, userCode))
		},
	)
	authState := auth.New(flow, cfg.Provena.TokenFile)
	client := createProvenaClient(cfg, authState)

	cat := catalog.New()
	gw := gateway.New(authState, client, cfg.Chat, log.With("component", "gateway"))

	if err := providerClient.DefineTools(ctx, cat.ToolDefinitions()); err != nil {
		return fmt.Errorf("registering tools: %w", err)
	}

	policy := orchestrator.NewConfirmationPolicy(cfg.Chat.ConfirmPrefixes)
	orch := orchestrator.New(
		providerClient,
		gw,
		cat,
		policy,
		userInterface,
		systemPrompt,
		cfg.Chat.MaxToolRounds,
		log.With("component", "orchestrator"),
	)

	userInterface.WriteStatus("ready", fmt.Sprintf("Connected with %d tools and %d prompts. Model: %s",
		len(cat.ToolNames()), len(cat.PromptNames()), providerClient.GetModel()))
	userInterface.WriteMessage("Chat started! Commands: 'quit', 'exit'\n\nAsk me anything about Provena data!")

	for {
		input, err := userInterface.ReadInput(ctx, "You: ")
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		lowered := strings.ToLower(input)
		if lowered == "quit" || lowered == "exit" {
			return nil
		}

		if _, err := orch.RunTurn(ctx, input); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			userInterface.WriteStatus("error", fmt.Sprintf("Error: %v", err))
		}
	}
}
