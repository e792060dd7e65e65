// Package orchestrator drives the chat loop: it feeds the conversation to the
// model, executes the tool calls the model requests, and keeps cycling until
// the model answers in plain text or the round cap trips.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/provena/provagent/internal/catalog"
	"github.com/provena/provagent/internal/gateway"
	"github.com/provena/provagent/internal/orchestrator/models"
	provider "github.com/provena/provagent/internal/provider/models"
	"github.com/provena/provagent/internal/ui"
)

// TurnState is the terminal state of one user turn.
type TurnState string

const (
	// TurnDone means the model produced a final text answer.
	TurnDone TurnState = "done"

	// TurnAborted means the round cap tripped before a final answer.
	TurnAborted TurnState = "aborted"
)

// TurnResult summarizes a completed user turn.
type TurnResult struct {
	State  TurnState
	Rounds int
}

// ToolExecutor dispatches a real tool call to its implementation.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, args map[string]any) gateway.Outcome
}

// PromptSource resolves prompt pseudo-tools into instruction text.
type PromptSource interface {
	RenderPrompt(callName string, args map[string]any) (string, error)
}

// Orchestrator manages the agent loop, tool execution, and conversation history.
type Orchestrator struct {
	provider provider.Provider
	executor ToolExecutor
	prompts  PromptSource
	policy   *ConfirmationPolicy
	ui       ui.UserInterface
	log      *slog.Logger

	maxRounds int
	history   []models.Message
}

// New creates an Orchestrator seeded with a system prompt.
func New(
	p provider.Provider,
	executor ToolExecutor,
	prompts PromptSource,
	policy *ConfirmationPolicy,
	userInterface ui.UserInterface,
	systemPrompt string,
	maxRounds int,
	log *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		provider:  p,
		executor:  executor,
		prompts:   prompts,
		policy:    policy,
		ui:        userInterface,
		log:       log,
		maxRounds: maxRounds,
		history: []models.Message{
			{Role: models.RoleSystem, Content: systemPrompt},
		},
	}
}

// History returns a copy of the conversation so far.
func (o *Orchestrator) History() []models.Message {
	out := make([]models.Message, len(o.history))
	copy(out, o.history)
	return out
}

// RunTurn processes one user input to completion. Within the turn the model
// may request any number of tool batches; each batch is executed in order and
// every requested call gets exactly one tool message before the next model
// round. Tool failures are absorbed into those messages and never abort the
// turn.
func (o *Orchestrator) RunTurn(ctx context.Context, userInput string) (TurnResult, error) {
	o.history = append(o.history, models.Message{
		Role:    models.RoleUser,
		Content: userInput,
	})

	rounds := 0
	for {
		if err := ctx.Err(); err != nil {
			return TurnResult{State: TurnAborted, Rounds: rounds}, err
		}
		rounds++
		if rounds > o.maxRounds {
			o.log.Warn("round cap reached", "max_rounds", o.maxRounds)
			o.ui.WriteStatus("aborted", "Stopping after too many tool rounds.")
			return TurnResult{State: TurnAborted, Rounds: o.maxRounds}, nil
		}

		o.ui.WriteStatus("thinking", "Generating response...")
		response, err := o.provider.Generate(ctx, &provider.GenerateRequest{History: o.history})
		if err != nil {
			return TurnResult{State: TurnAborted, Rounds: rounds}, fmt.Errorf("provider error: %w", err)
		}

		switch response.Content.Type {
		case provider.ResponseTypeToolCall:
			if len(response.Content.ToolCalls) == 0 {
				o.history = append(o.history, models.Message{
					Role:    models.RoleSystem,
					Content: "Error: empty tool call list",
				})
				continue
			}

			// The assistant message carrying the requests goes in before any
			// execution so tool messages always follow their origin.
			o.history = append(o.history, models.Message{
				Role:      models.RoleAssistant,
				ToolCalls: response.Content.ToolCalls,
			})
			for _, call := range response.Content.ToolCalls {
				o.executeCall(ctx, call)
			}

		case provider.ResponseTypeText:
			o.ui.WriteMessage(response.Content.Text)
			o.history = append(o.history, models.Message{
				Role:    models.RoleAssistant,
				Content: response.Content.Text,
			})
			return TurnResult{State: TurnDone, Rounds: rounds}, nil

		default:
			o.history = append(o.history, models.Message{
				Role:    models.RoleSystem,
				Content: fmt.Sprintf("Error: unknown response type %v", response.Content.Type),
			})
		}
	}
}

// executeCall resolves one requested call into history messages. Prompt
// pseudo-tools expand into a tool message plus a system instruction message;
// everything else produces exactly one tool message.
func (o *Orchestrator) executeCall(ctx context.Context, call models.ToolCall) {
	o.log.Debug("tool call requested", "tool", call.Name, "call_id", call.ID)
	o.ui.WriteToolEvent(call.Name, formatArgs(call.Args))

	if catalog.IsPromptCall(call.Name) {
		o.expandPrompt(ctx, call)
		return
	}

	if o.policy.RequiresConfirmation(call.Name) {
		decision, err := o.ui.ReadPermission(ctx, confirmationPrompt(call))
		if err != nil {
			o.appendToolResult(call, gateway.Errorf("failed to read confirmation: %s", err).JSON())
			return
		}
		if decision != ui.DecisionAllow {
			o.log.Info("user declined tool call", "tool", call.Name)
			o.ui.WriteToolEvent(call.Name, "cancelled")
			o.appendToolResult(call, gateway.Cancelled(call.Name).JSON())
			return
		}
	}

	outcome := o.executor.Execute(ctx, call.Name, call.Args)
	o.ui.WriteToolEvent(call.Name, outcome.Status)
	o.appendToolResult(call, outcome.JSON())
}

// expandPrompt feeds the rendered prompt back twice: as the tool result the
// model asked for, and as a standing system instruction for the rest of the
// conversation.
func (o *Orchestrator) expandPrompt(ctx context.Context, call models.ToolCall) {
	text, err := o.prompts.RenderPrompt(call.Name, call.Args)
	if err != nil {
		o.appendToolResult(call, gateway.Errorf("%s", err).JSON())
		return
	}
	o.appendToolResult(call, text)
	o.history = append(o.history, models.Message{
		Role:    models.RoleSystem,
		Content: "Workflow Instructions: " + text,
	})
}

func (o *Orchestrator) appendToolResult(call models.ToolCall, content string) {
	o.history = append(o.history, models.Message{
		Role:       models.RoleTool,
		ToolCallID: call.ID,
		ToolName:   call.Name,
		Content:    content,
	})
}

func confirmationPrompt(call models.ToolCall) string {
	return fmt.Sprintf(
		"You are about to call '%s' with the following arguments:\n%s\nWould you like to proceed with this action?",
		call.Name, formatArgs(call.Args),
	)
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	pretty, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return string(pretty)
}
