// Package gateway executes the agent's tools against the Provena services
// and normalizes every result into a success/error/cancelled outcome. Errors
// are absorbed into outcomes here; nothing a tool does can abort a chat turn.
package gateway

import (
	"context"
	"log/slog"

	"github.com/provena/provagent/internal/auth"
	"github.com/provena/provagent/internal/config"
	"github.com/provena/provagent/internal/provena"
)

type handler func(ctx context.Context, args map[string]any) Outcome

// Gateway dispatches tool calls by name.
type Gateway struct {
	auth     *auth.State
	client   *provena.Client
	cfg      config.ChatConfig
	log      *slog.Logger
	handlers map[string]handler
}

// New builds a gateway over an auth state and a Provena client.
func New(authState *auth.State, client *provena.Client, cfg config.ChatConfig, log *slog.Logger) *Gateway {
	g := &Gateway{
		auth:   authState,
		client: client,
		cfg:    cfg,
		log:    log,
	}
	g.handlers = map[string]handler{
		"check_authentication_status":        g.checkAuthenticationStatus,
		"login_to_provena":                   g.loginToProvena,
		"logout_from_provena":                g.logoutFromProvena,
		"get_current_date":                   g.getCurrentDate,
		"search_registry":                    g.searchRegistry,
		"fetch_registry_item":                g.fetchRegistryItem,
		"list_registry_items":                g.listRegistryItems,
		"get_registry_items_count":           g.getRegistryItemsCount,
		"explore_upstream":                   g.exploreUpstream,
		"explore_downstream":                 g.exploreDownstream,
		"research_entity":                    g.researchEntity,
		"find_related_entities":              g.findRelatedEntities,
		"create_model":                       g.createModel,
		"create_dataset_template":            g.createDatasetTemplate,
		"create_model_run_workflow_template": g.createWorkflowTemplate,
		"create_dataset":                     g.createDataset,
		"create_person":                      g.createPerson,
		"create_organisation":                g.createOrganisation,
		"create_model_run":                   g.createModelRun,
	}
	return g
}

// Execute runs the named tool. Unknown names resolve to an error outcome so
// the model can correct itself on the next round.
func (g *Gateway) Execute(ctx context.Context, name string, args map[string]any) Outcome {
	h, ok := g.handlers[name]
	if !ok {
		g.log.Warn("unknown tool requested", "tool", name)
		return Errorf("unknown tool %q", name)
	}
	g.log.Debug("executing tool", "tool", name)
	return h(ctx, args)
}

// ToolNames returns the names of every dispatchable tool.
func (g *Gateway) ToolNames() []string {
	names := make([]string, 0, len(g.handlers))
	for name := range g.handlers {
		names = append(names, name)
	}
	return names
}

// requireAuth gates tools that talk to Provena services.
func (g *Gateway) requireAuth() (Outcome, bool) {
	if g.auth.IsAuthenticated() {
		return Outcome{}, true
	}
	return Errorf("Authentication required. Use login_to_provena first."), false
}

func handleURL(id string) string {
	return "https://hdl.handle.net/" + id
}
