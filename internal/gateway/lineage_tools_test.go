package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/provena/provagent/internal/provena"
)

func graphOf(ids ...string) map[string]any {
	nodes := make([]any, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, map[string]any{"id": id})
	}
	return map[string]any{"nodes": nodes, "edges": []any{}}
}

func lineage(ids ...string) *provena.LineageResponse {
	return &provena.LineageResponse{Status: okStatus(), Graph: graphOf(ids...)}
}

func TestExplore_DefaultDepth(t *testing.T) {
	var gotDepth int
	client := &provena.Client{
		Prov: &provena.MockProv{
			ExploreUpstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				gotDepth = depth
				return lineage("10378.1/a", "10378.1/b"), nil
			},
		},
	}
	g := newTestGateway(t, client, true)

	outcome := g.Execute(context.Background(), "explore_upstream", map[string]any{
		"starting_id": "10378.1/root",
	})

	if outcome.Status != StatusSuccess {
		t.Fatalf("Expected success, got: %+v", outcome)
	}
	if gotDepth != 1 {
		t.Errorf("Expected default depth 1, got: %d", gotDepth)
	}
	summary, _ := outcome.Payload["summary"].(map[string]any)
	if summary["nodes"] != 2 {
		t.Errorf("Expected 2 nodes in summary, got: %v", summary["nodes"])
	}
}

func TestExplore_RequiresStartingID(t *testing.T) {
	g := newTestGateway(t, nil, true)

	outcome := g.Execute(context.Background(), "explore_downstream", map[string]any{})

	if outcome.Status != StatusError {
		t.Fatalf("Expected error, got: %s", outcome.Status)
	}
}

func TestResearchEntity_AggregatesLineage(t *testing.T) {
	items := map[string]map[string]any{
		"10378.1/root": {"id": "10378.1/root", "item_subtype": "DATASET", "item_category": "ENTITY"},
		"10378.1/up":   {"id": "10378.1/up", "item_subtype": "MODEL_RUN"},
		"10378.1/down": {"id": "10378.1/down", "item_subtype": "DATASET"},
	}
	client := &provena.Client{
		Registry: &provena.MockRegistry{
			GeneralFetchItemFunc: func(ctx context.Context, id string) (*provena.FetchResponse, error) {
				item, ok := items[id]
				if !ok {
					return nil, errors.New("not found")
				}
				return &provena.FetchResponse{Status: okStatus(), Item: item}, nil
			},
		},
		Prov: &provena.MockProv{
			ExploreUpstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage("10378.1/root", "10378.1/up"), nil
			},
			ExploreDownstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage("10378.1/root", "10378.1/down"), nil
			},
			GetContributingDatasetsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			GetEffectedDatasetsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			GetContributingAgentsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			GetEffectedAgentsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
		},
	}
	g := newTestGateway(t, client, true)

	outcome := g.Execute(context.Background(), "research_entity", map[string]any{
		"entity_id": "10378.1/root",
	})

	if outcome.Status != StatusSuccess {
		t.Fatalf("Expected success, got: %+v", outcome)
	}
	related, _ := outcome.Payload["related_entities"].(map[string]any)
	if len(related) != 2 {
		t.Errorf("Expected 2 related entities (root excluded), got: %d", len(related))
	}
	stats, _ := outcome.Payload["statistics"].(map[string]int)
	if stats["model_runs"] != 1 || stats["datasets"] != 1 {
		t.Errorf("Unexpected statistics: %+v", stats)
	}
	if _, ok := outcome.Payload["contributing_agents"]; !ok {
		t.Error("Expected agent views for a DATASET entity")
	}
}

func TestResearchEntity_AgentsExcludable(t *testing.T) {
	agentsCalled := false
	client := &provena.Client{
		Registry: &provena.MockRegistry{
			GeneralFetchItemFunc: func(ctx context.Context, id string) (*provena.FetchResponse, error) {
				return &provena.FetchResponse{
					Status: okStatus(),
					Item:   map[string]any{"id": id, "item_subtype": "MODEL_RUN", "item_category": "ACTIVITY"},
				}, nil
			},
		},
		Prov: &provena.MockProv{
			ExploreUpstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			ExploreDownstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			GetContributingDatasetsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			GetEffectedDatasetsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			GetContributingAgentsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				agentsCalled = true
				return lineage(), nil
			},
			GetEffectedAgentsFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				agentsCalled = true
				return lineage(), nil
			},
		},
	}
	g := newTestGateway(t, client, true)

	outcome := g.Execute(context.Background(), "research_entity", map[string]any{
		"entity_id":              "10378.1/run",
		"include_related_agents": false,
	})

	if outcome.Status != StatusSuccess {
		t.Fatalf("Expected success, got: %+v", outcome)
	}
	if agentsCalled {
		t.Error("Expected agent views to be skipped when include_related_agents=false")
	}
}

func TestFindRelated_CreatedByOnlyForAgents(t *testing.T) {
	client := &provena.Client{
		Registry: &provena.MockRegistry{
			GeneralFetchItemFunc: func(ctx context.Context, id string) (*provena.FetchResponse, error) {
				return &provena.FetchResponse{
					Status: okStatus(),
					Item:   map[string]any{"id": id, "item_subtype": "DATASET"},
				}, nil
			},
		},
	}
	g := newTestGateway(t, client, true)

	outcome := g.Execute(context.Background(), "find_related_entities", map[string]any{
		"entity_id":         "10378.1/ds",
		"relationship_type": "created_by",
	})

	if outcome.Status != StatusError {
		t.Fatalf("Expected error, got: %s", outcome.Status)
	}
	msg, _ := outcome.Payload["message"].(string)
	if !strings.Contains(msg, "only valid for PERSON or ORGANISATION") {
		t.Errorf("Unexpected message: %q", msg)
	}
}

func TestFindRelated_ScansAssociationsForPerson(t *testing.T) {
	personID := "10378.1/person"
	runItem := map[string]any{
		"id":           "10378.1/run",
		"item_subtype": "MODEL_RUN",
		"display_name": "Run 1",
		"associations": map[string]any{"modeller_id": personID},
	}
	items := map[string]map[string]any{
		personID:      {"id": personID, "item_subtype": "PERSON", "display_name": "Ada"},
		"10378.1/run": runItem,
	}
	client := &provena.Client{
		Registry: &provena.MockRegistry{
			GeneralFetchItemFunc: func(ctx context.Context, id string) (*provena.FetchResponse, error) {
				item, ok := items[id]
				if !ok {
					return nil, errors.New("not found")
				}
				return &provena.FetchResponse{Status: okStatus(), Item: item}, nil
			},
			ListGeneralItemsFunc: func(ctx context.Context) (*provena.ListResponse, error) {
				return &provena.ListResponse{
					Status: okStatus(),
					Items:  []map[string]any{{"id": "10378.1/run"}},
				}, nil
			},
		},
		Prov: &provena.MockProv{
			ExploreUpstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
			ExploreDownstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
		},
	}
	g := newTestGateway(t, client, true)

	outcome := g.Execute(context.Background(), "find_related_entities", map[string]any{
		"entity_id": personID,
	})

	if outcome.Status != StatusSuccess {
		t.Fatalf("Expected success, got: %+v", outcome)
	}
	if outcome.Payload["total_count"] != 1 {
		t.Fatalf("Expected 1 related entity, got: %v", outcome.Payload["total_count"])
	}
	all, _ := outcome.Payload["all_entities"].([]map[string]any)
	if all[0]["relationship"] != "created_by" {
		t.Errorf("Expected created_by relationship, got: %+v", all[0])
	}
	if all[0]["handle_url"] != "https://hdl.handle.net/10378.1/run" {
		t.Errorf("Unexpected handle_url: %v", all[0]["handle_url"])
	}
}

func TestFindRelated_TypeFilter(t *testing.T) {
	items := map[string]map[string]any{
		"10378.1/root": {"id": "10378.1/root", "item_subtype": "DATASET"},
		"10378.1/run":  {"id": "10378.1/run", "item_subtype": "MODEL_RUN"},
		"10378.1/ds":   {"id": "10378.1/ds", "item_subtype": "DATASET"},
	}
	client := &provena.Client{
		Registry: &provena.MockRegistry{
			GeneralFetchItemFunc: func(ctx context.Context, id string) (*provena.FetchResponse, error) {
				item, ok := items[id]
				if !ok {
					return nil, errors.New("not found")
				}
				return &provena.FetchResponse{Status: okStatus(), Item: item}, nil
			},
		},
		Prov: &provena.MockProv{
			ExploreUpstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage("10378.1/run", "10378.1/ds"), nil
			},
			ExploreDownstreamFunc: func(ctx context.Context, startingID string, depth int) (*provena.LineageResponse, error) {
				return lineage(), nil
			},
		},
	}
	g := newTestGateway(t, client, true)

	outcome := g.Execute(context.Background(), "find_related_entities", map[string]any{
		"entity_id":    "10378.1/root",
		"entity_types": "model_run",
	})

	if outcome.Status != StatusSuccess {
		t.Fatalf("Expected success, got: %+v", outcome)
	}
	if outcome.Payload["total_count"] != 1 {
		t.Errorf("Expected filter to keep only model runs, got: %v", outcome.Payload["total_count"])
	}
}
