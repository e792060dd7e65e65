package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/provena/provagent/internal/provena"
)

type exploreRequest struct {
	StartingID string `json:"starting_id"`
	Depth      int    `json:"depth"`
}

func (r *exploreRequest) Validate() error {
	if strings.TrimSpace(r.StartingID) == "" {
		return fmt.Errorf("starting_id is required")
	}
	return nil
}

func (g *Gateway) exploreUpstream(ctx context.Context, args map[string]any) Outcome {
	return g.explore(ctx, args, "upstream", g.client.Prov.ExploreUpstream)
}

func (g *Gateway) exploreDownstream(ctx context.Context, args map[string]any) Outcome {
	return g.explore(ctx, args, "downstream", g.client.Prov.ExploreDownstream)
}

func (g *Gateway) explore(
	ctx context.Context,
	args map[string]any,
	direction string,
	query func(context.Context, string, int) (*provena.LineageResponse, error),
) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[exploreRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}
	if req.Depth <= 0 {
		req.Depth = 1
	}

	g.log.Info("exploring lineage", "direction", direction, "starting_id", req.StartingID, "depth", req.Depth)
	resp, err := query(ctx, req.StartingID, req.Depth)
	if err != nil {
		return Errorf("Failed to explore %s: %s", direction, err)
	}
	if !resp.Status.Success {
		return Outcome{Status: StatusError, Payload: map[string]any{
			"message":     resp.Status.Details,
			"starting_id": req.StartingID,
			"depth":       req.Depth,
		}}
	}

	return Success(map[string]any{
		"starting_id": req.StartingID,
		"depth":       req.Depth,
		"summary": map[string]any{
			"nodes": resp.NodeCount(),
			"edges": resp.EdgeCount(),
		},
		"lineage": map[string]any{"graph": resp.Graph},
	})
}

type researchEntityRequest struct {
	EntityID             string `json:"entity_id"`
	MaxDepth             int    `json:"max_depth"`
	IncludeUpstream      *bool  `json:"include_upstream"`
	IncludeDownstream    *bool  `json:"include_downstream"`
	IncludeRelatedAgents *bool  `json:"include_related_agents"`
}

func (r *researchEntityRequest) Validate() error {
	if strings.TrimSpace(r.EntityID) == "" {
		return fmt.Errorf("entity_id is required")
	}
	return nil
}

func boolDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// researchEntity aggregates everything known about one entity: the full item,
// lineage in both directions, specialized dataset/agent graphs, details of
// every related entity, statistics and follow-up recommendations. Partial
// failures degrade the report rather than failing it.
func (g *Gateway) researchEntity(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[researchEntityRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}
	if req.MaxDepth <= 0 {
		req.MaxDepth = 3
	}
	includeUpstream := boolDefault(req.IncludeUpstream, true)
	includeDownstream := boolDefault(req.IncludeDownstream, true)
	includeAgents := boolDefault(req.IncludeRelatedAgents, true)

	g.log.Info("researching entity", "entity_id", req.EntityID, "max_depth", req.MaxDepth)

	rootResp, err := g.client.Registry.GeneralFetchItem(ctx, req.EntityID)
	if err != nil {
		return Outcome{Status: StatusError, Payload: map[string]any{
			"message":   fmt.Sprintf("Failed to fetch entity: %s", err),
			"entity_id": req.EntityID,
		}}
	}
	if !rootResp.Status.Success {
		return Outcome{Status: StatusError, Payload: map[string]any{
			"message":   fmt.Sprintf("Failed to fetch entity: %s", rootResp.Status.Details),
			"entity_id": req.EntityID,
		}}
	}

	root := rootResp.Item
	subtype := stringField(root, "item_subtype", "UNKNOWN")
	category := stringField(root, "item_category", "UNKNOWN")

	stats := map[string]int{
		"total_related_entities": 0,
		"upstream_entities":      0,
		"downstream_entities":    0,
		"datasets":               0,
		"model_runs":             0,
		"people":                 0,
		"organisations":          0,
		"models":                 0,
		"templates":              0,
	}
	result := map[string]any{
		"entity_id": req.EntityID,
		"entity":    root,
		"entity_type": map[string]any{
			"category": category,
			"subtype":  subtype,
		},
	}

	relatedIDs := make(map[string]struct{})

	collect := func(resp *provena.LineageResponse) map[string]any {
		for _, id := range resp.NodeIDs() {
			if id != req.EntityID {
				relatedIDs[id] = struct{}{}
			}
		}
		return map[string]any{"graph": resp.Graph}
	}

	if includeUpstream {
		if resp, err := g.client.Prov.ExploreUpstream(ctx, req.EntityID, req.MaxDepth); err != nil {
			g.log.Warn("upstream exploration failed", "error", err)
			result["upstream_lineage"] = map[string]any{"error": err.Error()}
		} else {
			result["upstream_lineage"] = collect(resp)
			stats["upstream_entities"] = resp.NodeCount()
		}
	}
	if includeDownstream {
		if resp, err := g.client.Prov.ExploreDownstream(ctx, req.EntityID, req.MaxDepth); err != nil {
			g.log.Warn("downstream exploration failed", "error", err)
			result["downstream_lineage"] = map[string]any{"error": err.Error()}
		} else {
			result["downstream_lineage"] = collect(resp)
			stats["downstream_entities"] = resp.NodeCount()
		}
	}

	// Datasets and model runs carry extra pre-built lineage views.
	if subtype == "DATASET" || subtype == "MODEL_RUN" {
		special := []struct {
			key        string
			agentsOnly bool
			query      func(context.Context, string, int) (*provena.LineageResponse, error)
		}{
			{"contributing_datasets", false, g.client.Prov.GetContributingDatasets},
			{"effected_datasets", false, g.client.Prov.GetEffectedDatasets},
			{"contributing_agents", true, g.client.Prov.GetContributingAgents},
			{"effected_agents", true, g.client.Prov.GetEffectedAgents},
		}
		for _, s := range special {
			if s.agentsOnly && !includeAgents {
				continue
			}
			resp, err := s.query(ctx, req.EntityID, req.MaxDepth)
			if err != nil {
				g.log.Warn("specialized lineage query failed", "view", s.key, "error", err)
				continue
			}
			result[s.key] = collect(resp)
		}
	}

	related := make(map[string]any)
	typeCounts := make(map[string]int)
	fetched := 0
	for id := range relatedIDs {
		if fetched >= g.cfg.ResearchRelatedLimit {
			break
		}
		fetched++
		resp, err := g.client.Registry.GeneralFetchItem(ctx, id)
		if err != nil || !resp.Status.Success {
			g.log.Warn("failed to fetch related entity", "entity_id", id)
			continue
		}
		related[id] = resp.Item
		typeCounts[stringField(resp.Item, "item_subtype", "UNKNOWN")]++
	}

	result["related_entities"] = related
	stats["total_related_entities"] = len(related)
	stats["datasets"] = typeCounts["DATASET"]
	stats["model_runs"] = typeCounts["MODEL_RUN"]
	stats["people"] = typeCounts["PERSON"]
	stats["organisations"] = typeCounts["ORGANISATION"]
	stats["models"] = typeCounts["MODEL"]
	stats["templates"] = typeCounts["DATASET_TEMPLATE"] + typeCounts["MODEL_RUN_WORKFLOW_TEMPLATE"]
	result["statistics"] = stats

	recommendations := []map[string]any{}
	if stats["upstream_entities"] == 0 && subtype == "DATASET" {
		recommendations = append(recommendations, map[string]any{
			"priority": "medium",
			"action":   "Investigate data provenance",
			"details":  "This dataset has no recorded upstream lineage. Consider documenting its sources or creation process.",
		})
	}
	if stats["downstream_entities"] == 0 && category == "ACTIVITY" {
		recommendations = append(recommendations, map[string]any{
			"priority": "low",
			"action":   "Check for outputs",
			"details":  "This activity has no recorded downstream entities. Verify if outputs were registered.",
		})
	}
	if stats["total_related_entities"] > 50 {
		recommendations = append(recommendations, map[string]any{
			"priority": "low",
			"action":   "Complex lineage detected",
			"details":  "This entity has many relationships. Consider using visualization tools to understand the full graph.",
		})
	}
	result["recommendations"] = recommendations

	return Success(result)
}

type findRelatedRequest struct {
	EntityID         string `json:"entity_id"`
	RelationshipType string `json:"relationship_type"`
	EntityTypes      string `json:"entity_types"`
}

func (r *findRelatedRequest) Validate() error {
	if strings.TrimSpace(r.EntityID) == "" {
		return fmt.Errorf("entity_id is required")
	}
	return nil
}

type relatedRef struct {
	id           string
	relationship string
}

// findRelatedEntities resolves lightweight summaries of entities connected to
// the given one. For people and organisations it additionally scans the
// registry list for items whose associations reference them.
func (g *Gateway) findRelatedEntities(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[findRelatedRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}
	relType := req.RelationshipType
	if relType == "" {
		relType = "all"
	}

	rootResp, err := g.client.Registry.GeneralFetchItem(ctx, req.EntityID)
	if err != nil {
		return Errorf("Failed to fetch entity: %s", err)
	}
	if !rootResp.Status.Success {
		return Errorf("Failed to fetch entity: %s", rootResp.Status.Details)
	}
	rootSubtype := stringField(rootResp.Item, "item_subtype", "UNKNOWN")

	typeFilter := make(map[string]struct{})
	if req.EntityTypes != "" {
		for _, t := range strings.Split(req.EntityTypes, ",") {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				typeFilter[t] = struct{}{}
			}
		}
	}

	if relType == "created_by" && rootSubtype != "PERSON" && rootSubtype != "ORGANISATION" {
		return Errorf("'created_by' relationship type is only valid for PERSON or ORGANISATION entities. "+
			"Entity %s is of type %s. Try 'upstream' or 'downstream' instead.", req.EntityID, rootSubtype)
	}

	var refs []relatedRef
	seen := make(map[relatedRef]struct{})
	add := func(id, rel string) {
		ref := relatedRef{id: id, relationship: rel}
		if _, dup := seen[ref]; dup || id == "" || id == req.EntityID {
			return
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}

	if relType == "all" || relType == "upstream" {
		if resp, err := g.client.Prov.ExploreUpstream(ctx, req.EntityID, 2); err != nil {
			g.log.Info("upstream exploration failed", "error", err)
		} else {
			for _, id := range resp.NodeIDs() {
				add(id, "upstream")
			}
		}
	}
	if relType == "all" || relType == "downstream" {
		if resp, err := g.client.Prov.ExploreDownstream(ctx, req.EntityID, 2); err != nil {
			g.log.Info("downstream exploration failed", "error", err)
		} else {
			for _, id := range resp.NodeIDs() {
				add(id, "downstream")
			}
		}
	}

	if (relType == "all" || relType == "created_by") && (rootSubtype == "PERSON" || rootSubtype == "ORGANISATION") {
		g.scanCreatedBy(ctx, req.EntityID, rootSubtype, add)
	}

	summaries := make([]map[string]any, 0, len(refs))
	for _, ref := range refs {
		resp, err := g.client.Registry.GeneralFetchItem(ctx, ref.id)
		if err != nil || !resp.Status.Success {
			g.log.Warn("failed to fetch related entity", "entity_id", ref.id)
			continue
		}
		subtype := stringField(resp.Item, "item_subtype", "UNKNOWN")
		if len(typeFilter) > 0 {
			if _, ok := typeFilter[subtype]; !ok {
				continue
			}
		}
		summaries = append(summaries, map[string]any{
			"id":                ref.id,
			"handle_url":        handleURL(ref.id),
			"display_name":      stringField(resp.Item, "display_name", "N/A"),
			"type":              subtype,
			"relationship":      ref.relationship,
			"created_timestamp": resp.Item["created_timestamp"],
		})
	}

	grouped := make(map[string][]map[string]any)
	for _, s := range summaries {
		rel := s["relationship"].(string)
		grouped[rel] = append(grouped[rel], s)
	}

	var filterList []string
	for t := range typeFilter {
		filterList = append(filterList, t)
	}

	return Success(map[string]any{
		"entity_id":               req.EntityID,
		"root_entity_type":        rootSubtype,
		"relationship_type":       relType,
		"type_filter":             filterList,
		"total_count":             len(summaries),
		"grouped_by_relationship": grouped,
		"all_entities":            summaries,
	})
}

// scanCreatedBy walks the general registry list looking for items whose
// association fields reference the given person or organisation. The list API
// returns lightweight records, so each candidate is re-fetched in full.
func (g *Gateway) scanCreatedBy(ctx context.Context, entityID, rootSubtype string, add func(id, rel string)) {
	listResp, err := g.client.Registry.ListGeneralItems(ctx)
	if err != nil || !listResp.Status.Success {
		g.log.Info("registry list failed during created_by scan", "error", err)
		return
	}

	items := listResp.Items
	if len(items) > g.cfg.CreatedByScanLimit {
		items = items[:g.cfg.CreatedByScanLimit]
	}
	g.log.Info("scanning items for associations", "count", len(items), "entity_id", entityID)

	for _, listed := range items {
		itemID := stringField(listed, "id", "")
		if itemID == "" {
			continue
		}
		fullResp, err := g.client.Registry.GeneralFetchItem(ctx, itemID)
		if err != nil || !fullResp.Status.Success {
			continue
		}
		item := fullResp.Item
		associations := mapField(item, "associations")
		collectionFormat := mapField(item, "collection_format")

		switch rootSubtype {
		case "PERSON":
			if associations["modeller_id"] == entityID || associations["data_custodian_id"] == entityID {
				add(itemID, "created_by")
			}
			cfAssoc := mapField(collectionFormat, "associations")
			if cfAssoc["data_custodian_id"] == entityID || cfAssoc["point_of_contact"] == entityID {
				add(itemID, "created_by")
			}
		case "ORGANISATION":
			if associations["organisation_id"] == entityID || associations["requesting_organisation_id"] == entityID {
				add(itemID, "created_by")
			}
			dsInfo := mapField(collectionFormat, "dataset_info")
			if dsInfo["publisher_id"] == entityID {
				add(itemID, "created_by")
			}
			cfAssoc := mapField(collectionFormat, "associations")
			if cfAssoc["organisation_id"] == entityID {
				add(itemID, "created_by")
			}
		}

		// Templates rarely populate the association fields above; check
		// common creator fields and user_metadata values instead.
		itemSubtype := stringField(item, "item_subtype", "")
		if itemSubtype == "DATASET_TEMPLATE" || itemSubtype == "MODEL_RUN_WORKFLOW_TEMPLATE" {
			creatorFields := []string{
				"created_by", "creator", "creator_id", "created_by_id",
				"owner_id", "record_creator", "record_creator_organisation",
			}
			for _, field := range creatorFields {
				if item[field] == entityID {
					add(itemID, "created_by")
					break
				}
			}
			for _, v := range associations {
				if v == entityID {
					add(itemID, "created_by")
					break
				}
			}
			for _, v := range mapField(item, "user_metadata") {
				if v == entityID {
					add(itemID, "created_by")
					break
				}
			}
		}
	}
}

func stringField(m map[string]any, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func mapField(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return nil
}
