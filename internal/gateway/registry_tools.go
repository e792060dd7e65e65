package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/provena/provagent/internal/provena"
)

type searchRegistryRequest struct {
	Query         string `json:"query"`
	Limit         int    `json:"limit"`
	SubtypeFilter string `json:"subtype_filter"`
}

func (r *searchRegistryRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query is required")
	}
	if r.SubtypeFilter != "" && !provena.ValidSubType(strings.ToUpper(r.SubtypeFilter)) {
		return fmt.Errorf("invalid subtype_filter. Valid options: %s", strings.Join(provena.ItemSubTypes, ", "))
	}
	return nil
}

func (g *Gateway) searchRegistry(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[searchRegistryRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}
	if req.Limit <= 0 {
		req.Limit = 25
	}
	subtype := strings.ToUpper(req.SubtypeFilter)

	g.log.Info("searching registry", "query", req.Query, "limit", req.Limit)
	resp, err := g.client.Search.SearchRegistry(ctx, req.Query, req.Limit, subtype)
	if err != nil {
		return Errorf("Search failed: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("Search failed: %s", resp.Status.Details)
	}

	// Each hit is enriched with the full item; a failed enrichment keeps the
	// id and score so the model can still reason about it.
	results := make([]map[string]any, 0, len(resp.Results))
	for _, hit := range resp.Results {
		fetched, err := g.client.Registry.GeneralFetchItem(ctx, hit.ID)
		if err != nil || !fetched.Status.Success || fetched.Item == nil {
			detail := "Unable to fetch full item details"
			if err != nil {
				detail = fmt.Sprintf("Fetch error: %s", err)
			}
			results = append(results, map[string]any{
				"id":           hit.ID,
				"search_score": hit.Score,
				"error":        detail,
			})
			continue
		}
		item := make(map[string]any, len(fetched.Item)+1)
		for k, v := range fetched.Item {
			item[k] = v
		}
		item["search_score"] = hit.Score
		results = append(results, item)
	}

	return Success(map[string]any{
		"query":         req.Query,
		"total_results": len(results),
		"results":       results,
	})
}

type fetchRegistryItemRequest struct {
	ItemID string `json:"item_id"`
}

func (r *fetchRegistryItemRequest) Validate() error {
	if strings.TrimSpace(r.ItemID) == "" {
		return fmt.Errorf("item_id is required")
	}
	return nil
}

func (g *Gateway) fetchRegistryItem(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[fetchRegistryItemRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}

	resp, err := g.client.Registry.GeneralFetchItem(ctx, req.ItemID)
	if err != nil {
		return Errorf("Failed to fetch registry item: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("Fetch failed: %s", resp.Status.Details)
	}
	return Success(map[string]any{
		"item": resp.Item,
	})
}

type listRegistryItemsRequest struct {
	PageSize int `json:"page_size"`
}

func (g *Gateway) listRegistryItems(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[listRegistryItemsRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	resp, err := g.client.Registry.ListGeneralItems(ctx)
	if err != nil {
		return Errorf("Failed to list registry items: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("List failed: %s", resp.Status.Details)
	}

	items := resp.Items
	if len(items) > req.PageSize {
		items = items[:req.PageSize]
	}
	return Success(map[string]any{
		"items": items,
		"pagination": map[string]any{
			"shown_items":         len(items),
			"total_item_count":    resp.TotalItemCount,
			"complete_item_count": resp.CompleteItemCount,
			"has_pagination_key":  len(resp.PaginationKey) > 0,
		},
	})
}

func (g *Gateway) getRegistryItemsCount(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}

	counts, err := g.client.Registry.ListItemCounts(ctx)
	if err != nil {
		return Errorf("Failed to get registry counts: %s", err)
	}

	readable := make(map[string]int, len(counts))
	subtypes := make([]string, 0, len(counts))
	total := 0
	for subtype, count := range counts {
		key := strings.ToLower(subtype)
		readable[key] = count
		subtypes = append(subtypes, key)
		total += count
	}

	return Success(map[string]any{
		"total_items":       total,
		"counts_by_subtype": readable,
		"subtypes":          subtypes,
	})
}
