package provena

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TokenSource yields the current bearer token for an outgoing request.
type TokenSource func() (string, error)

// Endpoints carries the per-service base URLs.
type Endpoints struct {
	Datastore string
	Registry  string
	Prov      string
	Search    string
}

const defaultTimeout = 60 * time.Second

// NewHTTPClient builds a Client backed by JSON-over-HTTP calls to the given
// endpoints, authenticated through the token source.
func NewHTTPClient(endpoints Endpoints, tokens TokenSource) *Client {
	api := &apiClient{
		http:   &http.Client{Timeout: defaultTimeout},
		tokens: tokens,
		log:    slog.Default().With("component", "provena"),
	}
	return &Client{
		Registry:  &httpRegistry{api: api, base: endpoints.Registry},
		Search:    &httpSearch{api: api, base: endpoints.Search},
		Datastore: &httpDatastore{api: api, base: endpoints.Datastore},
		Prov:      &httpProv{api: api, base: endpoints.Prov},
	}
}

// apiClient centralizes request construction, auth and decoding.
type apiClient struct {
	http   *http.Client
	tokens TokenSource
	log    *slog.Logger
}

func (c *apiClient) do(ctx context.Context, method, rawURL string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn("request failed", "method", method, "url", rawURL, "status", resp.StatusCode)
		return fmt.Errorf("%s %s: status %d: %s", method, rawURL, resp.StatusCode, bytes.TrimSpace(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *apiClient) get(ctx context.Context, base, path string, query url.Values, out any) error {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil, out)
}

func (c *apiClient) post(ctx context.Context, base, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, base+path, body, out)
}

type httpRegistry struct {
	api  *apiClient
	base string
}

func (r *httpRegistry) GeneralFetchItem(ctx context.Context, id string) (*FetchResponse, error) {
	var out FetchResponse
	query := url.Values{"id": {id}}
	if err := r.api.get(ctx, r.base, "/registry/general/fetch", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRegistry) ListGeneralItems(ctx context.Context) (*ListResponse, error) {
	var out ListResponse
	body := map[string]any{"filter_by": nil, "sort_by": nil, "pagination_key": nil}
	if err := r.api.post(ctx, r.base, "/registry/general/list", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRegistry) ListItemCounts(ctx context.Context) (map[string]int, error) {
	var out map[string]int
	if err := r.api.get(ctx, r.base, "/registry/general/count", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *httpRegistry) CreateModel(ctx context.Context, info ModelDomainInfo) (*CreateResponse, error) {
	return r.create(ctx, "/registry/entity/model/create", info)
}

func (r *httpRegistry) CreateDatasetTemplate(ctx context.Context, info DatasetTemplateDomainInfo) (*CreateResponse, error) {
	return r.create(ctx, "/registry/entity/dataset_template/create", info)
}

func (r *httpRegistry) CreateWorkflowTemplate(ctx context.Context, info WorkflowTemplateDomainInfo) (*CreateResponse, error) {
	return r.create(ctx, "/registry/entity/model_run_workflow/create", info)
}

func (r *httpRegistry) CreatePerson(ctx context.Context, info PersonDomainInfo) (*CreateResponse, error) {
	return r.create(ctx, "/registry/agent/person/create", info)
}

func (r *httpRegistry) CreateOrganisation(ctx context.Context, info OrganisationDomainInfo) (*CreateResponse, error) {
	return r.create(ctx, "/registry/agent/organisation/create", info)
}

func (r *httpRegistry) create(ctx context.Context, path string, info any) (*CreateResponse, error) {
	var out CreateResponse
	if err := r.api.post(ctx, r.base, path, info, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type httpSearch struct {
	api  *apiClient
	base string
}

func (s *httpSearch) SearchRegistry(ctx context.Context, query string, limit int, subtypeFilter string) (*SearchResponse, error) {
	var out SearchResponse
	params := url.Values{
		"query":        {query},
		"record_limit": {strconv.Itoa(limit)},
	}
	if subtypeFilter != "" {
		params.Set("subtype_filter", subtypeFilter)
	}
	if err := s.api.get(ctx, s.base, "/search/entity-registry", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type httpDatastore struct {
	api  *apiClient
	base string
}

func (d *httpDatastore) MintDataset(ctx context.Context, format CollectionFormat) (*MintResponse, error) {
	var out MintResponse
	if err := d.api.post(ctx, d.base, "/register/mint-dataset", format, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type httpProv struct {
	api  *apiClient
	base string
}

func (p *httpProv) ExploreUpstream(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	return p.explore(ctx, "/explore/upstream", startingID, depth)
}

func (p *httpProv) ExploreDownstream(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	return p.explore(ctx, "/explore/downstream", startingID, depth)
}

func (p *httpProv) GetContributingDatasets(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	return p.explore(ctx, "/explore/special/contributing_datasets", startingID, depth)
}

func (p *httpProv) GetEffectedDatasets(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	return p.explore(ctx, "/explore/special/effected_datasets", startingID, depth)
}

func (p *httpProv) GetContributingAgents(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	return p.explore(ctx, "/explore/special/contributing_agents", startingID, depth)
}

func (p *httpProv) GetEffectedAgents(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	return p.explore(ctx, "/explore/special/effected_agents", startingID, depth)
}

func (p *httpProv) explore(ctx context.Context, path, startingID string, depth int) (*LineageResponse, error) {
	var out LineageResponse
	params := url.Values{
		"starting_id": {startingID},
		"depth":       {strconv.Itoa(depth)},
	}
	if err := p.api.get(ctx, p.base, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *httpProv) CreateModelRun(ctx context.Context, record ModelRunRecord) (*ModelRunResponse, error) {
	var out ModelRunResponse
	if err := p.api.post(ctx, p.base, "/model_run/register", record, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
