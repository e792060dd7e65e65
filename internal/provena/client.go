// Package provena is a thin facade over the remote Provena registry,
// datastore and provenance services. Tool adapters depend on the interfaces
// here, never on the HTTP implementation directly.
package provena

import (
	"context"
)

// Registry covers the entity registry API.
type Registry interface {
	// GeneralFetchItem fetches any registry item by id.
	GeneralFetchItem(ctx context.Context, id string) (*FetchResponse, error)

	// ListGeneralItems lists registry items (first page, no filter).
	ListGeneralItems(ctx context.Context) (*ListResponse, error)

	// ListItemCounts returns item counts keyed by subtype.
	ListItemCounts(ctx context.Context) (map[string]int, error)

	CreateModel(ctx context.Context, info ModelDomainInfo) (*CreateResponse, error)
	CreateDatasetTemplate(ctx context.Context, info DatasetTemplateDomainInfo) (*CreateResponse, error)
	CreateWorkflowTemplate(ctx context.Context, info WorkflowTemplateDomainInfo) (*CreateResponse, error)
	CreatePerson(ctx context.Context, info PersonDomainInfo) (*CreateResponse, error)
	CreateOrganisation(ctx context.Context, info OrganisationDomainInfo) (*CreateResponse, error)
}

// Search covers the registry search API.
type Search interface {
	// SearchRegistry searches the registry. subtypeFilter may be empty.
	SearchRegistry(ctx context.Context, query string, limit int, subtypeFilter string) (*SearchResponse, error)
}

// Datastore covers the data store API.
type Datastore interface {
	// MintDataset registers a new dataset and returns its handle.
	// Minting is not idempotent; callers must not retry automatically.
	MintDataset(ctx context.Context, format CollectionFormat) (*MintResponse, error)
}

// Prov covers the provenance API.
type Prov interface {
	ExploreUpstream(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	ExploreDownstream(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetContributingDatasets(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetEffectedDatasets(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetContributingAgents(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetEffectedAgents(ctx context.Context, startingID string, depth int) (*LineageResponse, error)

	// CreateModelRun registers a model run. Registration is asynchronous;
	// the response carries a session id for tracking.
	CreateModelRun(ctx context.Context, record ModelRunRecord) (*ModelRunResponse, error)
}

// Client aggregates the per-service APIs.
type Client struct {
	Registry  Registry
	Search    Search
	Datastore Datastore
	Prov      Prov
}
