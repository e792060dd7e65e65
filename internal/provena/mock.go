package provena

import (
	"context"
	"errors"
)

var errNotImplemented = errors.New("not implemented")

// MockRegistry implements Registry for testing.
type MockRegistry struct {
	GeneralFetchItemFunc      func(ctx context.Context, id string) (*FetchResponse, error)
	ListGeneralItemsFunc      func(ctx context.Context) (*ListResponse, error)
	ListItemCountsFunc        func(ctx context.Context) (map[string]int, error)
	CreateModelFunc           func(ctx context.Context, info ModelDomainInfo) (*CreateResponse, error)
	CreateDatasetTemplateFunc func(ctx context.Context, info DatasetTemplateDomainInfo) (*CreateResponse, error)
	CreateWorkflowTemplateFunc func(ctx context.Context, info WorkflowTemplateDomainInfo) (*CreateResponse, error)
	CreatePersonFunc          func(ctx context.Context, info PersonDomainInfo) (*CreateResponse, error)
	CreateOrganisationFunc    func(ctx context.Context, info OrganisationDomainInfo) (*CreateResponse, error)
}

func (m *MockRegistry) GeneralFetchItem(ctx context.Context, id string) (*FetchResponse, error) {
	if m.GeneralFetchItemFunc != nil {
		return m.GeneralFetchItemFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func (m *MockRegistry) ListGeneralItems(ctx context.Context) (*ListResponse, error) {
	if m.ListGeneralItemsFunc != nil {
		return m.ListGeneralItemsFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *MockRegistry) ListItemCounts(ctx context.Context) (map[string]int, error) {
	if m.ListItemCountsFunc != nil {
		return m.ListItemCountsFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *MockRegistry) CreateModel(ctx context.Context, info ModelDomainInfo) (*CreateResponse, error) {
	if m.CreateModelFunc != nil {
		return m.CreateModelFunc(ctx, info)
	}
	return nil, errNotImplemented
}

func (m *MockRegistry) CreateDatasetTemplate(ctx context.Context, info DatasetTemplateDomainInfo) (*CreateResponse, error) {
	if m.CreateDatasetTemplateFunc != nil {
		return m.CreateDatasetTemplateFunc(ctx, info)
	}
	return nil, errNotImplemented
}

func (m *MockRegistry) CreateWorkflowTemplate(ctx context.Context, info WorkflowTemplateDomainInfo) (*CreateResponse, error) {
	if m.CreateWorkflowTemplateFunc != nil {
		return m.CreateWorkflowTemplateFunc(ctx, info)
	}
	return nil, errNotImplemented
}

func (m *MockRegistry) CreatePerson(ctx context.Context, info PersonDomainInfo) (*CreateResponse, error) {
	if m.CreatePersonFunc != nil {
		return m.CreatePersonFunc(ctx, info)
	}
	return nil, errNotImplemented
}

func (m *MockRegistry) CreateOrganisation(ctx context.Context, info OrganisationDomainInfo) (*CreateResponse, error) {
	if m.CreateOrganisationFunc != nil {
		return m.CreateOrganisationFunc(ctx, info)
	}
	return nil, errNotImplemented
}

// MockSearch implements Search for testing.
type MockSearch struct {
	SearchRegistryFunc func(ctx context.Context, query string, limit int, subtypeFilter string) (*SearchResponse, error)
}

func (m *MockSearch) SearchRegistry(ctx context.Context, query string, limit int, subtypeFilter string) (*SearchResponse, error) {
	if m.SearchRegistryFunc != nil {
		return m.SearchRegistryFunc(ctx, query, limit, subtypeFilter)
	}
	return nil, errNotImplemented
}

// MockDatastore implements Datastore for testing.
type MockDatastore struct {
	MintDatasetFunc func(ctx context.Context, format CollectionFormat) (*MintResponse, error)
}

func (m *MockDatastore) MintDataset(ctx context.Context, format CollectionFormat) (*MintResponse, error) {
	if m.MintDatasetFunc != nil {
		return m.MintDatasetFunc(ctx, format)
	}
	return nil, errNotImplemented
}

// MockProv implements Prov for testing.
type MockProv struct {
	ExploreUpstreamFunc         func(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	ExploreDownstreamFunc       func(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetContributingDatasetsFunc func(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetEffectedDatasetsFunc     func(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetContributingAgentsFunc   func(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	GetEffectedAgentsFunc       func(ctx context.Context, startingID string, depth int) (*LineageResponse, error)
	CreateModelRunFunc          func(ctx context.Context, record ModelRunRecord) (*ModelRunResponse, error)
}

func (m *MockProv) ExploreUpstream(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	if m.ExploreUpstreamFunc != nil {
		return m.ExploreUpstreamFunc(ctx, startingID, depth)
	}
	return nil, errNotImplemented
}

func (m *MockProv) ExploreDownstream(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	if m.ExploreDownstreamFunc != nil {
		return m.ExploreDownstreamFunc(ctx, startingID, depth)
	}
	return nil, errNotImplemented
}

func (m *MockProv) GetContributingDatasets(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	if m.GetContributingDatasetsFunc != nil {
		return m.GetContributingDatasetsFunc(ctx, startingID, depth)
	}
	return nil, errNotImplemented
}

func (m *MockProv) GetEffectedDatasets(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	if m.GetEffectedDatasetsFunc != nil {
		return m.GetEffectedDatasetsFunc(ctx, startingID, depth)
	}
	return nil, errNotImplemented
}

func (m *MockProv) GetContributingAgents(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	if m.GetContributingAgentsFunc != nil {
		return m.GetContributingAgentsFunc(ctx, startingID, depth)
	}
	return nil, errNotImplemented
}

func (m *MockProv) GetEffectedAgents(ctx context.Context, startingID string, depth int) (*LineageResponse, error) {
	if m.GetEffectedAgentsFunc != nil {
		return m.GetEffectedAgentsFunc(ctx, startingID, depth)
	}
	return nil, errNotImplemented
}

func (m *MockProv) CreateModelRun(ctx context.Context, record ModelRunRecord) (*ModelRunResponse, error) {
	if m.CreateModelRunFunc != nil {
		return m.CreateModelRunFunc(ctx, record)
	}
	return nil, errNotImplemented
}
