package provena

// Status is the result envelope every Provena API response carries.
type Status struct {
	Success bool   `json:"success"`
	Details string `json:"details"`
}

// SearchResult is one registry search hit.
type SearchResult struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// SearchResponse is the search API response.
type SearchResponse struct {
	Status  Status         `json:"status"`
	Results []SearchResult `json:"results"`
}

// FetchResponse carries a single registry item. Item shapes vary per subtype
// and are treated as opaque documents.
type FetchResponse struct {
	Status Status         `json:"status"`
	Item   map[string]any `json:"item"`
}

// ListResponse is a page of registry items.
type ListResponse struct {
	Status            Status           `json:"status"`
	Items             []map[string]any `json:"items"`
	TotalItemCount    *int             `json:"total_item_count"`
	CompleteItemCount *int             `json:"complete_item_count"`
	PaginationKey     map[string]any   `json:"pagination_key"`
}

// LineageResponse is a provenance graph traversal result.
type LineageResponse struct {
	Status Status         `json:"status"`
	Graph  map[string]any `json:"graph"`
}

// NodeIDs extracts the ids of all nodes present in the lineage graph.
func (r *LineageResponse) NodeIDs() []string {
	nodes, _ := r.Graph["nodes"].([]any)
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		node, ok := n.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := node["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// NodeCount returns the number of nodes in the lineage graph.
func (r *LineageResponse) NodeCount() int {
	nodes, _ := r.Graph["nodes"].([]any)
	return len(nodes)
}

// EdgeCount returns the number of edges in the lineage graph.
func (r *LineageResponse) EdgeCount() int {
	edges, _ := r.Graph["edges"].([]any)
	return len(edges)
}

// CreatedItem identifies a newly created registry entity.
type CreatedItem struct {
	ID string `json:"id"`
}

// CreateResponse is the registry create-item response.
type CreateResponse struct {
	Status      Status       `json:"status"`
	CreatedItem *CreatedItem `json:"created_item"`
}

// MintResponse is the datastore mint-dataset response.
type MintResponse struct {
	Status Status `json:"status"`
	Handle string `json:"handle"`
}

// ModelRunResponse acknowledges an asynchronous model run registration.
type ModelRunResponse struct {
	Status    Status `json:"status"`
	SessionID string `json:"session_id"`
}

// Registry item subtypes recognised by the deployment.
var ItemSubTypes = []string{
	"ORGANISATION",
	"PERSON",
	"MODEL",
	"MODEL_RUN",
	"MODEL_RUN_WORKFLOW_TEMPLATE",
	"DATASET_TEMPLATE",
	"DATASET",
	"STUDY",
}

// ValidSubType reports whether s names a known item subtype.
func ValidSubType(s string) bool {
	for _, t := range ItemSubTypes {
		if t == s {
			return true
		}
	}
	return false
}

// ModelDomainInfo describes a software model to register.
type ModelDomainInfo struct {
	DisplayName      string         `json:"display_name"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	DocumentationURL string         `json:"documentation_url"`
	SourceURL        string         `json:"source_url"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
}

// Resource usage types for dataset template resources.
var ResourceUsageTypes = []string{
	"GENERAL_DATA",
	"CONFIG_FILE",
	"FORCING_DATA",
	"PARAMETER_FILE",
}

// ValidUsageType reports whether s names a known resource usage type.
func ValidUsageType(s string) bool {
	for _, t := range ResourceUsageTypes {
		if t == s {
			return true
		}
	}
	return false
}

// DefinedResource is a concrete file or folder a dataset template expects.
type DefinedResource struct {
	Path               string         `json:"path"`
	Description        string         `json:"description"`
	UsageType          string         `json:"usage_type"`
	Optional           bool           `json:"optional"`
	IsFolder           bool           `json:"is_folder"`
	AdditionalMetadata map[string]any `json:"additional_metadata,omitempty"`
}

// DeferredResource is a placeholder resource resolved at model run time.
type DeferredResource struct {
	Key                string         `json:"key"`
	Description        string         `json:"description"`
	UsageType          string         `json:"usage_type"`
	Optional           bool           `json:"optional"`
	IsFolder           bool           `json:"is_folder"`
	AdditionalMetadata map[string]any `json:"additional_metadata,omitempty"`
}

// DatasetTemplateDomainInfo describes a dataset template to register.
type DatasetTemplateDomainInfo struct {
	DisplayName       string             `json:"display_name"`
	Description       string             `json:"description,omitempty"`
	DefinedResources  []DefinedResource  `json:"defined_resources,omitempty"`
	DeferredResources []DeferredResource `json:"deferred_resources,omitempty"`
	UserMetadata      map[string]any     `json:"user_metadata,omitempty"`
}

// TemplateResource references a dataset template from a workflow template.
type TemplateResource struct {
	TemplateID string `json:"template_id"`
	Optional   bool   `json:"optional"`
}

// WorkflowTemplateAnnotations declares annotation keys a workflow expects.
type WorkflowTemplateAnnotations struct {
	Required []string `json:"required,omitempty"`
	Optional []string `json:"optional,omitempty"`
}

// WorkflowTemplateDomainInfo describes a model run workflow template.
type WorkflowTemplateDomainInfo struct {
	DisplayName     string                       `json:"display_name"`
	SoftwareID      string                       `json:"software_id"`
	InputTemplates  []TemplateResource           `json:"input_templates"`
	OutputTemplates []TemplateResource           `json:"output_templates"`
	Annotations     *WorkflowTemplateAnnotations `json:"annotations,omitempty"`
	UserMetadata    map[string]any               `json:"user_metadata,omitempty"`
}

// PersonDomainInfo describes a person to register.
type PersonDomainInfo struct {
	DisplayName    string            `json:"display_name"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	ORCID          string            `json:"orcid,omitempty"`
	EthicsApproved bool              `json:"ethics_approved"`
	UserMetadata   map[string]string `json:"user_metadata,omitempty"`
}

// OrganisationDomainInfo describes an organisation to register.
type OrganisationDomainInfo struct {
	DisplayName  string            `json:"display_name"`
	Name         string            `json:"name"`
	ROR          string            `json:"ror,omitempty"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

// DatasetDate marks a dataset lifecycle date as relevant with a value.
type DatasetDate struct {
	Relevant bool   `json:"relevant"`
	Value    string `json:"value"`
}

// AccessInfo records how a dataset's data can be accessed.
type AccessInfo struct {
	Reposited   bool   `json:"reposited"`
	URI         string `json:"uri,omitempty"`
	Description string `json:"description,omitempty"`
}

// SpatialInfo records optional spatial metadata in EWKT form.
type SpatialInfo struct {
	Coverage   string `json:"coverage,omitempty"`
	Extent     string `json:"extent,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

// TemporalDuration is a begin/end date pair.
type TemporalDuration struct {
	BeginDate string `json:"begin_date"`
	EndDate   string `json:"end_date"`
}

// TemporalInfo records optional temporal metadata.
type TemporalInfo struct {
	Duration   *TemporalDuration `json:"duration,omitempty"`
	Resolution string            `json:"resolution,omitempty"`
}

// DatasetInfo is the descriptive part of a dataset registration.
type DatasetInfo struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	PublisherID       string            `json:"publisher_id"`
	CreatedDate       DatasetDate       `json:"created_date"`
	PublishedDate     DatasetDate       `json:"published_date"`
	License           string            `json:"license"`
	AccessInfo        AccessInfo        `json:"access_info"`
	Purpose           string            `json:"purpose,omitempty"`
	RightsHolder      string            `json:"rights_holder,omitempty"`
	UsageLimitations  string            `json:"usage_limitations,omitempty"`
	PreferredCitation string            `json:"preferred_citation,omitempty"`
	SpatialInfo       *SpatialInfo      `json:"spatial_info,omitempty"`
	TemporalInfo      *TemporalInfo     `json:"temporal_info,omitempty"`
	Formats           []string          `json:"formats,omitempty"`
	Keywords          []string          `json:"keywords,omitempty"`
	UserMetadata      map[string]string `json:"user_metadata,omitempty"`
}

// DatasetAssociations links a dataset to its responsible agents.
type DatasetAssociations struct {
	OrganisationID  string `json:"organisation_id"`
	DataCustodianID string `json:"data_custodian_id,omitempty"`
	PointOfContact  string `json:"point_of_contact,omitempty"`
}

// Approval is one relevant/obtained consent pair.
type Approval struct {
	Relevant bool `json:"relevant"`
	Obtained bool `json:"obtained"`
}

// DatasetApprovals is the consent quartet required when minting a dataset.
type DatasetApprovals struct {
	EthicsRegistration  Approval `json:"ethics_registration"`
	EthicsAccess        Approval `json:"ethics_access"`
	IndigenousKnowledge Approval `json:"indigenous_knowledge"`
	ExportControls      Approval `json:"export_controls"`
}

// CollectionFormat is the full dataset registration payload.
type CollectionFormat struct {
	DatasetInfo  DatasetInfo         `json:"dataset_info"`
	Associations DatasetAssociations `json:"associations"`
	Approvals    DatasetApprovals    `json:"approvals"`
}

// DatasetType values accepted for templated datasets.
const DatasetTypeDataStore = "DATA_STORE"

// TemplatedDataset binds a concrete dataset to a template slot of a model run.
type TemplatedDataset struct {
	DatasetTemplateID string `json:"dataset_template_id"`
	DatasetID         string `json:"dataset_id"`
	DatasetType       string `json:"dataset_type"`
}

// ModelRunAssociations links a model run to its responsible agents.
type ModelRunAssociations struct {
	ModellerID               string `json:"modeller_id"`
	RequestingOrganisationID string `json:"requesting_organisation_id"`
}

// ModelRunRecord documents one actual execution of a model.
type ModelRunRecord struct {
	WorkflowTemplateID string               `json:"workflow_template_id"`
	ModelVersion       string               `json:"model_version,omitempty"`
	Inputs             []TemplatedDataset   `json:"inputs"`
	Outputs            []TemplatedDataset   `json:"outputs"`
	Annotations        map[string]any       `json:"annotations,omitempty"`
	DisplayName        string               `json:"display_name"`
	Description        string               `json:"description"`
	StudyID            string               `json:"study_id,omitempty"`
	Associations       ModelRunAssociations `json:"associations"`
	StartTime          int64                `json:"start_time"`
	EndTime            int64                `json:"end_time"`
	UserMetadata       map[string]any       `json:"user_metadata,omitempty"`
}
