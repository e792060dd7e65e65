package catalog

import (
	provider "github.com/provena/provagent/internal/provider/models"
)

// toolDefinitions declares every real tool the gateway can execute.
// Names beginning with "create" perform irreversible registry writes and are
// gated by the confirmation policy.
func toolDefinitions() []provider.ToolDefinition {
	return []provider.ToolDefinition{
		{
			Name:        "check_authentication_status",
			Description: "Check current authentication status with Provena.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
		},
		{
			Name:        "login_to_provena",
			Description: "Authenticate with Provena using device flow. Opens a browser verification URL and completes authentication.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
		},
		{
			Name:        "logout_from_provena",
			Description: "Logout from Provena and clear authentication state.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
		},
		{
			Name:        "search_registry",
			Description: "Search the Provena registry for items matching a query. Each result is enriched with full item details where available.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"query": stringProp("The search query string"),
				"limit": intProp("Maximum number of results to return (default: 25)"),
				"subtype_filter": {
					Type:        "string",
					Description: "Filter by item subtype",
					Enum: []string{
						"ORGANISATION", "PERSON", "MODEL", "MODEL_RUN",
						"MODEL_RUN_WORKFLOW_TEMPLATE", "DATASET_TEMPLATE",
						"DATASET", "STUDY",
					},
				},
			}, "query"),
		},
		{
			Name:        "fetch_registry_item",
			Description: "Fetch any registry item by ID and return the full raw object.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"item_id": stringProp("The handle/ID of the registry item"),
			}, "item_id"),
		},
		{
			Name:        "list_registry_items",
			Description: "List general registry items returning full raw objects (first page_size).",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"page_size": intProp("Maximum number of items to return (default: 20)"),
			}),
		},
		{
			Name:        "get_registry_items_count",
			Description: "Get count of all registry items by subtype.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
		},
		{
			Name:        "explore_upstream",
			Description: "Explore upstream provenance lineage (inputs, dependencies, sources) from a starting entity.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"starting_id": stringProp("The entity to start the traversal from"),
				"depth":       intProp("Traversal depth (default: 1)"),
			}, "starting_id"),
		},
		{
			Name:        "explore_downstream",
			Description: "Explore downstream provenance lineage (outputs, derivatives) from a starting entity.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"starting_id": stringProp("The entity to start the traversal from"),
				"depth":       intProp("Traversal depth (default: 1)"),
			}, "starting_id"),
		},
		{
			Name: "research_entity",
			Description: "Comprehensive entity research tool that automatically gathers ALL related information: " +
				"full entity details, upstream/downstream lineage, related entities, statistics, and recommendations. " +
				"Use when complete context about one entity is needed.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"entity_id":              stringProp("The handle/ID of the entity to research"),
				"max_depth":              intProp("Maximum depth for lineage traversal (default: 3, range 1-5)"),
				"include_upstream":       boolProp("Include upstream lineage exploration (default: true)"),
				"include_downstream":     boolProp("Include downstream lineage exploration (default: true)"),
				"include_related_agents": boolProp("Include related people/organisations (default: true)"),
			}, "entity_id"),
		},
		{
			Name: "find_related_entities",
			Description: "Find entities related to a specific entity through various relationship types. " +
				"Returns lightweight summaries, not full details.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"entity_id": stringProp("The entity to find relationships for"),
				"relationship_type": {
					Type:        "string",
					Description: "Type of relationship (default: all)",
					Enum:        []string{"all", "upstream", "downstream", "created_by"},
				},
				"entity_types": stringProp("Comma-separated entity types to filter (e.g., \"DATASET,MODEL_RUN\")"),
			}, "entity_id"),
		},
		{
			Name:        "get_current_date",
			Description: "Get the current date in ISO format (YYYY-MM-DD).",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
		},
		{
			Name: "create_model",
			Description: "Register a new Model in the Provena registry. " +
				"Collect every field from the user and get explicit confirmation before calling.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"name":              stringProp("The name of the software model"),
				"description":       stringProp("A description of the model"),
				"documentation_url": stringProp("URL to the model's documentation"),
				"source_url":        stringProp("URL to the model's source code or repository"),
				"display_name":      stringProp("Display name (defaults to name)"),
				"user_metadata":     stringProp("Additional key-value metadata as a JSON object string"),
			}, "name", "description", "documentation_url", "source_url"),
		},
		{
			Name: "create_dataset_template",
			Description: "Register a new Dataset Template defining the structure/schema for datasets used in model runs. " +
				"Collect every field from the user and get explicit confirmation before calling.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"display_name": stringProp("Name for this template"),
				"description":  stringProp("Description of what this template is for"),
				"defined_resources": stringProp("JSON array of defined resources, each with path, description, " +
					"usage_type (GENERAL_DATA|CONFIG_FILE|FORCING_DATA|PARAMETER_FILE), optional, is_folder"),
				"deferred_resources": stringProp("JSON array of deferred resources, each with key, description, " +
					"usage_type, optional, is_folder"),
				"user_metadata": stringProp("Additional key-value metadata as a JSON object string"),
			}, "display_name"),
		},
		{
			Name: "create_model_run_workflow_template",
			Description: "Register a new Model Run Workflow Template defining the inputs, outputs, and annotations " +
				"required for registering model runs. Collect every field and confirm before calling.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"display_name":         stringProp("User-friendly name for this workflow template"),
				"model_id":             stringProp("ID of the registered Model this template is for"),
				"input_template_ids":   stringProp("JSON array of input dataset template entries {template_id, optional}"),
				"output_template_ids":  stringProp("JSON array of output dataset template entries {template_id, optional}"),
				"required_annotations": stringProp("Comma-separated list of required annotation keys"),
				"optional_annotations": stringProp("Comma-separated list of optional annotation keys"),
				"user_metadata":        stringProp("Additional key-value metadata as a JSON object string"),
			}, "display_name", "model_id"),
		},
		{
			Name: "create_dataset",
			Description: "Register a new dataset in the Provena registry. Use the dataset_registration_workflow " +
				"prompt for guidance; collect every field and get explicit confirmation before calling.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"name":            stringProp("Dataset name"),
				"description":     stringProp("Detailed description"),
				"publisher_id":    stringProp("Publisher ORGANISATION ID"),
				"organisation_id": stringProp("Record creator ORGANISATION ID"),
				"created_date":    stringProp("Creation date (YYYY-MM-DD)"),
				"published_date":  stringProp("Publication date (YYYY-MM-DD)"),
				"license":         stringProp("License URI"),
				"access_reposited":   boolProp("Is the data reposited? (default: true)"),
				"access_uri":         stringProp("URI if externally hosted"),
				"access_description": stringProp("How to access externally hosted data"),
				"ethics_registration_relevant":   boolProp("Ethics registration relevant"),
				"ethics_registration_obtained":   boolProp("Ethics registration obtained"),
				"ethics_access_relevant":         boolProp("Ethics access relevant"),
				"ethics_access_obtained":         boolProp("Ethics access obtained"),
				"indigenous_knowledge_relevant":  boolProp("Indigenous knowledge relevant"),
				"indigenous_knowledge_obtained":  boolProp("Indigenous knowledge consent obtained"),
				"export_controls_relevant":       boolProp("Export controls relevant"),
				"export_controls_obtained":       boolProp("Export controls clearance obtained"),
				"purpose":            stringProp("Why the dataset was created"),
				"rights_holder":      stringProp("Who owns/manages rights"),
				"usage_limitations":  stringProp("Access/use restrictions"),
				"preferred_citation": stringProp("How to cite this dataset"),
				"spatial_coverage":   stringProp("EWKT with SRID (e.g., SRID=4326;POINT(145.7 -16.2))"),
				"spatial_extent":     stringProp("EWKT bbox polygon"),
				"spatial_resolution": stringProp("Decimal degrees string (e.g., \"0.01\")"),
				"temporal_begin_date": stringProp("Temporal coverage begin date (YYYY-MM-DD)"),
				"temporal_end_date":   stringProp("Temporal coverage end date (YYYY-MM-DD)"),
				"temporal_resolution": stringProp("ISO8601 duration (e.g., P1D)"),
				"formats":           stringProp("Comma-separated formats (e.g., \"CSV, JSON\")"),
				"keywords":          stringProp("Comma-separated keyword tags"),
				"user_metadata":     stringProp("JSON object string; values will be stringified"),
				"data_custodian_id": stringProp("PERSON ID of the data custodian"),
				"point_of_contact":  stringProp("Free-text contact details"),
			}, "name", "description", "publisher_id", "organisation_id", "created_date", "published_date", "license"),
		},
		{
			Name: "create_person",
			Description: "Register a new person in the Provena registry. Never call until all required info is " +
				"collected and the user has confirmed.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"first_name":      stringProp("Given name(s)"),
				"last_name":       stringProp("Family name(s)"),
				"email":           stringProp("Contact email"),
				"display_name":    stringProp("Display name (defaults to first and last name)"),
				"orcid":           stringProp("ORCID iD (ID or full URL)"),
				"ethics_approved": boolProp("Ethics approved for registry (default: true)"),
				"user_metadata": {
					Type:        "object",
					Description: "Additional key-value metadata (string values)",
				},
			}, "first_name", "last_name", "email"),
		},
		{
			Name: "create_organisation",
			Description: "Register a new organisation in the Provena registry. Never call until all required info " +
				"is collected and the user has confirmed.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"name":          stringProp("Organisation name"),
				"display_name":  stringProp("Display name (defaults to name)"),
				"ror":          stringProp("ROR iD or URL"),
				"user_metadata": {
					Type:        "object",
					Description: "Additional key-value metadata (string values)",
				},
			}, "name"),
		},
		{
			Name: "create_model_run",
			Description: "Register a model run activity documenting an actual execution of a model, linking input " +
				"datasets through the model to output datasets. Use the model_run_registration prompt for guidance; " +
				"collect every field and confirm before calling.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"workflow_template_id": stringProp("The workflow template this run follows"),
				"display_name":         stringProp("User-friendly name for this run"),
				"description":          stringProp("What this model run was for"),
				"start_time":           stringProp("When execution started (ISO 8601: YYYY-MM-DDTHH:MM:SSZ)"),
				"end_time":             stringProp("When execution completed (ISO 8601, after start_time)"),
				"associations_modeller_id":                 stringProp("PERSON ID of who ran the model"),
				"associations_requesting_organisation_id":  stringProp("ORGANISATION ID that requested the run"),
				"model_version":   stringProp("Version string if different from the template's model"),
				"input_datasets":  stringProp("JSON array of input dataset IDs"),
				"output_datasets": stringProp("JSON array of output dataset IDs"),
				"annotations":     stringProp("JSON object with metadata matching template requirements"),
				"user_metadata":   stringProp("Additional custom metadata as a JSON object string"),
			}, "workflow_template_id", "display_name", "description", "start_time", "end_time",
				"associations_modeller_id", "associations_requesting_organisation_id"),
		},
	}
}
