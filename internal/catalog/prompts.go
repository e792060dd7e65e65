package catalog

import (
	"fmt"

	provider "github.com/provena/provagent/internal/provider/models"
)

// researchFocusParams maps a research_focus value to the research_entity
// parameters a report should be built with.
var researchFocusParams = map[string]string{
	"general":    "max_depth=3, include all aspects",
	"provenance": "max_depth=4, emphasize lineage graphs",
	"quality":    "max_depth=2, focus on metadata gaps",
	"impact":     "include_downstream=true, include_upstream=false",
	"sources":    "include_upstream=true, include_downstream=false",
}

func promptDefinitions() []Prompt {
	return []Prompt{
		{
			Name:        "comprehensive_entity_research",
			Description: "Generate a comprehensive research report for a single entity.",
			Parameters: objectSchema(map[string]provider.PropertySchema{
				"entity_id": stringProp("The handle/ID of the entity to research"),
				"research_focus": {
					Type:        "string",
					Description: "Research emphasis (default: general)",
					Enum:        []string{"general", "provenance", "quality", "impact", "sources"},
				},
			}, "entity_id"),
			Render: renderEntityResearch,
		},
		{
			Name:        "handle_linking",
			Description: "Always provide the full handle URL for any Provena record when the user asks for a link.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(handleLinkingText),
		},
		{
			Name:        "batch_query_guide",
			Description: "Guide for efficiently querying many entities at once.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(batchQueryGuideText),
		},
		{
			Name:        "discover_entities",
			Description: "Guide for exploring and discovering entities in Provena.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(discoverEntitiesText),
		},
		{
			Name:        "dataset_registration_workflow",
			Description: "Guided DATASET registration workflow that ensures complete data collection. For datasets (actual data), not dataset templates.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(datasetRegistrationText),
		},
		{
			Name:        "register_entity_workflow",
			Description: "Guided registration workflow for Organisations, Persons, and Models.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(registerEntityText),
		},
		{
			Name:        "dataset_template_workflow",
			Description: "Guided workflow for registering Dataset Templates with resource management.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(datasetTemplateText),
		},
		{
			Name:        "workflow_template_registration",
			Description: "Guided workflow for registering Model Run Workflow Templates with dependency management.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(workflowTemplateText),
		},
		{
			Name:        "model_run_registration",
			Description: "Guided workflow for registering Model Runs with validation and dependency checking.",
			Parameters:  objectSchema(map[string]provider.PropertySchema{}),
			Render:      staticPrompt(modelRunRegistrationText),
		},
	}
}

func staticPrompt(text string) func(map[string]any) (string, error) {
	return func(map[string]any) (string, error) {
		return text, nil
	}
}

func renderEntityResearch(args map[string]any) (string, error) {
	entityID := stringArg(args, "entity_id")
	if entityID == "" {
		return "", fmt.Errorf("entity_id is required")
	}
	focus := stringArg(args, "research_focus")
	params, ok := researchFocusParams[focus]
	if !ok {
		focus = "general"
		params = researchFocusParams[focus]
	}
	return fmt.Sprintf(`Research entity %s with focus: %s

**Tool**: research_entity(entity_id=%q, %s)

This automatically gathers: entity details, upstream/downstream lineage, related entities, statistics, and recommendations.

**Report Structure**:
1. Executive Summary - key findings
2. Entity Overview - type, name, metadata, handle URL
3. Lineage Analysis - upstream sources and downstream derivatives
4. Related Entities - people, orgs, models (with counts by type)
5. Quality Assessment - metadata completeness and gaps
6. Recommendations - prioritized action items

Present findings with:
- Clear markdown headings
- Tables for structured data
- Handle URLs as links: [Name](https://hdl.handle.net/{id})
- Bullet lists for recommendations
- **Bold** for important insights

Adjust depth parameter (1-5) based on how deep to trace lineage. Default 3 is balanced.
`, entityID, focus, entityID, params), nil
}

const handleLinkingText = `When user asks for a link to a record, provide the full handle URL:

https://hdl.handle.net/{id}

Replace {id} with the actual record ID. Always use the full URL, never just the ID.

Example: https://hdl.handle.net/12345/abcde
`

const batchQueryGuideText = `For queries returning many results (10+ entities), use efficient tools:

**search_registry** - Search entities by keyword and type
- Example: search_registry(query="CSIRO", subtype_filter="MODEL_RUN", limit=50)
- Returns: Matching entities with key metadata

**find_related_entities** - Find connected entities
- Example: find_related_entities(entity_id="X", relationship_type="upstream")
- Returns: Related entities with relationship info

**list_registry_items** - Page through registry items
- Example: list_registry_items(page_size=50)
- Returns: Raw registry items, first page

**Workflow**: Summary list -> User selects -> research_entity for details

Avoid: Calling research_entity in loops (very slow for multiple entities)
`

const discoverEntitiesText = `**Entity Discovery Tools:**

**search_registry** - Search by keywords
- Use when: User knows part of the name or has keywords
- Example: search_registry(query="coral reef", subtype_filter="DATASET")

**list_registry_items** - Browse registry items
- Use when: User wants to see what's available
- Example: list_registry_items(page_size=50)

**find_related_entities** - Navigate relationships
- Use when: User wants to explore connections from a known entity
- Example: find_related_entities(entity_id="X", relationship_type="downstream")

**get_registry_items_count** - Get overview statistics
- Use when: User wants to understand scope
- Returns: Count of each entity type in the system

**research_entity** - Deep dive on single entity
- Use when: User wants comprehensive details on ONE specific entity
- Returns: Full lineage, relationships, metadata

**Progressive disclosure pattern:**
1. Start broad (counts/search) -> 2. Show summaries -> 3. Offer detailed research

When uncertain about user intent, ask clarifying questions before executing queries.
`

const datasetRegistrationText = `You are a Provena DATASET registration specialist.

IMPORTANT: This is for DATASETS (actual data items), NOT dataset templates.

=== WORKFLOW ===

1. **INITIALIZATION**
   - Check login status (if not logged in, stop and ask user to log in first)
   - Greet and explain you'll help register a DATASET (actual data)
   - Process: collect fields -> summary -> confirm -> register

2. **COLLECT INFORMATION** (Ask conversationally, accept any format)
   Reference the create_dataset tool documentation for all fields.

   Convert user input to expected formats (e.g., YYYY-MM-DD for dates).
   For IDs (publisher, organisation, custodian), offer to search if needed.

3. **VALIDATION & CONFIRMATION**
   Show formatted summary of all collected fields.
   ASK: "Does this look correct? Type 'yes' to register."
   WAIT for explicit confirmation.

4. **REGISTRATION**
   ONLY after confirmation: create_dataset(all collected data)
   Show success with handle URL: https://hdl.handle.net/{id}

=== CRITICAL ===
- Ask for EVERY field (including optional ones)
- Never call create_dataset until confirmed
- If searching entities, show results with display names
`

const registerEntityText = `You are a Provena entity registration specialist.

=== WORKFLOW ===

1. **INITIALIZATION**
   - Check login status (if not logged in, stop and ask user to log in first)
   - Greet and identify entity type (Organisation, Person, or Model)
   - Process: collect fields -> summary -> confirm -> register

2. **COLLECT INFORMATION** (Ask conversationally for EVERY field)

3. **VALIDATION & CONFIRMATION**
   Show formatted summary of all collected fields.
   ASK: "Does this look correct? Type 'yes' to register."
   WAIT for explicit confirmation.

4. **REGISTRATION**
   ONLY after confirmation, call appropriate tool:
   - create_organisation (organisations)
   - create_person (persons)
   - create_model (models)

   Show success with handle URL: https://hdl.handle.net/{id}

=== CRITICAL ===
- Ask for ALL fields including optional ones
- Never call tool until confirmed
`

const datasetTemplateText = `You are a Provena Dataset Template registration specialist.

=== WORKFLOW ===

1. **INITIALIZATION**
   - Check login status (if not logged in, stop and ask user to log in first)
   - Greet and explain: "A dataset template defines structure and expected files/resources for datasets used in model runs"
   - Process: basic info -> resources -> summary -> confirm -> register

2. **COLLECT INFORMATION**

   **BASIC:**
   - display_name (required)
   - description (optional)

   **DEFINED RESOURCES** (optional - pre-defined file paths):
   For each resource:
   - path (file path in dataset)
   - description (what this file is)
   - usage_type (one of: GENERAL_DATA, CONFIG_FILE, FORCING_DATA, PARAMETER_FILE)
   - is_folder (boolean)
   - additional_metadata (optional JSON)

   Ask: "Add another defined resource?" (repeat until no)

   **DEFERRED RESOURCES** (optional - user-defined later):
   For each resource:
   - key (unique identifier)
   - description (what will be provided)
   - usage_type (same as above)
   - is_folder (boolean)
   - additional_metadata (optional JSON)

   Ask: "Add another deferred resource?" (repeat until no)

   **METADATA:**
   - user_metadata (optional - custom JSON)

3. **VALIDATION & CONFIRMATION**
   Show formatted summary:
   - Display name and description
   - Defined resources count and list
   - Deferred resources count and list
   - Custom metadata

   ASK: "Does this look correct? Type 'yes' to register."
   WAIT for explicit confirmation.

4. **REGISTRATION**
   ONLY after confirmation: create_dataset_template(all collected data)
   Show success with handle URL: https://hdl.handle.net/{id}

=== VALIDATION ===
- usage_type MUST be: GENERAL_DATA, CONFIG_FILE, FORCING_DATA, or PARAMETER_FILE
- At least one resource (defined or deferred) recommended

=== CRITICAL ===
Never call create_dataset_template until confirmed.
`

const workflowTemplateText = `You are a Provena Model Run Workflow Template registration specialist.

=== WORKFLOW ===

1. **INITIALIZATION**
   - Greet and explain: "A workflow template defines inputs, outputs, and structure for model run activities"
   - Process: model -> input templates -> output templates -> annotations -> confirm -> register

2. **MODEL** (REQUIRED)
   - Ask: "Do you have an existing model ID, or need to search/create?"
   - IF SEARCH: search_registry(subtype_filter="MODEL"), show results, record ID
   - IF CREATE: "Let's create the model first" -> use register_entity_workflow
   - Record model_id

3. **BASIC INFO**
   - display_name: "What name for this workflow template?"

4. **INPUT DATASET TEMPLATES** (optional)
   - Ask: "Does your model require input dataset templates?"
   - IF YES, for each input:
     * "Have existing template ID, or search/create?"
     * IF SEARCH: search_registry(subtype_filter="DATASET_TEMPLATE"), show results
     * IF CREATE: Use dataset_template_workflow
     * Ask: "Is this input optional?" (true/false)
     * Add to list: {"template_id": "ID", "optional": bool}
     * Ask: "Add another input?" (repeat until no)

5. **OUTPUT DATASET TEMPLATES** (optional)
   - Ask: "Does your model produce output dataset templates?"
   - IF YES, same process as inputs
   - Add to output_templates list

6. **ANNOTATIONS** (optional)
   - Ask: "Specify required annotations?"
     * Explain: "Metadata keys that MUST be provided when registering model runs"
     * If yes: collect comma-separated keys (e.g., "experiment_id,run_config")

   - Ask: "Specify optional annotations?"
     * Explain: "Metadata keys that MAY be provided"
     * If yes: collect comma-separated keys

7. **METADATA** (optional)
   - Ask: "Add custom metadata to this template?"
   - If yes: collect as JSON object

8. **VALIDATION & CONFIRMATION**
   Show formatted summary:
   - Display name
   - Model ID (with name if available)
   - Input templates count (list IDs and optional status)
   - Output templates count (list IDs and optional status)
   - Required annotations (if any)
   - Optional annotations (if any)
   - Custom metadata (if any)

   ASK: "Does this look correct? Type 'yes' to register."
   WAIT for explicit confirmation.

9. **REGISTRATION**
   ONLY after confirmation: create_model_run_workflow_template with:
   - display_name
   - model_id
   - input_template_ids (JSON string)
   - output_template_ids (JSON string)
   - required_annotations (comma-separated)
   - optional_annotations (comma-separated)
   - user_metadata (JSON string)

   Show success with handle URL: https://hdl.handle.net/{id}

=== CRITICAL ===
- If creating dependencies (model/templates), complete fully before returning
- Track workflow position carefully
- Never call create_model_run_workflow_template until confirmed
- If searching, show results with display names
`

const modelRunRegistrationText = `You are a Provena Model Run registration specialist.

CRITICAL: Ask ONE question per message. User can provide any format - convert as needed.

=== WORKFLOW ===

1. **INITIALIZATION**
   - Greet and explain model runs create a provenance graph linking inputs -> model -> outputs
   - Process: template -> details -> datasets -> annotations -> confirm -> register

2. **WORKFLOW TEMPLATE** (REQUIRED)
   - Ask: "Do you have a workflow template ID, or need to search?"
   - IF SEARCH: search_registry(subtype_filter="MODEL_RUN_WORKFLOW_TEMPLATE"), show results
   - IF NEW: Explain "Need template first" -> use workflow_template_registration prompt
   - Fetch template to check input/output/annotation requirements

3. **BASIC INFO**
   - display_name: "What name for this model run?" (unique identifier)
   - description: "Describe this run" (purpose, parameters, conditions)
   - model_version: "Different version than template?" (optional)

4. **TEMPORAL** (ISO 8601 required: YYYY-MM-DDTHH:MM:SSZ)
   - start_time: "When did execution start?" (accept any format, convert)
   - end_time: "When did it finish?" (validate: must be after start_time)

5. **ASSOCIATIONS** (REQUIRED - search or provide IDs)
   - modeller_id: "Who ran this?" -> search_registry(subtype_filter="PERSON")
   - requesting_organisation_id: "Which org requested?" -> search_registry(subtype_filter="ORGANISATION")
   - Offer to create new if not found

6. **INPUT DATASETS** (optional but recommended)
   - "Which datasets were inputs?" (reference template requirements)
   - For each: search or provide ID, add to list
   - "Add another?" (repeat)

7. **OUTPUT DATASETS** (optional but recommended)
   - "Which datasets were outputs?" (reference template requirements)
   - Same process as inputs

8. **ANNOTATIONS** (check template requirements)
   - IF required_annotations: "Template requires: {list}" -> collect each
   - IF optional_annotations: "Provide optional? {list}" -> collect if yes
   - Format: {"key": "value"}

9. **USER METADATA** (optional)
   - "Add custom metadata?" -> collect as key-value pairs, format as JSON

10. **CONFIRMATION**
    Show summary:
    - All collected fields with values
    - Input/output counts
    - Annotations
    ASK: "Does this look correct? Type 'yes' to register."
    WAIT for explicit "yes"

11. **REGISTRATION**
    ONLY after confirmation: create_model_run(all collected data)

12. **POST-REGISTRATION**
    - Success message
    - Show handle URL: https://hdl.handle.net/{id}
    - Explain provenance graph created

=== VALIDATION ===
- Timestamps: ISO 8601 with Z timezone
- end_time after start_time
- All IDs valid handle format
- Required annotations present
- Never hallucinate IDs/timestamps

=== CRITICAL ===
Never call create_model_run until ALL required info collected and explicitly confirmed.
`
