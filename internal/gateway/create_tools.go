package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/provena/provagent/internal/provena"
)

func parseJSONObject(raw, field string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", field, err)
	}
	return parsed, nil
}

func splitCommaList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type createModelRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	DocumentationURL string `json:"documentation_url"`
	SourceURL        string `json:"source_url"`
	DisplayName      string `json:"display_name"`
	UserMetadata     string `json:"user_metadata"`
}

func (r *createModelRequest) Validate() error {
	var missing []string
	for field, value := range map[string]string{
		"name":              r.Name,
		"description":       r.Description,
		"documentation_url": r.DocumentationURL,
		"source_url":        r.SourceURL,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (g *Gateway) createModel(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[createModelRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}
	metadata, err := parseJSONObject(req.UserMetadata, "user_metadata")
	if err != nil {
		return Errorf("%s", err)
	}
	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Name
	}

	g.log.Info("registering model", "name", req.Name)
	resp, err := g.client.Registry.CreateModel(ctx, provena.ModelDomainInfo{
		DisplayName:      displayName,
		Name:             req.Name,
		Description:      req.Description,
		DocumentationURL: req.DocumentationURL,
		SourceURL:        req.SourceURL,
		UserMetadata:     metadata,
	})
	if err != nil {
		return Errorf("Failed to register model: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("Model registration failed: %s", resp.Status.Details)
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Model '%s' registered successfully", req.Name),
	}
	if resp.CreatedItem != nil {
		payload["model_id"] = resp.CreatedItem.ID
		payload["handle_url"] = handleURL(resp.CreatedItem.ID)
	}
	return Success(payload)
}

type createDatasetTemplateRequest struct {
	DisplayName       string `json:"display_name"`
	Description       string `json:"description"`
	DefinedResources  string `json:"defined_resources"`
	DeferredResources string `json:"deferred_resources"`
	UserMetadata      string `json:"user_metadata"`
}

func (r *createDatasetTemplateRequest) Validate() error {
	if strings.TrimSpace(r.DisplayName) == "" {
		return fmt.Errorf("display_name is required")
	}
	return nil
}

func (g *Gateway) createDatasetTemplate(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[createDatasetTemplateRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}

	var defined []provena.DefinedResource
	if req.DefinedResources != "" {
		if err := json.Unmarshal([]byte(req.DefinedResources), &defined); err != nil {
			return Errorf("Invalid defined_resources format: %s", err)
		}
		for i := range defined {
			if defined[i].Path == "" || defined[i].Description == "" {
				return Errorf("Invalid defined_resources format: path and description are required")
			}
			if defined[i].UsageType == "" {
				defined[i].UsageType = "GENERAL_DATA"
			}
			if !provena.ValidUsageType(defined[i].UsageType) {
				return Errorf("Invalid defined_resources format: unknown usage_type %q", defined[i].UsageType)
			}
		}
	}

	var deferred []provena.DeferredResource
	if req.DeferredResources != "" {
		if err := json.Unmarshal([]byte(req.DeferredResources), &deferred); err != nil {
			return Errorf("Invalid deferred_resources format: %s", err)
		}
		for i := range deferred {
			if deferred[i].Key == "" || deferred[i].Description == "" {
				return Errorf("Invalid deferred_resources format: key and description are required")
			}
			if deferred[i].UsageType == "" {
				deferred[i].UsageType = "GENERAL_DATA"
			}
			if !provena.ValidUsageType(deferred[i].UsageType) {
				return Errorf("Invalid deferred_resources format: unknown usage_type %q", deferred[i].UsageType)
			}
		}
	}

	metadata, err := parseJSONObject(req.UserMetadata, "user_metadata")
	if err != nil {
		return Errorf("%s", err)
	}

	g.log.Info("registering dataset template", "display_name", req.DisplayName)
	resp, err := g.client.Registry.CreateDatasetTemplate(ctx, provena.DatasetTemplateDomainInfo{
		DisplayName:       req.DisplayName,
		Description:       req.Description,
		DefinedResources:  defined,
		DeferredResources: deferred,
		UserMetadata:      metadata,
	})
	if err != nil {
		return Errorf("Failed to register dataset template: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("Dataset template registration failed: %s", resp.Status.Details)
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Dataset template '%s' registered successfully", req.DisplayName),
	}
	if resp.CreatedItem != nil {
		payload["template_id"] = resp.CreatedItem.ID
		payload["handle_url"] = handleURL(resp.CreatedItem.ID)
	}
	return Success(payload)
}

type createWorkflowTemplateRequest struct {
	DisplayName         string `json:"display_name"`
	ModelID             string `json:"model_id"`
	InputTemplateIDs    string `json:"input_template_ids"`
	OutputTemplateIDs   string `json:"output_template_ids"`
	RequiredAnnotations string `json:"required_annotations"`
	OptionalAnnotations string `json:"optional_annotations"`
	UserMetadata        string `json:"user_metadata"`
}

func (r *createWorkflowTemplateRequest) Validate() error {
	if strings.TrimSpace(r.DisplayName) == "" {
		return fmt.Errorf("display_name is required")
	}
	if strings.TrimSpace(r.ModelID) == "" {
		return fmt.Errorf("model_id is required")
	}
	return nil
}

func parseTemplateResources(raw, field string) ([]provena.TemplateResource, error) {
	if raw == "" {
		return nil, nil
	}
	var resources []provena.TemplateResource
	if err := json.Unmarshal([]byte(raw), &resources); err != nil {
		return nil, fmt.Errorf("invalid %s format: %w", field, err)
	}
	for _, r := range resources {
		if r.TemplateID == "" {
			return nil, fmt.Errorf("invalid %s format: template_id is required", field)
		}
	}
	return resources, nil
}

func (g *Gateway) createWorkflowTemplate(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[createWorkflowTemplateRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}

	inputs, err := parseTemplateResources(req.InputTemplateIDs, "input_template_ids")
	if err != nil {
		return Errorf("%s", err)
	}
	outputs, err := parseTemplateResources(req.OutputTemplateIDs, "output_template_ids")
	if err != nil {
		return Errorf("%s", err)
	}

	var annotations *provena.WorkflowTemplateAnnotations
	required := splitCommaList(req.RequiredAnnotations)
	optional := splitCommaList(req.OptionalAnnotations)
	if len(required) > 0 || len(optional) > 0 {
		annotations = &provena.WorkflowTemplateAnnotations{
			Required: required,
			Optional: optional,
		}
	}

	metadata, err := parseJSONObject(req.UserMetadata, "user_metadata")
	if err != nil {
		return Errorf("%s", err)
	}

	g.log.Info("registering workflow template", "display_name", req.DisplayName, "model_id", req.ModelID)
	resp, err := g.client.Registry.CreateWorkflowTemplate(ctx, provena.WorkflowTemplateDomainInfo{
		DisplayName:     req.DisplayName,
		SoftwareID:      req.ModelID,
		InputTemplates:  inputs,
		OutputTemplates: outputs,
		Annotations:     annotations,
		UserMetadata:    metadata,
	})
	if err != nil {
		return Errorf("Failed to register model run workflow template: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("Workflow template registration failed: %s", resp.Status.Details)
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Model run workflow template '%s' registered successfully", req.DisplayName),
		"summary": map[string]any{
			"display_name":           req.DisplayName,
			"model_id":               req.ModelID,
			"input_templates_count":  len(inputs),
			"output_templates_count": len(outputs),
			"has_annotations":        annotations != nil,
		},
	}
	if resp.CreatedItem != nil {
		payload["workflow_template_id"] = resp.CreatedItem.ID
		payload["handle_url"] = handleURL(resp.CreatedItem.ID)
	}
	return Success(payload)
}

type createDatasetRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	PublisherID    string `json:"publisher_id"`
	OrganisationID string `json:"organisation_id"`
	CreatedDate    string `json:"created_date"`
	PublishedDate  string `json:"published_date"`
	License        string `json:"license"`

	AccessReposited   *bool  `json:"access_reposited"`
	AccessURI         string `json:"access_uri"`
	AccessDescription string `json:"access_description"`

	EthicsRegistrationRelevant  bool `json:"ethics_registration_relevant"`
	EthicsRegistrationObtained  bool `json:"ethics_registration_obtained"`
	EthicsAccessRelevant        bool `json:"ethics_access_relevant"`
	EthicsAccessObtained        bool `json:"ethics_access_obtained"`
	IndigenousKnowledgeRelevant bool `json:"indigenous_knowledge_relevant"`
	IndigenousKnowledgeObtained bool `json:"indigenous_knowledge_obtained"`
	ExportControlsRelevant      bool `json:"export_controls_relevant"`
	ExportControlsObtained      bool `json:"export_controls_obtained"`

	Purpose           string `json:"purpose"`
	RightsHolder      string `json:"rights_holder"`
	UsageLimitations  string `json:"usage_limitations"`
	PreferredCitation string `json:"preferred_citation"`

	SpatialCoverage   string `json:"spatial_coverage"`
	SpatialExtent     string `json:"spatial_extent"`
	SpatialResolution string `json:"spatial_resolution"`

	TemporalBeginDate  string `json:"temporal_begin_date"`
	TemporalEndDate    string `json:"temporal_end_date"`
	TemporalResolution string `json:"temporal_resolution"`

	Formats         string `json:"formats"`
	Keywords        string `json:"keywords"`
	UserMetadata    string `json:"user_metadata"`
	DataCustodianID string `json:"data_custodian_id"`
	PointOfContact  string `json:"point_of_contact"`
}

func (r *createDatasetRequest) Validate() error {
	var missing []string
	for field, value := range map[string]string{
		"name":            r.Name,
		"description":     r.Description,
		"publisher_id":    r.PublisherID,
		"organisation_id": r.OrganisationID,
		"created_date":    r.CreatedDate,
		"published_date":  r.PublishedDate,
		"license":         r.License,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// maxEWKTLength is the schema limit on spatial strings.
const maxEWKTLength = 50000

// toEWKT normalizes a spatial string to EWKT, assuming EPSG:4326 when the
// SRID prefix is absent.
func (g *Gateway) toEWKT(val, field string) string {
	s := strings.TrimSpace(val)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		g.log.Warn("spatial value provided without SRID, assuming EPSG:4326", "field", field)
		s = "SRID=4326;" + s
	}
	if len(s) > maxEWKTLength {
		g.log.Warn("spatial value exceeds schema length limit and may be rejected", "field", field)
	}
	return s
}

func (g *Gateway) createDataset(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[createDatasetRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}

	info := provena.DatasetInfo{
		Name:          req.Name,
		Description:   req.Description,
		PublisherID:   req.PublisherID,
		CreatedDate:   provena.DatasetDate{Relevant: true, Value: req.CreatedDate},
		PublishedDate: provena.DatasetDate{Relevant: true, Value: req.PublishedDate},
		License:       req.License,
		AccessInfo: provena.AccessInfo{
			Reposited:   boolDefault(req.AccessReposited, true),
			URI:         req.AccessURI,
			Description: req.AccessDescription,
		},
		Purpose:           req.Purpose,
		RightsHolder:      req.RightsHolder,
		UsageLimitations:  req.UsageLimitations,
		PreferredCitation: req.PreferredCitation,
		Formats:           splitCommaList(req.Formats),
		Keywords:          splitCommaList(req.Keywords),
	}

	if req.SpatialCoverage != "" || req.SpatialExtent != "" || req.SpatialResolution != "" {
		if res := strings.TrimSpace(req.SpatialResolution); res != "" {
			var f float64
			if _, err := fmt.Sscanf(res, "%g", &f); err != nil {
				g.log.Warn("spatial_resolution should be a decimal degrees string")
			}
		}
		info.SpatialInfo = &provena.SpatialInfo{
			Coverage:   g.toEWKT(req.SpatialCoverage, "spatial_coverage"),
			Extent:     g.toEWKT(req.SpatialExtent, "spatial_extent"),
			Resolution: req.SpatialResolution,
		}
	}

	if req.TemporalBeginDate != "" && req.TemporalEndDate != "" {
		info.TemporalInfo = &provena.TemporalInfo{
			Duration: &provena.TemporalDuration{
				BeginDate: req.TemporalBeginDate,
				EndDate:   req.TemporalEndDate,
			},
			Resolution: req.TemporalResolution,
		}
	}

	if req.UserMetadata != "" {
		metadata, err := parseJSONObject(req.UserMetadata, "user_metadata")
		if err != nil {
			g.log.Warn("invalid JSON in user_metadata, skipping")
		} else if metadata != nil {
			stringified := make(map[string]string, len(metadata))
			for k, v := range metadata {
				stringified[k] = fmt.Sprint(v)
			}
			info.UserMetadata = stringified
		}
	}

	format := provena.CollectionFormat{
		DatasetInfo: info,
		Associations: provena.DatasetAssociations{
			OrganisationID:  req.OrganisationID,
			DataCustodianID: req.DataCustodianID,
			PointOfContact:  req.PointOfContact,
		},
		Approvals: provena.DatasetApprovals{
			EthicsRegistration:  provena.Approval{Relevant: req.EthicsRegistrationRelevant, Obtained: req.EthicsRegistrationObtained},
			EthicsAccess:        provena.Approval{Relevant: req.EthicsAccessRelevant, Obtained: req.EthicsAccessObtained},
			IndigenousKnowledge: provena.Approval{Relevant: req.IndigenousKnowledgeRelevant, Obtained: req.IndigenousKnowledgeObtained},
			ExportControls:      provena.Approval{Relevant: req.ExportControlsRelevant, Obtained: req.ExportControlsObtained},
		},
	}

	g.log.Info("registering dataset", "name", req.Name)
	resp, err := g.client.Datastore.MintDataset(ctx, format)
	if err != nil {
		return Errorf("Registration failed: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("Registration failed: %s", resp.Status.Details)
	}

	return Success(map[string]any{
		"dataset_id": resp.Handle,
		"message":    fmt.Sprintf("Dataset '%s' registered successfully", req.Name),
		"handle_url": handleURL(resp.Handle),
	})
}

type createPersonRequest struct {
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	DisplayName    string            `json:"display_name"`
	ORCID          string            `json:"orcid"`
	EthicsApproved *bool             `json:"ethics_approved"`
	UserMetadata   map[string]string `json:"user_metadata"`
}

func (r *createPersonRequest) Validate() error {
	var missing []string
	for field, value := range map[string]string{
		"first_name": r.FirstName,
		"last_name":  r.LastName,
		"email":      r.Email,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (g *Gateway) createPerson(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[createPersonRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	displayName := req.DisplayName
	if displayName == "" {
		displayName = firstName + " " + lastName
	}

	orcid := strings.TrimSpace(req.ORCID)
	if orcid != "" && !strings.HasPrefix(orcid, "http") {
		orcid = "https://orcid.org/" + orcid
	}

	g.log.Info("registering person", "display_name", displayName)
	resp, err := g.client.Registry.CreatePerson(ctx, provena.PersonDomainInfo{
		DisplayName:    displayName,
		FirstName:      firstName,
		LastName:       lastName,
		Email:          strings.TrimSpace(req.Email),
		ORCID:          orcid,
		EthicsApproved: boolDefault(req.EthicsApproved, true),
		UserMetadata:   req.UserMetadata,
	})
	if err != nil {
		return Errorf("Person creation failed: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("%s", resp.Status.Details)
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Person '%s' registered successfully", displayName),
	}
	if resp.CreatedItem != nil {
		payload["person_id"] = resp.CreatedItem.ID
		payload["handle_url"] = handleURL(resp.CreatedItem.ID)
	}
	return Success(payload)
}

type createOrganisationRequest struct {
	Name         string            `json:"name"`
	DisplayName  string            `json:"display_name"`
	ROR          string            `json:"ror"`
	UserMetadata map[string]string `json:"user_metadata"`
}

func (r *createOrganisationRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func (g *Gateway) createOrganisation(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[createOrganisationRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = strings.TrimSpace(req.Name)
	}

	ror := strings.TrimSpace(req.ROR)
	if ror != "" && !strings.HasPrefix(ror, "http") {
		ror = "https://ror.org/" + ror
	}

	g.log.Info("registering organisation", "display_name", displayName)
	resp, err := g.client.Registry.CreateOrganisation(ctx, provena.OrganisationDomainInfo{
		DisplayName:  displayName,
		Name:         req.Name,
		ROR:          ror,
		UserMetadata: req.UserMetadata,
	})
	if err != nil {
		return Errorf("Organisation creation failed: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("%s", resp.Status.Details)
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Organisation '%s' registered successfully", displayName),
	}
	if resp.CreatedItem != nil {
		payload["organisation_id"] = resp.CreatedItem.ID
		payload["handle_url"] = handleURL(resp.CreatedItem.ID)
	}
	return Success(payload)
}

type createModelRunRequest struct {
	WorkflowTemplateID       string `json:"workflow_template_id"`
	DisplayName              string `json:"display_name"`
	Description              string `json:"description"`
	StartTime                string `json:"start_time"`
	EndTime                  string `json:"end_time"`
	ModellerID               string `json:"associations_modeller_id"`
	RequestingOrganisationID string `json:"associations_requesting_organisation_id"`
	ModelVersion             string `json:"model_version"`
	InputDatasets            string `json:"input_datasets"`
	OutputDatasets           string `json:"output_datasets"`
	Annotations              string `json:"annotations"`
	UserMetadata             string `json:"user_metadata"`
}

func (r *createModelRunRequest) Validate() error {
	var missing []string
	for field, value := range map[string]string{
		"workflow_template_id":                    r.WorkflowTemplateID,
		"display_name":                            r.DisplayName,
		"description":                             r.Description,
		"start_time":                              r.StartTime,
		"end_time":                                r.EndTime,
		"associations_modeller_id":                r.ModellerID,
		"associations_requesting_organisation_id": r.RequestingOrganisationID,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// templateSlots extracts the template references from a fetched workflow
// template item, trying the field names used across registry versions.
func templateSlots(item map[string]any, side string) []map[string]any {
	candidates := []string{side + "_templates", side + "_template_resources", side + "s"}
	for _, key := range candidates {
		raw, ok := item[key].([]any)
		if !ok {
			continue
		}
		slots := make([]map[string]any, 0, len(raw))
		for _, entry := range raw {
			if m, ok := entry.(map[string]any); ok {
				slots = append(slots, m)
			}
		}
		if len(slots) > 0 {
			return slots
		}
	}
	return nil
}

// bindDatasets maps dataset ids positionally onto the template slots declared
// by the workflow template. When there are more datasets than slots the first
// slot is reused.
func bindDatasets(rawIDs, field string, slots []map[string]any) ([]provena.TemplatedDataset, error) {
	if rawIDs == "" {
		return nil, nil
	}
	var ids []any
	if err := json.Unmarshal([]byte(rawIDs), &ids); err != nil {
		return nil, fmt.Errorf("invalid %s JSON: %w", field, err)
	}

	bound := make([]provena.TemplatedDataset, 0, len(ids))
	for idx, rawID := range ids {
		if len(slots) == 0 {
			return nil, fmt.Errorf("no %s template found for dataset %v. Workflow template must define %s templates", field, rawID, field)
		}
		slot := slots[0]
		if idx < len(slots) {
			slot = slots[idx]
		}
		templateID, _ := slot["template_id"].(string)
		if templateID == "" {
			templateID, _ = slot["id"].(string)
		}
		if templateID == "" {
			return nil, fmt.Errorf("could not extract template_id from %s template at index %d", field, idx)
		}
		bound = append(bound, provena.TemplatedDataset{
			DatasetTemplateID: templateID,
			DatasetID:         strings.TrimSpace(fmt.Sprint(rawID)),
			DatasetType:       provena.DatasetTypeDataStore,
		})
	}
	return bound, nil
}

func (g *Gateway) createModelRun(ctx context.Context, args map[string]any) Outcome {
	if outcome, ok := g.requireAuth(); !ok {
		return outcome
	}
	req, err := decodeArgs[createModelRunRequest](args)
	if err != nil {
		return Errorf("%s", err)
	}

	templateResp, err := g.client.Registry.GeneralFetchItem(ctx, req.WorkflowTemplateID)
	if err != nil {
		return Errorf("Failed to fetch workflow template: %s", err)
	}
	if !templateResp.Status.Success {
		return Errorf("Workflow template %s not found: %s", req.WorkflowTemplateID, templateResp.Status.Details)
	}
	inputSlots := templateSlots(templateResp.Item, "input")
	outputSlots := templateSlots(templateResp.Item, "output")
	g.log.Info("fetched workflow template",
		"template_id", req.WorkflowTemplateID,
		"input_templates", len(inputSlots),
		"output_templates", len(outputSlots))

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return Errorf("Invalid timestamp format: %s. Use ISO 8601 (YYYY-MM-DDTHH:MM:SSZ)", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return Errorf("Invalid timestamp format: %s. Use ISO 8601 (YYYY-MM-DDTHH:MM:SSZ)", err)
	}
	if !endTime.After(startTime) {
		return Errorf("end_time must be after start_time")
	}

	inputs, err := bindDatasets(req.InputDatasets, "input", inputSlots)
	if err != nil {
		return Errorf("%s", err)
	}
	outputs, err := bindDatasets(req.OutputDatasets, "output", outputSlots)
	if err != nil {
		return Errorf("%s", err)
	}

	annotations, err := parseJSONObject(req.Annotations, "annotations")
	if err != nil {
		return Errorf("%s", err)
	}
	metadata, err := parseJSONObject(req.UserMetadata, "user_metadata")
	if err != nil {
		return Errorf("%s", err)
	}

	record := provena.ModelRunRecord{
		WorkflowTemplateID: req.WorkflowTemplateID,
		ModelVersion:       req.ModelVersion,
		Inputs:             inputs,
		Outputs:            outputs,
		Annotations:        annotations,
		DisplayName:        req.DisplayName,
		Description:        req.Description,
		Associations: provena.ModelRunAssociations{
			ModellerID:               req.ModellerID,
			RequestingOrganisationID: req.RequestingOrganisationID,
		},
		StartTime:    startTime.Unix(),
		EndTime:      endTime.Unix(),
		UserMetadata: metadata,
	}

	g.log.Info("registering model run", "display_name", req.DisplayName)
	resp, err := g.client.Prov.CreateModelRun(ctx, record)
	if err != nil {
		return Errorf("Failed to register model run: %s", err)
	}
	if !resp.Status.Success {
		return Errorf("Model run registration failed: %s", resp.Status.Details)
	}

	return Success(map[string]any{
		"session_id": resp.SessionID,
		"message":    fmt.Sprintf("Model run '%s' registration initiated successfully. Use the session_id to track progress.", req.DisplayName),
		"note":       "Model run registration is asynchronous. Check the job status using the session_id.",
		"summary": map[string]any{
			"display_name":         req.DisplayName,
			"workflow_template_id": req.WorkflowTemplateID,
			"start_time":           req.StartTime,
			"end_time":             req.EndTime,
			"input_count":          len(inputs),
			"output_count":         len(outputs),
			"has_annotations":      annotations != nil,
		},
	})
}
