package gemini

import (
	"errors"
	"testing"

	"github.com/provena/provagent/internal/orchestrator/models"
	provider "github.com/provena/provagent/internal/provider/models"
	"google.golang.org/genai"
)

func TestToGeminiContents_SystemInstruction(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleSystem, Content: "You are connected to Provena tools."},
		{Role: models.RoleUser, Content: "Hi"},
		{Role: models.RoleAssistant, Content: "Hello"},
	}

	contents, systemInstruction := toGeminiContents(history)

	if systemInstruction == nil {
		t.Fatal("Expected leading system message to become the system instruction")
	}
	if systemInstruction.Parts[0].Text != "You are connected to Provena tools." {
		t.Errorf("Unexpected instruction text: %q", systemInstruction.Parts[0].Text)
	}
	if len(contents) != 2 {
		t.Fatalf("Expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Errorf("Unexpected roles: %s, %s", contents[0].Role, contents[1].Role)
	}
}

func TestToGeminiContents_MidConversationSystemAsUser(t *testing.T) {
	// Workflow instruction messages injected mid-turn ride along as user
	// content since the API only accepts user/model roles.
	history := []models.Message{
		{Role: models.RoleSystem, Content: "system prompt"},
		{Role: models.RoleUser, Content: "register a dataset"},
		{Role: models.RoleSystem, Content: "Workflow Instructions: follow the steps"},
	}

	contents, _ := toGeminiContents(history)

	if len(contents) != 2 {
		t.Fatalf("Expected 2 contents, got %d", len(contents))
	}
	if contents[1].Role != "user" {
		t.Errorf("Expected mid-turn system message carried as user, got: %s", contents[1].Role)
	}
}

func TestToGeminiContents_ToolResultMessage(t *testing.T) {
	history := []models.Message{
		{
			Role:       models.RoleTool,
			ToolCallID: "call_1",
			ToolName:   "search_registry",
			Content:    `{"status":"success"}`,
		},
	}

	contents, _ := toGeminiContents(history)

	if len(contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(contents))
	}
	fr := contents[0].Parts[0].FunctionResponse
	if fr == nil {
		t.Fatal("Expected a FunctionResponse part")
	}
	if fr.ID != "call_1" || fr.Name != "search_registry" {
		t.Errorf("Unexpected correlation fields: id=%q name=%q", fr.ID, fr.Name)
	}
	if fr.Response["content"] != `{"status":"success"}` {
		t.Errorf("Unexpected response content: %v", fr.Response)
	}
}

func TestToGeminiContents_AssistantToolCalls(t *testing.T) {
	history := []models.Message{
		{
			Role: models.RoleAssistant,
			ToolCalls: []models.ToolCall{
				{ID: "call_1", Name: "fetch_registry_item", Args: map[string]any{"item_id": "x"}},
			},
		},
	}

	contents, _ := toGeminiContents(history)

	if len(contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(contents))
	}
	fc := contents[0].Parts[0].FunctionCall
	if fc == nil || fc.Name != "fetch_registry_item" {
		t.Errorf("Expected FunctionCall part, got: %+v", contents[0].Parts[0])
	}
}

func TestToGeminiContents_SkipsEmptyMessages(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant},
	}

	contents, _ := toGeminiContents(history)

	if len(contents) != 1 {
		t.Errorf("Expected empty message skipped, got %d contents", len(contents))
	}
}

func TestFromGeminiResponse_TextResponse(t *testing.T) {
	geminiResp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "Hello, how can I help?"},
					},
				},
				FinishReason: genai.FinishReasonStop,
			},
		},
	}

	resp, err := fromGeminiResponse(geminiResp, "test-model")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if resp.Content.Type != provider.ResponseTypeText {
		t.Errorf("Expected ResponseTypeText, got %v", resp.Content.Type)
	}
	if resp.Content.Text != "Hello, how can I help?" {
		t.Errorf("Expected 'Hello, how can I help?', got %s", resp.Content.Text)
	}
	if resp.Metadata.ModelUsed != "test-model" {
		t.Errorf("Expected model 'test-model', got %s", resp.Metadata.ModelUsed)
	}
}

func TestFromGeminiResponse_ToolCallGeneratesMissingID(t *testing.T) {
	geminiResp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{
							FunctionCall: &genai.FunctionCall{
								Name: "search_registry",
								Args: map[string]any{"query": "coral"},
							},
						},
					},
				},
				FinishReason: genai.FinishReasonStop,
			},
		},
	}

	resp, err := fromGeminiResponse(geminiResp, "test-model")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if resp.Content.Type != provider.ResponseTypeToolCall {
		t.Fatalf("Expected ResponseTypeToolCall, got %v", resp.Content.Type)
	}
	if len(resp.Content.ToolCalls) != 1 {
		t.Fatalf("Expected 1 tool call, got %d", len(resp.Content.ToolCalls))
	}
	if resp.Content.ToolCalls[0].ID == "" {
		t.Error("Expected a generated id when the API omits one")
	}
}

func TestFromGeminiResponse_SafetyBlock(t *testing.T) {
	geminiResp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety},
		},
	}

	_, err := fromGeminiResponse(geminiResp, "test-model")
	if err == nil {
		t.Fatal("Expected error for safety block")
	}

	var provErr *provider.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Code != provider.ErrorCodeContentBlocked {
		t.Errorf("Expected content blocked code, got %s", provErr.Code)
	}
}

func TestFromGeminiResponse_MaxTokensKeepsPartial(t *testing.T) {
	geminiResp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: "partial answer"}},
				},
				FinishReason: genai.FinishReasonMaxTokens,
			},
		},
	}

	resp, err := fromGeminiResponse(geminiResp, "test-model")
	if err == nil {
		t.Fatal("Expected error for truncated response")
	}
	if resp == nil || resp.Content.Text != "partial answer" {
		t.Errorf("Expected partial text preserved, got: %+v", resp)
	}

	var provErr *provider.ProviderError
	if !errors.As(err, &provErr) || provErr.Code != provider.ErrorCodeContextLength {
		t.Errorf("Expected context length code, got %v", err)
	}
}

func TestFromGeminiResponse_NoCandidates(t *testing.T) {
	_, err := fromGeminiResponse(&genai.GenerateContentResponse{}, "test-model")
	if err == nil {
		t.Fatal("Expected error for empty response")
	}
}

func TestToGeminiTools(t *testing.T) {
	tools := []provider.ToolDefinition{
		{
			Name:        "search_registry",
			Description: "Search the registry",
			Parameters: &provider.ParameterSchema{
				Type: "object",
				Properties: map[string]provider.PropertySchema{
					"query": {Type: "string", Description: "Search query"},
					"limit": {Type: "integer"},
					"subtype_filter": {
						Type: "string",
						Enum: []string{"DATASET", "MODEL"},
					},
				},
				Required: []string{"query"},
			},
		},
		{Name: "get_current_date", Description: "Current date"},
	}

	geminiTools := toGeminiTools(tools)

	if len(geminiTools) != 1 {
		t.Fatalf("Expected 1 tool group, got %d", len(geminiTools))
	}
	decls := geminiTools[0].FunctionDeclarations
	if len(decls) != 2 {
		t.Fatalf("Expected 2 declarations, got %d", len(decls))
	}

	schema := decls[0].Parameters
	if schema.Type != genai.TypeObject {
		t.Errorf("Expected object schema, got %v", schema.Type)
	}
	if schema.Properties["query"].Type != genai.TypeString {
		t.Errorf("Expected string query, got %v", schema.Properties["query"].Type)
	}
	if schema.Properties["limit"].Type != genai.TypeInteger {
		t.Errorf("Expected integer limit, got %v", schema.Properties["limit"].Type)
	}
	if len(schema.Properties["subtype_filter"].Enum) != 2 {
		t.Errorf("Expected enum preserved, got %v", schema.Properties["subtype_filter"].Enum)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "query" {
		t.Errorf("Expected required query, got %v", schema.Required)
	}

	if decls[1].Parameters != nil {
		t.Errorf("Expected nil parameters for parameterless tool, got %v", decls[1].Parameters)
	}
}

func TestToGeminiTools_Empty(t *testing.T) {
	if toGeminiTools(nil) != nil {
		t.Error("Expected nil for no tools")
	}
}

func TestMapGeminiError(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantCode  provider.ErrorCode
		retryable bool
	}{
		{"auth 401", 401, provider.ErrorCodeAuth, false},
		{"auth 403", 403, provider.ErrorCodeAuth, false},
		{"rate limit", 429, provider.ErrorCodeRateLimit, true},
		{"invalid request", 400, provider.ErrorCodeInvalidRequest, false},
		{"unavailable", 503, provider.ErrorCodeUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapGeminiError(&genai.APIError{Code: tt.code, Message: "x"})

			var provErr *provider.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("Expected ProviderError, got %T", err)
			}
			if provErr.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, provErr.Code)
			}
			if provErr.Retryable != tt.retryable {
				t.Errorf("Expected retryable=%v", tt.retryable)
			}
		})
	}
}

func TestMapGeminiError_Generic(t *testing.T) {
	err := mapGeminiError(errors.New("connection reset"))

	var provErr *provider.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Code != provider.ErrorCodeNetwork || !provErr.Retryable {
		t.Errorf("Expected retryable network error, got %+v", provErr)
	}
}

func TestMapGeminiError_Nil(t *testing.T) {
	if mapGeminiError(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}
