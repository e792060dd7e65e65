package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/provena/provagent/internal/gateway"
	"github.com/provena/provagent/internal/orchestrator/models"
	provider "github.com/provena/provagent/internal/provider/models"
	"github.com/provena/provagent/internal/testing/testhelpers"
	"github.com/provena/provagent/internal/ui"
)

// mockExecutor implements ToolExecutor
type mockExecutor struct {
	ExecuteFunc func(ctx context.Context, name string, args map[string]any) gateway.Outcome
	Calls       []string
}

func (m *mockExecutor) Execute(ctx context.Context, name string, args map[string]any) gateway.Outcome {
	m.Calls = append(m.Calls, name)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, name, args)
	}
	return gateway.Success(map[string]any{"result": "ok"})
}

// failingProvider always errors from Generate
type failingProvider struct{}

func (f *failingProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	return nil, errors.New("backend unavailable")
}

func (f *failingProvider) DefineTools(ctx context.Context, tools []provider.ToolDefinition) error {
	return nil
}

func (f *failingProvider) SetModel(model string) error { return nil }

func (f *failingProvider) GetModel() string { return "failing-model" }

// mockPrompts implements PromptSource
type mockPrompts struct {
	RenderFunc func(callName string, args map[string]any) (string, error)
}

func (m *mockPrompts) RenderPrompt(callName string, args map[string]any) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(callName, args)
	}
	return "", errors.New("unknown prompt")
}

func newTestOrchestrator(
	p *testhelpers.MockProvider,
	exec *mockExecutor,
	prompts *mockPrompts,
	mockUI *testhelpers.MockUI,
	maxRounds int,
) *Orchestrator {
	if exec == nil {
		exec = &mockExecutor{}
	}
	if prompts == nil {
		prompts = &mockPrompts{}
	}
	if mockUI == nil {
		mockUI = &testhelpers.MockUI{}
	}
	return New(
		p,
		exec,
		prompts,
		NewConfirmationPolicy([]string{"create"}),
		mockUI,
		"system prompt",
		maxRounds,
		slog.New(slog.DiscardHandler),
	)
}

func TestRunTurn_TextResponse(t *testing.T) {
	p := testhelpers.NewMockProvider().WithTextResponse("Hello, how can I help?")
	mockUI := &testhelpers.MockUI{}
	orch := newTestOrchestrator(p, nil, nil, mockUI, 12)

	result, err := orch.RunTurn(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.State != TurnDone {
		t.Errorf("Expected TurnDone, got: %s", result.State)
	}
	if result.Rounds != 1 {
		t.Errorf("Expected 1 round, got: %d", result.Rounds)
	}

	history := orch.History()
	// system, user, assistant
	if len(history) != 3 {
		t.Fatalf("Expected 3 messages, got: %d", len(history))
	}
	if history[2].Role != models.RoleAssistant || history[2].Content != "Hello, how can I help?" {
		t.Errorf("Unexpected assistant message: %+v", history[2])
	}
	msgs := mockUI.GetMessages()
	if len(msgs) != 1 || msgs[0] != "Hello, how can I help?" {
		t.Errorf("Expected the response written to the UI, got: %v", msgs)
	}
}

func TestRunTurn_ToolCallOrdering(t *testing.T) {
	p := testhelpers.NewMockProvider().
		WithToolCallResponse([]models.ToolCall{
			{ID: "call_1", Name: "search_registry", Args: map[string]any{"query": "coral"}},
			{ID: "call_2", Name: "fetch_registry_item", Args: map[string]any{"item_id": "10378.1/x"}},
		}).
		WithTextResponse("Found it.")
	exec := &mockExecutor{}
	orch := newTestOrchestrator(p, exec, nil, nil, 12)

	result, err := orch.RunTurn(context.Background(), "find coral data")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.State != TurnDone || result.Rounds != 2 {
		t.Errorf("Expected TurnDone in 2 rounds, got: %+v", result)
	}
	if len(exec.Calls) != 2 {
		t.Fatalf("Expected 2 executions, got: %v", exec.Calls)
	}

	history := orch.History()
	// system, user, assistant(tool calls), tool, tool, assistant(text)
	if len(history) != 6 {
		t.Fatalf("Expected 6 messages, got: %d", len(history))
	}
	if history[2].Role != models.RoleAssistant || len(history[2].ToolCalls) != 2 {
		t.Errorf("Expected assistant message with tool calls before results, got: %+v", history[2])
	}
	if history[3].Role != models.RoleTool || history[3].ToolCallID != "call_1" {
		t.Errorf("Expected first tool result for call_1, got: %+v", history[3])
	}
	if history[3].ToolName != "search_registry" {
		t.Errorf("Expected tool name on result message, got: %q", history[3].ToolName)
	}
	if history[4].ToolCallID != "call_2" {
		t.Errorf("Expected second tool result for call_2, got: %+v", history[4])
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(history[3].Content), &parsed); err != nil {
		t.Fatalf("Tool result is not JSON: %v", err)
	}
	if parsed["status"] != "success" {
		t.Errorf("Expected success status in tool result, got: %v", parsed["status"])
	}
}

func TestRunTurn_ToolErrorAbsorbed(t *testing.T) {
	p := testhelpers.NewMockProvider().
		WithToolCallResponse([]models.ToolCall{
			{ID: "call_1", Name: "search_registry", Args: map[string]any{}},
		}).
		WithTextResponse("Something went wrong, sorry.")
	exec := &mockExecutor{
		ExecuteFunc: func(ctx context.Context, name string, args map[string]any) gateway.Outcome {
			return gateway.Errorf("Search failed: boom")
		},
	}
	orch := newTestOrchestrator(p, exec, nil, nil, 12)

	result, err := orch.RunTurn(context.Background(), "search")
	if err != nil {
		t.Fatalf("Tool errors must not abort the turn: %v", err)
	}
	if result.State != TurnDone {
		t.Errorf("Expected TurnDone, got: %s", result.State)
	}

	history := orch.History()
	if !strings.Contains(history[3].Content, `"status":"error"`) {
		t.Errorf("Expected error status in tool result, got: %s", history[3].Content)
	}
}

func TestRunTurn_RoundCap(t *testing.T) {
	// The provider asks for tools forever; the loop must stop at the cap.
	p := testhelpers.NewMockProvider()
	for i := 0; i < 20; i++ {
		p.WithToolCallResponse([]models.ToolCall{
			{ID: "call", Name: "get_current_date", Args: map[string]any{}},
		})
	}
	mockUI := &testhelpers.MockUI{}
	orch := newTestOrchestrator(p, nil, nil, mockUI, 12)

	result, err := orch.RunTurn(context.Background(), "loop forever")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.State != TurnAborted {
		t.Errorf("Expected TurnAborted, got: %s", result.State)
	}
	if result.Rounds != 12 {
		t.Errorf("Expected exactly 12 rounds, got: %d", result.Rounds)
	}

	aborted := false
	for _, s := range mockUI.Statuses {
		if s == "aborted: Stopping after too many tool rounds." {
			aborted = true
		}
	}
	if !aborted {
		t.Errorf("Expected aborted status, got: %v", mockUI.Statuses)
	}
}

func TestRunTurn_EmptyToolCallList(t *testing.T) {
	p := testhelpers.NewMockProvider().
		WithToolCallResponse(nil).
		WithTextResponse("Recovered.")
	orch := newTestOrchestrator(p, nil, nil, nil, 12)

	result, err := orch.RunTurn(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.State != TurnDone || result.Rounds != 2 {
		t.Errorf("Expected recovery on the next round, got: %+v", result)
	}

	history := orch.History()
	if history[2].Role != models.RoleSystem || !strings.Contains(history[2].Content, "empty tool call list") {
		t.Errorf("Expected corrective system message, got: %+v", history[2])
	}
}

func TestRunTurn_PromptExpansion(t *testing.T) {
	p := testhelpers.NewMockProvider().
		WithToolCallResponse([]models.ToolCall{
			{ID: "call_1", Name: "get_prompt_dataset_registration_workflow", Args: map[string]any{}},
		}).
		WithTextResponse("Here is the workflow.")
	exec := &mockExecutor{}
	prompts := &mockPrompts{
		RenderFunc: func(callName string, args map[string]any) (string, error) {
			return "Step 1: gather metadata.", nil
		},
	}
	orch := newTestOrchestrator(p, exec, prompts, nil, 12)

	_, err := orch.RunTurn(context.Background(), "register a dataset")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(exec.Calls) != 0 {
		t.Errorf("Prompt calls must not reach the executor, got: %v", exec.Calls)
	}

	history := orch.History()
	// system, user, assistant, tool(raw text), system(workflow), assistant
	if len(history) != 6 {
		t.Fatalf("Expected 6 messages, got: %d", len(history))
	}
	if history[3].Role != models.RoleTool || history[3].Content != "Step 1: gather metadata." {
		t.Errorf("Expected raw prompt text as tool result, got: %+v", history[3])
	}
	if history[4].Role != models.RoleSystem || history[4].Content != "Workflow Instructions: Step 1: gather metadata." {
		t.Errorf("Expected standing workflow instruction, got: %+v", history[4])
	}
}

func TestRunTurn_ConfirmationDeclined(t *testing.T) {
	p := testhelpers.NewMockProvider().
		WithToolCallResponse([]models.ToolCall{
			{ID: "call_1", Name: "create_model", Args: map[string]any{"name": "m"}},
		}).
		WithTextResponse("Okay, not registering it.")
	exec := &mockExecutor{}
	mockUI := &testhelpers.MockUI{
		ReadPermissionFunc: func(ctx context.Context, prompt string) (ui.PermissionDecision, error) {
			if !strings.Contains(prompt, "create_model") {
				t.Errorf("Expected tool name in confirmation prompt, got: %q", prompt)
			}
			return ui.DecisionDeny, nil
		},
	}
	orch := newTestOrchestrator(p, exec, nil, mockUI, 12)

	result, err := orch.RunTurn(context.Background(), "register model m")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.State != TurnDone || result.Rounds != 2 {
		t.Errorf("Expected completion in 2 rounds, got: %+v", result)
	}
	if len(exec.Calls) != 0 {
		t.Errorf("Declined calls must not be dispatched, got: %v", exec.Calls)
	}

	history := orch.History()
	var parsed map[string]any
	if err := json.Unmarshal([]byte(history[3].Content), &parsed); err != nil {
		t.Fatalf("Cancelled result is not JSON: %v", err)
	}
	if parsed["status"] != "cancelled" {
		t.Errorf("Expected cancelled status, got: %v", parsed["status"])
	}
	if parsed["message"] != "User cancelled call to create_model." {
		t.Errorf("Unexpected message: %v", parsed["message"])
	}
}

func TestRunTurn_ConfirmationAccepted(t *testing.T) {
	p := testhelpers.NewMockProvider().
		WithToolCallResponse([]models.ToolCall{
			{ID: "call_1", Name: "create_person", Args: map[string]any{"first_name": "Ada"}},
		}).
		WithTextResponse("Registered.")
	exec := &mockExecutor{}
	mockUI := &testhelpers.MockUI{
		ReadPermissionFunc: func(ctx context.Context, prompt string) (ui.PermissionDecision, error) {
			return ui.DecisionAllow, nil
		},
	}
	orch := newTestOrchestrator(p, exec, nil, mockUI, 12)

	_, err := orch.RunTurn(context.Background(), "register Ada")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(exec.Calls) != 1 || exec.Calls[0] != "create_person" {
		t.Errorf("Expected the accepted call to be dispatched, got: %v", exec.Calls)
	}
}

func TestRunTurn_NonCreateToolSkipsConfirmation(t *testing.T) {
	p := testhelpers.NewMockProvider().
		WithToolCallResponse([]models.ToolCall{
			{ID: "call_1", Name: "search_registry", Args: map[string]any{"query": "x"}},
		}).
		WithTextResponse("Done.")
	exec := &mockExecutor{}
	mockUI := &testhelpers.MockUI{
		ReadPermissionFunc: func(ctx context.Context, prompt string) (ui.PermissionDecision, error) {
			t.Error("Read tools must not prompt for confirmation")
			return ui.DecisionDeny, nil
		},
	}
	orch := newTestOrchestrator(p, exec, nil, mockUI, 12)

	if _, err := orch.RunTurn(context.Background(), "search"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(exec.Calls) != 1 {
		t.Errorf("Expected dispatch without confirmation, got: %v", exec.Calls)
	}
}

func TestRunTurn_ProviderError(t *testing.T) {
	orch := New(
		&failingProvider{},
		&mockExecutor{},
		&mockPrompts{},
		NewConfirmationPolicy(nil),
		&testhelpers.MockUI{},
		"system",
		12,
		slog.New(slog.DiscardHandler),
	)

	result, err := orch.RunTurn(context.Background(), "hi")
	if err == nil {
		t.Fatal("Expected provider error to surface")
	}
	if result.State != TurnAborted {
		t.Errorf("Expected TurnAborted, got: %s", result.State)
	}
}

func TestRunTurn_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := testhelpers.NewMockProvider().WithTextResponse("never reached")
	orch := newTestOrchestrator(p, nil, nil, nil, 12)

	result, err := orch.RunTurn(ctx, "hi")
	if err == nil {
		t.Fatal("Expected context error")
	}
	if result.State != TurnAborted {
		t.Errorf("Expected TurnAborted, got: %s", result.State)
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	p := testhelpers.NewMockProvider().WithTextResponse("hi")
	orch := newTestOrchestrator(p, nil, nil, nil, 12)
	if _, err := orch.RunTurn(context.Background(), "hello"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	history := orch.History()
	history[0].Content = "tampered"
	if orch.History()[0].Content == "tampered" {
		t.Error("History must return a copy")
	}
}
