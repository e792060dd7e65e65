// Package testhelpers provides shared utilities for integration testing
package testhelpers

import (
	"context"
	"sync"

	orchmodels "github.com/provena/provagent/internal/orchestrator/models"
	"github.com/provena/provagent/internal/provider/models"
	"github.com/provena/provagent/internal/ui"
)

// MockProvider is a controllable mock for the Gemini provider
type MockProvider struct {
	responses     []models.GenerateResponse
	responseIndex int
	modelName     string
	tools         []models.ToolDefinition
	// OnGenerateCalled is a callback for observing Generate calls
	OnGenerateCalled func(*models.GenerateRequest)
}

// NewMockProvider creates a new mock provider with default settings
func NewMockProvider() *MockProvider {
	return &MockProvider{
		responses: make([]models.GenerateResponse, 0),
		modelName: "mock-model",
	}
}

// WithTextResponse adds a text response to the queue
func (m *MockProvider) WithTextResponse(text string) *MockProvider {
	m.responses = append(m.responses, models.GenerateResponse{
		Content: models.ResponseContent{
			Type: models.ResponseTypeText,
			Text: text,
		},
	})
	return m
}

// WithToolCallResponse adds a tool call response to the queue
func (m *MockProvider) WithToolCallResponse(toolCalls []orchmodels.ToolCall) *MockProvider {
	m.responses = append(m.responses, models.GenerateResponse{
		Content: models.ResponseContent{
			Type:      models.ResponseTypeToolCall,
			ToolCalls: toolCalls,
		},
	})
	return m
}

// Generate implements the Provider interface
func (m *MockProvider) Generate(ctx context.Context, req *models.GenerateRequest) (*models.GenerateResponse, error) {
	if m.OnGenerateCalled != nil {
		m.OnGenerateCalled(req)
	}

	if m.responseIndex >= len(m.responses) {
		// Return a default text response if we run out
		return &models.GenerateResponse{
			Content: models.ResponseContent{
				Type: models.ResponseTypeText,
				Text: "Done",
			},
		}, nil
	}

	resp := m.responses[m.responseIndex]
	m.responseIndex++
	return &resp, nil
}

// DefineTools implements the Provider interface
func (m *MockProvider) DefineTools(ctx context.Context, tools []models.ToolDefinition) error {
	m.tools = tools
	return nil
}

// SetModel sets the model
func (m *MockProvider) SetModel(model string) error {
	m.modelName = model
	return nil
}

// GetModel implements the Provider interface
func (m *MockProvider) GetModel() string {
	return m.modelName
}

// DefinedTools returns the tool definitions registered via DefineTools.
func (m *MockProvider) DefinedTools() []models.ToolDefinition {
	return m.tools
}

// MockUI implements ui.UserInterface for testing
type MockUI struct {
	mu         sync.Mutex
	Messages   []string
	Statuses   []string
	ToolEvents []string

	InputFunc          func(ctx context.Context, prompt string) (string, error)
	ReadPermissionFunc func(ctx context.Context, prompt string) (ui.PermissionDecision, error)
}

func (m *MockUI) ReadInput(ctx context.Context, prompt string) (string, error) {
	if m.InputFunc != nil {
		return m.InputFunc(ctx, prompt)
	}
	return "test input", nil
}

func (m *MockUI) ReadPermission(ctx context.Context, prompt string) (ui.PermissionDecision, error) {
	if m.ReadPermissionFunc != nil {
		return m.ReadPermissionFunc(ctx, prompt)
	}
	return ui.DecisionAllow, nil
}

func (m *MockUI) WriteStatus(phase string, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses = append(m.Statuses, phase+": "+message)
}

func (m *MockUI) WriteMessage(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, content)
}

func (m *MockUI) WriteToolEvent(name string, detail string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ToolEvents = append(m.ToolEvents, name)
}

// GetMessages returns a copy of the messages written so far.
func (m *MockUI) GetMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := make([]string, len(m.Messages))
	copy(msgs, m.Messages)
	return msgs
}
