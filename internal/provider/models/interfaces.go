package models

import (
	"context"
)

// Provider defines the interface for LLM backends.
type Provider interface {
	// Generate sends a request to the model and returns the response.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// DefineTools registers tool definitions with the provider for native
	// tool calling. This should be called before Generate.
	DefineTools(ctx context.Context, tools []ToolDefinition) error

	// SetModel changes the active model at runtime.
	SetModel(model string) error

	// GetModel returns the currently active model name.
	GetModel() string
}
