// Package gemini implements the Provider interface on top of the official
// Google Gemini SDK.
package gemini

import (
	"context"
	"sync"

	provider "github.com/provena/provagent/internal/provider/models"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	mu        sync.RWMutex
	modelName string
	tools     []provider.ToolDefinition
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}
}

// Generate sends a request to the Gemini API and returns the response.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	p.mu.RLock()
	model := p.modelName
	tools := p.tools
	p.mu.RUnlock()

	contents, systemInstruction := toGeminiContents(req.History)
	config := toGeminiConfig(req.Config)
	config.SystemInstruction = systemInstruction
	if len(tools) > 0 {
		config.Tools = toGeminiTools(tools)
	}

	resp, err := p.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp, model)
}

// DefineTools registers tool definitions with the provider for native tool calling.
func (p *GeminiProvider) DefineTools(ctx context.Context, tools []provider.ToolDefinition) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tools = tools
	return nil
}

// SetModel changes the active model at runtime.
func (p *GeminiProvider) SetModel(model string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.modelName = model
	return nil
}

// GetModel returns the currently active model name.
func (p *GeminiProvider) GetModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modelName
}
