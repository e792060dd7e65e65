// Package catalog holds the static inventory of tools and prompts the agent
// advertises to the model. Tools are executed by the gateway; prompts resolve
// to instructional text and are expanded inline by the orchestrator.
package catalog

import (
	"fmt"
	"strings"

	provider "github.com/provena/provagent/internal/provider/models"
)

// PromptCallPrefix marks the pseudo-tools through which the model requests a
// prompt expansion instead of a real tool execution.
const PromptCallPrefix = "get_prompt_"

// Prompt is a named template resolving to a plain-text instruction block.
type Prompt struct {
	Name        string
	Description string
	Parameters  *provider.ParameterSchema
	Render      func(args map[string]any) (string, error)
}

// Catalog is the full tool/prompt inventory.
type Catalog struct {
	tools   []provider.ToolDefinition
	prompts []Prompt
}

// New builds the static catalog.
func New() *Catalog {
	return &Catalog{
		tools:   toolDefinitions(),
		prompts: promptDefinitions(),
	}
}

// ToolDefinitions returns everything advertised to the model: the real tools
// plus one pseudo-tool per prompt, named with PromptCallPrefix.
func (c *Catalog) ToolDefinitions() []provider.ToolDefinition {
	defs := make([]provider.ToolDefinition, 0, len(c.tools)+len(c.prompts))
	defs = append(defs, c.tools...)
	for _, p := range c.prompts {
		params := p.Parameters
		if params == nil {
			params = &provider.ParameterSchema{
				Type:       "object",
				Properties: map[string]provider.PropertySchema{},
			}
		}
		defs = append(defs, provider.ToolDefinition{
			Name:        PromptCallPrefix + p.Name,
			Description: fmt.Sprintf("Get the %s prompt: %s", p.Name, p.Description),
			Parameters:  params,
		})
	}
	return defs
}

// ToolNames returns the names of the real tools.
func (c *Catalog) ToolNames() []string {
	names := make([]string, len(c.tools))
	for i, t := range c.tools {
		names[i] = t.Name
	}
	return names
}

// PromptNames returns the names of the prompts.
func (c *Catalog) PromptNames() []string {
	names := make([]string, len(c.prompts))
	for i, p := range c.prompts {
		names[i] = p.Name
	}
	return names
}

// IsPromptCall reports whether a requested tool name denotes a prompt
// expansion rather than a real tool.
func IsPromptCall(toolName string) bool {
	return strings.HasPrefix(toolName, PromptCallPrefix)
}

// RenderPrompt resolves the prompt behind a pseudo-tool call name with the
// supplied arguments.
func (c *Catalog) RenderPrompt(callName string, args map[string]any) (string, error) {
	name := strings.TrimPrefix(callName, PromptCallPrefix)
	for _, p := range c.prompts {
		if p.Name == name {
			return p.Render(args)
		}
	}
	return "", fmt.Errorf("unknown prompt %q", name)
}

// Schema construction helpers.

func objectSchema(props map[string]provider.PropertySchema, required ...string) *provider.ParameterSchema {
	return &provider.ParameterSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func stringProp(desc string) provider.PropertySchema {
	return provider.PropertySchema{Type: "string", Description: desc}
}

func intProp(desc string) provider.PropertySchema {
	return provider.PropertySchema{Type: "integer", Description: desc}
}

func boolProp(desc string) provider.PropertySchema {
	return provider.PropertySchema{Type: "boolean", Description: desc}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
