package orchestrator

import "strings"

// ConfirmationPolicy decides which tool calls must be explicitly confirmed by
// the user before dispatch. Matching is by case-insensitive name prefix, so a
// policy built with "create" gates every registry write.
type ConfirmationPolicy struct {
	prefixes []string
}

// NewConfirmationPolicy builds a policy from tool-name prefixes.
func NewConfirmationPolicy(prefixes []string) *ConfirmationPolicy {
	normalized := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			normalized = append(normalized, p)
		}
	}
	return &ConfirmationPolicy{prefixes: normalized}
}

// RequiresConfirmation reports whether the named tool is gated.
func (p *ConfirmationPolicy) RequiresConfirmation(toolName string) bool {
	name := strings.ToLower(toolName)
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
