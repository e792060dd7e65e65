package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.Model.Name == "" {
		errs = append(errs, "model.name must not be empty")
	}

	if c.Provena.Domain == "" {
		errs = append(errs, "provena.domain must not be empty")
	}
	if c.Provena.Realm == "" {
		errs = append(errs, "provena.realm must not be empty")
	}
	if c.Provena.ClientID == "" {
		errs = append(errs, "provena.client_id must not be empty")
	}

	if c.Chat.MaxToolRounds < 1 {
		errs = append(errs, "chat.max_tool_rounds must be >= 1")
	}
	if c.Chat.ResearchRelatedLimit < 1 {
		errs = append(errs, "chat.research_related_limit must be >= 1")
	}
	if c.Chat.CreatedByScanLimit < 1 {
		errs = append(errs, "chat.created_by_scan_limit must be >= 1")
	}
	for _, prefix := range c.Chat.ConfirmPrefixes {
		if strings.TrimSpace(prefix) == "" {
			errs = append(errs, "chat.confirm_prefixes must not contain empty entries")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
