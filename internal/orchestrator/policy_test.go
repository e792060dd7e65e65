package orchestrator

import "testing"

func TestRequiresConfirmation_PrefixMatch(t *testing.T) {
	policy := NewConfirmationPolicy([]string{"create"})

	cases := []struct {
		tool string
		want bool
	}{
		{"create_model", true},
		{"create_dataset", true},
		{"CREATE_MODEL_RUN", true},
		{"search_registry", false},
		{"get_prompt_dataset_registration_workflow", false},
		{"recreate_index", false},
	}
	for _, tc := range cases {
		if got := policy.RequiresConfirmation(tc.tool); got != tc.want {
			t.Errorf("RequiresConfirmation(%q) = %v, want %v", tc.tool, got, tc.want)
		}
	}
}

func TestRequiresConfirmation_NormalizesPrefixes(t *testing.T) {
	policy := NewConfirmationPolicy([]string{" Create ", "", "DELETE"})

	if !policy.RequiresConfirmation("create_model") {
		t.Error("Expected trimmed lowercase prefix to match")
	}
	if !policy.RequiresConfirmation("delete_item") {
		t.Error("Expected uppercase configured prefix to match")
	}
	if policy.RequiresConfirmation("") {
		t.Error("Empty tool name must never require confirmation")
	}
}

func TestRequiresConfirmation_NoPrefixes(t *testing.T) {
	policy := NewConfirmationPolicy(nil)

	if policy.RequiresConfirmation("create_model") {
		t.Error("Expected no gating with an empty prefix list")
	}
}
