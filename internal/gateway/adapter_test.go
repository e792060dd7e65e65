package gateway

import (
	"strings"
	"testing"
)

func TestDecodeArgs_WeakTyping(t *testing.T) {
	// Models routinely send integers as JSON numbers (float64) and booleans
	// as strings.
	type req struct {
		Limit   int    `json:"limit"`
		Query   string `json:"query"`
		Verbose bool   `json:"verbose"`
	}

	decoded, err := decodeArgs[req](map[string]any{
		"limit":   float64(25),
		"query":   "reef",
		"verbose": "true",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoded.Limit != 25 {
		t.Errorf("Expected limit 25, got: %d", decoded.Limit)
	}
	if decoded.Query != "reef" {
		t.Errorf("Expected query 'reef', got: %q", decoded.Query)
	}
	if !decoded.Verbose {
		t.Error("Expected verbose true")
	}
}

func TestDecodeArgs_UnknownKeysIgnored(t *testing.T) {
	type req struct {
		Name string `json:"name"`
	}

	decoded, err := decodeArgs[req](map[string]any{
		"name":         "x",
		"hallucinated": "y",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoded.Name != "x" {
		t.Errorf("Expected name 'x', got: %q", decoded.Name)
	}
}

func TestDecodeArgs_ValidatorRuns(t *testing.T) {
	_, err := decodeArgs[searchRegistryRequest](map[string]any{})
	if err == nil {
		t.Fatal("Expected validation error for empty query")
	}
	if !strings.Contains(err.Error(), "query is required") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestDecodeArgs_OptionalBoolPointer(t *testing.T) {
	type req struct {
		Flag *bool `json:"flag"`
	}

	decoded, err := decodeArgs[req](map[string]any{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoded.Flag != nil {
		t.Errorf("Expected nil flag when absent, got: %v", *decoded.Flag)
	}

	decoded, err = decodeArgs[req](map[string]any{"flag": false})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if decoded.Flag == nil || *decoded.Flag {
		t.Error("Expected explicit false to survive decoding")
	}
}
