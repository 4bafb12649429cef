package services

import (
	"strings"
	"testing"

	"github.com/checkmatehq/checkmate/internal/models"
)

func TestParseGeneratedCases_PlainArray(t *testing.T) {
	content := `[
		{"title": "Login with valid credentials", "steps": "1. Open login page", "expected_result": "Dashboard shown", "priority": "high"},
		{"title": "Login with wrong password", "priority": "medium"}
	]`

	cases, err := parseGeneratedCases(content)
	if err != nil {
		t.Fatalf("parseGeneratedCases returned error: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("got %d cases, expected 2", len(cases))
	}
	if cases[0].Title != "Login with valid credentials" {
		t.Errorf("Title = %q", cases[0].Title)
	}
	if cases[0].Priority != "high" {
		t.Errorf("Priority = %q, expected high", cases[0].Priority)
	}
}

func TestParseGeneratedCases_MarkdownFence(t *testing.T) {
	content := "Here are the test cases:\n```json\n[{\"title\": \"Case A\", \"priority\": \"low\"}]\n```\nLet me know if you need more."

	cases, err := parseGeneratedCases(content)
	if err != nil {
		t.Fatalf("parseGeneratedCases returned error: %v", err)
	}
	if len(cases) != 1 || cases[0].Title != "Case A" {
		t.Errorf("unexpected cases: %+v", cases)
	}
}

func TestParseGeneratedCases_InvalidPriorityCoerced(t *testing.T) {
	content := `[{"title": "Case B", "priority": "urgent"}]`

	cases, err := parseGeneratedCases(content)
	if err != nil {
		t.Fatalf("parseGeneratedCases returned error: %v", err)
	}
	if cases[0].Priority != models.PriorityMedium {
		t.Errorf("invalid priority should coerce to medium, got %q", cases[0].Priority)
	}
}

func TestParseGeneratedCases_MissingTitle(t *testing.T) {
	content := `[{"steps": "do things", "priority": "high"}]`

	if _, err := parseGeneratedCases(content); err == nil {
		t.Error("expected error for case without title")
	}
}

func TestParseGeneratedCases_NoArray(t *testing.T) {
	for _, content := range []string{"", "I could not generate test cases.", "{}"} {
		if _, err := parseGeneratedCases(content); err == nil {
			t.Errorf("expected error for content %q", content)
		}
	}
}

func TestParseGeneratedCases_EmptyArray(t *testing.T) {
	if _, err := parseGeneratedCases("[]"); err == nil {
		t.Error("expected error for empty case list")
	}
}

func TestGenerationPrompt_Placeholders(t *testing.T) {
	for _, placeholder := range []string{"{{project}}", "{{suite}}", "{{feature}}"} {
		if !strings.Contains(generationPrompt, placeholder) {
			t.Errorf("prompt should contain %q", placeholder)
		}
	}
	if !strings.Contains(generationPrompt, "JSON") {
		t.Error("prompt should demand JSON output")
	}
}
