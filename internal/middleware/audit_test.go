package middleware

import (
	"strings"
	"testing"
)

func TestParseRouteInfo(t *testing.T) {
	cases := []struct {
		path   string
		method string
		module string
		action string
	}{
		{"/api/projects/:projectId", "PUT", "Projects", "Update"},
		{"/api/workspaces", "POST", "Workspaces", "Create"},
		{"/api/workspaces/:id/members/:memberId", "DELETE", "Workspaces", "Delete"},
		{"/api/ai-configs/:id", "PATCH", "Ai Configs", "Update"},
	}

	for _, tc := range cases {
		module, action := parseRouteInfo(tc.path, tc.method)
		if module != tc.module {
			t.Errorf("parseRouteInfo(%q, %q) module = %q, expected %q", tc.path, tc.method, module, tc.module)
		}
		if action != tc.action {
			t.Errorf("parseRouteInfo(%q, %q) action = %q, expected %q", tc.path, tc.method, action, tc.action)
		}
	}
}

func TestFormatAuditMessage(t *testing.T) {
	msg := formatAuditMessage("alice", "DELETE", "/api/projects/3", 200)
	if !strings.Contains(msg, "alice") || !strings.Contains(msg, "DELETE") || !strings.Contains(msg, "OK") {
		t.Errorf("unexpected message: %q", msg)
	}

	failed := formatAuditMessage("bob", "POST", "/api/workspaces", 403)
	if !strings.Contains(failed, "Failed") {
		t.Errorf("non-2xx status should read Failed: %q", failed)
	}
}

func TestMaskSensitiveFields(t *testing.T) {
	body := `{"username": "alice", "password": "hunter2"}`
	masked := maskSensitiveFields(body)

	if strings.Contains(masked, "hunter2") {
		t.Errorf("password value should be masked: %q", masked)
	}
	if !strings.Contains(masked, "alice") {
		t.Errorf("non-sensitive values should survive: %q", masked)
	}
}

func TestMaskSensitiveFields_RefreshToken(t *testing.T) {
	body := `{"refresh_token": "abc123def"}`
	masked := maskSensitiveFields(body)

	if strings.Contains(masked, "abc123def") {
		t.Errorf("refresh token should be masked: %q", masked)
	}
}

func TestMaskSensitiveFields_NoSensitiveKeys(t *testing.T) {
	body := `{"title": "My test case"}`
	if got := maskSensitiveFields(body); got != body {
		t.Errorf("body without sensitive keys should be untouched, got %q", got)
	}
}
