package services

import "testing"

func TestValidSeverity(t *testing.T) {
	for _, s := range []string{"low", "medium", "high", "critical"} {
		if !validSeverity(s) {
			t.Errorf("validSeverity(%q) should be true", s)
		}
	}
	for _, s := range []string{"", "urgent", "Low", "blocker"} {
		if validSeverity(s) {
			t.Errorf("validSeverity(%q) should be false", s)
		}
	}
}

func TestValidBugStatus(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "resolved", "closed"} {
		if !validBugStatus(s) {
			t.Errorf("validBugStatus(%q) should be true", s)
		}
	}
	for _, s := range []string{"", "done", "wontfix", "Open"} {
		if validBugStatus(s) {
			t.Errorf("validBugStatus(%q) should be false", s)
		}
	}
}

func TestUpdateBugRequest_PartialUpdate(t *testing.T) {
	status := "resolved"
	req := UpdateBugRequest{Status: &status}

	if req.Status == nil || *req.Status != "resolved" {
		t.Error("Status should be resolved")
	}
	if req.Title != nil || req.Description != nil || req.Severity != nil || req.AssigneeID != nil {
		t.Error("untouched fields should stay nil")
	}
}
