package models

import "testing"

func TestParseCaseStatus(t *testing.T) {
	valid := []string{"untested", "passed", "failed", "blocked", "skipped", "retest"}
	for _, s := range valid {
		status, err := ParseCaseStatus(s)
		if err != nil {
			t.Errorf("ParseCaseStatus(%q) returned error: %v", s, err)
		}
		if string(status) != s {
			t.Errorf("ParseCaseStatus(%q) = %q", s, status)
		}
	}
}

func TestParseCaseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "PASSED", "pass", "done"} {
		if _, err := ParseCaseStatus(s); err == nil {
			t.Errorf("ParseCaseStatus(%q) should fail", s)
		}
	}
}

func TestCaseStatus_Completed(t *testing.T) {
	completed := []CaseStatus{StatusPassed, StatusFailed, StatusBlocked, StatusSkipped}
	for _, s := range completed {
		if !s.Completed() {
			t.Errorf("%s should count as completed", s)
		}
	}

	notCompleted := []CaseStatus{StatusUntested, StatusRetest}
	for _, s := range notCompleted {
		if s.Completed() {
			t.Errorf("%s should not count as completed", s)
		}
	}
}
