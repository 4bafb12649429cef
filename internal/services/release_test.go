package services

import "testing"

func TestValidReleaseStatus(t *testing.T) {
	for _, s := range []string{"planned", "released", "archived"} {
		if !validReleaseStatus(s) {
			t.Errorf("validReleaseStatus(%q) should be true", s)
		}
	}
	for _, s := range []string{"", "shipped", "Planned", "draft"} {
		if validReleaseStatus(s) {
			t.Errorf("validReleaseStatus(%q) should be false", s)
		}
	}
}
