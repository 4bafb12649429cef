package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice's Workspace", "alice-s-workspace"},
		{"QA Team", "qa-team"},
		{"  Trim  Me  ", "trim-me"},
		{"already-slugged", "already-slugged"},
		{"UPPER CASE", "upper-case"},
		{"release 2.0", "release-2-0"},
		{"!!!", "workspace"},
		{"", "workspace"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestUniqueSuffix(t *testing.T) {
	a := UniqueSuffix()
	b := UniqueSuffix()

	if len(a) != 8 {
		t.Errorf("suffix length = %d, expected 8", len(a))
	}
	if a == b {
		t.Error("consecutive suffixes should differ")
	}
}
