package services

import (
	"testing"

	"github.com/checkmatehq/checkmate/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildSuiteTree_Nesting(t *testing.T) {
	suites := []models.TestSuite{
		{ID: 1, Name: "Auth", Position: 0},
		{ID: 2, Name: "Login", ParentID: uintPtr(1), Position: 0},
		{ID: 3, Name: "Registration", ParentID: uintPtr(1), Position: 1},
		{ID: 4, Name: "Billing", Position: 1},
	}
	counts := map[uint]int64{2: 5, 4: 2}

	tree := buildSuiteTree(suites, counts, nil)

	if len(tree) != 2 {
		t.Fatalf("got %d roots, expected 2", len(tree))
	}
	if tree[0].Name != "Auth" || tree[1].Name != "Billing" {
		t.Errorf("roots out of order: %s, %s", tree[0].Name, tree[1].Name)
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("Auth has %d children, expected 2", len(tree[0].Children))
	}
	if tree[0].Children[0].Name != "Login" || tree[0].Children[1].Name != "Registration" {
		t.Errorf("children out of order: %s, %s", tree[0].Children[0].Name, tree[0].Children[1].Name)
	}
	if tree[0].Children[0].CaseCount != 5 {
		t.Errorf("Login case count = %d, expected 5", tree[0].Children[0].CaseCount)
	}
	if tree[0].CaseCount != 0 {
		t.Errorf("Auth case count = %d, expected 0", tree[0].CaseCount)
	}
	if tree[1].CaseCount != 2 {
		t.Errorf("Billing case count = %d, expected 2", tree[1].CaseCount)
	}
}

func TestBuildSuiteTree_Empty(t *testing.T) {
	tree := buildSuiteTree(nil, nil, nil)
	if tree == nil {
		t.Error("tree should be an empty slice, not nil")
	}
	if len(tree) != 0 {
		t.Errorf("got %d nodes, expected 0", len(tree))
	}
}

func TestBuildSuiteTree_DeepNesting(t *testing.T) {
	suites := []models.TestSuite{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Child", ParentID: uintPtr(1)},
		{ID: 3, Name: "Grandchild", ParentID: uintPtr(2)},
	}

	tree := buildSuiteTree(suites, nil, nil)

	if len(tree) != 1 || len(tree[0].Children) != 1 || len(tree[0].Children[0].Children) != 1 {
		t.Fatal("expected a three-level chain")
	}
	if tree[0].Children[0].Children[0].Name != "Grandchild" {
		t.Errorf("deepest node = %q", tree[0].Children[0].Children[0].Name)
	}
}
