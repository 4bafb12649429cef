package services

import (
	"testing"

	"github.com/checkmatehq/checkmate/internal/models"
)

func TestValidPriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high", "critical"} {
		if !validPriority(p) {
			t.Errorf("validPriority(%q) should be true", p)
		}
	}
	for _, p := range []string{"", "urgent", "High", "p1"} {
		if validPriority(p) {
			t.Errorf("validPriority(%q) should be false", p)
		}
	}
}

func TestUpdateTestCaseRequest_AcceptDraft(t *testing.T) {
	accepted := false
	req := UpdateTestCaseRequest{Draft: &accepted}

	if req.Draft == nil || *req.Draft {
		t.Error("Draft should be explicitly false to accept an AI draft")
	}
	if req.Title != nil || req.Priority != nil {
		t.Error("untouched fields should stay nil")
	}
}

func TestTestCaseListRequest_Defaults(t *testing.T) {
	req := TestCaseListRequest{}

	if req.Page != 0 || req.PageSize != 0 {
		t.Error("zero values should be filled in by List, not the struct")
	}
	if req.Draft != nil {
		t.Error("Draft filter should default to unset")
	}
}

func TestTestCaseList_TotalWithFilters(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	project := seedProject(t, db, "web", nil, alice.ID)
	suite := models.TestSuite{ProjectID: project.ID, Name: "Login"}
	if err := db.Create(&suite).Error; err != nil {
		t.Fatal(err)
	}

	for _, priority := range []string{models.PriorityHigh, models.PriorityHigh, models.PriorityLow} {
		tc := models.TestCase{ProjectID: project.ID, SuiteID: suite.ID, Title: "case", Priority: priority}
		if err := db.Create(&tc).Error; err != nil {
			t.Fatal(err)
		}
	}

	resp, err := NewTestCaseService(db).List(project.ID, &TestCaseListRequest{Priority: models.PriorityHigh})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d, expected 2", resp.Total)
	}
	if len(resp.Items) != 2 {
		t.Errorf("items = %d, expected 2", len(resp.Items))
	}
}
