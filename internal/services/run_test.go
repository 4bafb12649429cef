package services

import (
	"testing"

	"github.com/checkmatehq/checkmate/internal/models"
)

func TestComputeProgress_EmptyRun(t *testing.T) {
	if got := computeProgress(0, 0); got != 0 {
		t.Errorf("computeProgress(0, 0) = %d, expected 0", got)
	}
}

func TestComputeProgress_Rounding(t *testing.T) {
	cases := []struct {
		completed int64
		total     int64
		want      int
	}{
		{0, 4, 0},
		{3, 4, 75},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13}, // 12.5 rounds half away from zero
		{1, 200, 1},
		{199, 200, 100}, // 99.5 rounds up
	}

	for _, tc := range cases {
		if got := computeProgress(tc.completed, tc.total); got != tc.want {
			t.Errorf("computeProgress(%d, %d) = %d, expected %d", tc.completed, tc.total, got, tc.want)
		}
	}
}

func TestCreateTestRunRequest_Sources(t *testing.T) {
	checklistID := uint(9)

	fromChecklist := CreateTestRunRequest{Title: "Smoke", ChecklistID: &checklistID}
	if fromChecklist.ChecklistID == nil || *fromChecklist.ChecklistID != 9 {
		t.Error("ChecklistID should be 9")
	}
	if len(fromChecklist.SuiteIDs) != 0 || len(fromChecklist.CaseIDs) != 0 {
		t.Error("checklist-sourced request should carry no suite or case IDs")
	}

	fromSelection := CreateTestRunRequest{
		Title:    "Regression",
		SuiteIDs: []uint{1, 2},
		CaseIDs:  []uint{10},
	}
	if fromSelection.ChecklistID != nil {
		t.Error("selection-sourced request should carry no checklist ID")
	}
	if len(fromSelection.SuiteIDs) != 2 || len(fromSelection.CaseIDs) != 1 {
		t.Error("selection IDs not carried through")
	}
}

func TestCreate_ChecklistMustBelongToProject(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	mine := seedProject(t, db, "mine", nil, alice.ID)
	other := seedProject(t, db, "other", nil, alice.ID)

	checklist := models.Checklist{ProjectID: other.ID, Name: "Release checks", CreatedBy: alice.ID}
	if err := db.Create(&checklist).Error; err != nil {
		t.Fatal(err)
	}
	item := models.ChecklistItem{ChecklistID: checklist.ID, Text: "verify export totals"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatal(err)
	}

	svc := NewTestRunService(db)
	req := &CreateTestRunRequest{Title: "Smoke", ChecklistID: &checklist.ID}

	if _, err := svc.Create(mine.ID, req, alice.ID); err == nil {
		t.Fatal("run creation from another project's checklist should fail")
	}

	// The rejected create must not leave a run behind.
	var runs int64
	if err := db.Model(&models.TestRun{}).Count(&runs).Error; err != nil {
		t.Fatal(err)
	}
	if runs != 0 {
		t.Errorf("rejected create left %d runs behind", runs)
	}

	// The same checklist works in its own project.
	run, err := svc.Create(other.ID, req, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	cases, err := svc.ListCases(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cases) != 1 || cases[0].Title != item.Text {
		t.Errorf("unexpected snapshot: %+v", cases)
	}
	if cases[0].TestCaseID != nil {
		t.Error("checklist-sourced run case should carry no test case ID")
	}
}

func TestRunList_TotalScopedToProject(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	mine := seedProject(t, db, "mine", nil, alice.ID)
	other := seedProject(t, db, "other", nil, alice.ID)

	for i, projectID := range []uint{mine.ID, mine.ID, other.ID} {
		run := models.TestRun{ProjectID: projectID, Title: "run", Stats: models.StatusCounts{}, CreatedBy: alice.ID}
		if err := db.Create(&run).Error; err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}

	resp, err := NewTestRunService(db).List(mine.ID, &TestRunListRequest{})
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
