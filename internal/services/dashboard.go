package services

import (
	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	Projects   int64 `json:"projects"`
	TestCases  int64 `json:"test_cases"`
	ActiveRuns int64 `json:"active_runs"`
	OpenBugs   int64 `json:"open_bugs"`
}

type ProjectActivity struct {
	ProjectID   uint   `json:"project_id"`
	ProjectName string `json:"project_name"`
	CaseCount   int64  `json:"case_count"`
	RunCount    int64  `json:"run_count"`
	OpenBugs    int64  `json:"open_bugs"`
}

type RecentRun struct {
	models.TestRun
	ProjectName string `json:"project_name"`
}

type DashboardResponse struct {
	Stats           DashboardStats    `json:"stats"`
	ProjectActivity []ProjectActivity `json:"project_activity"`
	RecentRuns      []RecentRun       `json:"recent_runs"`
	PassRate        float64           `json:"pass_rate"` // passed / completed across open runs
}

// GetStats aggregates activity across the given projects. The caller scopes
// projectIDs to the active workspace or the user's personal projects.
func (s *DashboardService) GetStats(projectIDs []uint) (*DashboardResponse, error) {
	resp := &DashboardResponse{
		ProjectActivity: []ProjectActivity{},
		RecentRuns:      []RecentRun{},
	}
	resp.Stats.Projects = int64(len(projectIDs))
	if len(projectIDs) == 0 {
		return resp, nil
	}

	s.db.Model(&models.TestCase{}).
		Where("project_id IN ?", projectIDs).
		Count(&resp.Stats.TestCases)

	s.db.Model(&models.TestRun{}).
		Where("project_id IN ? AND closed_at IS NULL", projectIDs).
		Count(&resp.Stats.ActiveRuns)

	s.db.Model(&models.BugReport{}).
		Where("project_id IN ? AND status IN ?", projectIDs,
			[]string{models.BugStatusOpen, models.BugStatusInProgress}).
		Count(&resp.Stats.OpenBugs)

	var projects []models.Project
	if err := s.db.Where("id IN ?", projectIDs).Find(&projects).Error; err != nil {
		return nil, err
	}
	for _, p := range projects {
		activity := ProjectActivity{
			ProjectID:   p.ID,
			ProjectName: p.Name,
		}
		s.db.Model(&models.TestCase{}).Where("project_id = ?", p.ID).Count(&activity.CaseCount)
		s.db.Model(&models.TestRun{}).Where("project_id = ?", p.ID).Count(&activity.RunCount)
		s.db.Model(&models.BugReport{}).
			Where("project_id = ? AND status IN ?", p.ID,
				[]string{models.BugStatusOpen, models.BugStatusInProgress}).
			Count(&activity.OpenBugs)
		resp.ProjectActivity = append(resp.ProjectActivity, activity)
	}

	var runs []models.TestRun
	if err := s.db.Where("project_id IN ?", projectIDs).
		Order("created_at DESC").Limit(5).Find(&runs).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	for _, run := range runs {
		resp.RecentRuns = append(resp.RecentRuns, RecentRun{
			TestRun:     run,
			ProjectName: names[run.ProjectID],
		})
	}

	resp.PassRate = s.passRate(projectIDs)
	return resp, nil
}

// passRate is passed cases over completed cases across open runs, as a
// percentage. No completed cases yields zero.
func (s *DashboardService) passRate(projectIDs []uint) float64 {
	var passed, completed int64

	base := s.db.Model(&models.TestRunCase{}).
		Joins("JOIN test_runs ON test_runs.id = test_run_cases.test_run_id").
		Where("test_runs.project_id IN ? AND test_runs.closed_at IS NULL", projectIDs)

	base.Session(&gorm.Session{}).
		Where("test_run_cases.status IN ?", []string{
			string(models.StatusPassed),
			string(models.StatusFailed),
			string(models.StatusBlocked),
			string(models.StatusSkipped),
		}).Count(&completed)

	if completed == 0 {
		return 0
	}

	base.Session(&gorm.Session{}).
		Where("test_run_cases.status = ?", string(models.StatusPassed)).
		Count(&passed)

	return float64(passed) / float64(completed) * 100
}
