package services

import (
	"fmt"

	"github.com/checkmatehq/checkmate/internal/models"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

// Create creates a project in the active workspace, or a personal project
// when the user has no workspace context.
func (s *ProjectService) Create(userID uint, wctx *WorkspaceContext, req *CreateProjectRequest) (*models.Project, error) {
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	}
	if wctx != nil {
		id := wctx.Workspace.ID
		project.WorkspaceID = &id
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForContext returns the projects visible in the current context:
// workspace projects when a workspace is active, otherwise the user's
// personal projects.
func (s *ProjectService) ListForContext(userID uint, wctx *WorkspaceContext) ([]models.Project, error) {
	var projects []models.Project
	query := s.db.Order("created_at DESC")
	if wctx != nil {
		query = query.Where("workspace_id = ?", wctx.Workspace.ID)
	} else {
		query = query.Where("workspace_id IS NULL AND user_id = ?", userID)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Users returns the people who can work in a project: the members of its
// workspace, or just the owning user for a legacy personal project. Both
// shapes come back as a plain user slice so assignee pickers need no
// branching.
func (s *ProjectService) Users(project *models.Project) ([]models.User, error) {
	var users []models.User
	if project.IsPersonal() {
		var owner models.User
		if err := s.db.First(&owner, project.UserID).Error; err != nil {
			return nil, err
		}
		return []models.User{owner}, nil
	}
	err := s.db.
		Joins("JOIN workspace_members ON workspace_members.user_id = users.id").
		Where("workspace_members.workspace_id = ? AND workspace_members.deleted_at IS NULL", *project.WorkspaceID).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns a project by ID.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Update changes a project's name and description.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}
	if err := s.db.Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete removes a project and everything under it.
func (s *ProjectService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteProjectData(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("project %d not found", id)
		}
		return nil
	})
}

// deleteProjectData removes all records under a project: suites, cases,
// runs and their cases, checklists and their items, bugs, documents,
// releases, and generation jobs. The project row itself is left to the
// caller; orphaned attachments are swept by the retention job.
func deleteProjectData(tx *gorm.DB, projectID uint) error {
	var runIDs []uint
	if err := tx.Model(&models.TestRun{}).
		Where("project_id = ?", projectID).Pluck("id", &runIDs).Error; err != nil {
		return err
	}
	if len(runIDs) > 0 {
		if err := tx.Where("test_run_id IN ?", runIDs).Delete(&models.TestRunCase{}).Error; err != nil {
			return err
		}
	}

	var checklistIDs []uint
	if err := tx.Model(&models.Checklist{}).
		Where("project_id = ?", projectID).Pluck("id", &checklistIDs).Error; err != nil {
		return err
	}
	if len(checklistIDs) > 0 {
		if err := tx.Where("checklist_id IN ?", checklistIDs).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}
	}

	for _, model := range []interface{}{
		&models.TestRun{},
		&models.Checklist{},
		&models.TestCase{},
		&models.TestSuite{},
		&models.BugReport{},
		&models.Document{},
		&models.Release{},
		&models.GenerationJob{},
	} {
		if err := tx.Where("project_id = ?", projectID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
