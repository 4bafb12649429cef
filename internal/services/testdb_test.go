package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/checkmatehq/checkmate/internal/models"
)

// openTestDB opens a per-test in-memory sqlite database. The database is
// named after the test so parallel tests never share state, while the
// shared cache keeps it alive across pooled connections.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Project{},
		&models.TestSuite{},
		&models.TestCase{},
		&models.TestRun{},
		&models.TestRunCase{},
		&models.Checklist{},
		&models.ChecklistItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return &user
}

func seedWorkspace(t *testing.T, db *gorm.DB, name string, owner *models.User) *models.Workspace {
	t.Helper()
	workspace := models.Workspace{Name: name, Slug: strings.ToLower(name), OwnerID: owner.ID}
	if err := db.Create(&workspace).Error; err != nil {
		t.Fatalf("seed workspace %s: %v", name, err)
	}
	addMember(t, db, workspace.ID, owner.ID, models.RoleOwner)
	return &workspace
}

func addMember(t *testing.T, db *gorm.DB, workspaceID, userID uint, role models.Role) {
	t.Helper()
	member := models.WorkspaceMember{WorkspaceID: workspaceID, UserID: userID, Role: string(role)}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func seedProject(t *testing.T, db *gorm.DB, name string, workspaceID *uint, userID uint) *models.Project {
	t.Helper()
	project := models.Project{Name: name, WorkspaceID: workspaceID, UserID: userID}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("seed project %s: %v", name, err)
	}
	return &project
}
