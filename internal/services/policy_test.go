package services

import (
	"testing"

	"github.com/checkmatehq/checkmate/internal/models"
)

func TestProjectPolicy_WorkspaceProject(t *testing.T) {
	db := openTestDB(t)

	owner := seedUser(t, db, "owner")
	workspace := seedWorkspace(t, db, "acme", owner)
	admin := seedUser(t, db, "admin")
	member := seedUser(t, db, "member")
	viewer := seedUser(t, db, "viewer")
	outsider := seedUser(t, db, "outsider")
	addMember(t, db, workspace.ID, admin.ID, models.RoleAdmin)
	addMember(t, db, workspace.ID, member.ID, models.RoleMember)
	addMember(t, db, workspace.ID, viewer.ID, models.RoleViewer)

	project := seedProject(t, db, "web", &workspace.ID, owner.ID)
	policy := NewProjectPolicy(db)

	cases := []struct {
		name    string
		check   func(userID uint) (bool, error)
		userID  uint
		allowed bool
	}{
		{"viewer can view", func(id uint) (bool, error) { return policy.CanView(id, project) }, viewer.ID, true},
		{"outsider cannot view", func(id uint) (bool, error) { return policy.CanView(id, project) }, outsider.ID, false},
		{"member can update", func(id uint) (bool, error) { return policy.CanUpdate(id, project) }, member.ID, true},
		{"viewer cannot update", func(id uint) (bool, error) { return policy.CanUpdate(id, project) }, viewer.ID, false},
		{"outsider cannot update", func(id uint) (bool, error) { return policy.CanUpdate(id, project) }, outsider.ID, false},
		{"owner can delete", func(id uint) (bool, error) { return policy.CanDelete(id, project) }, owner.ID, true},
		{"admin can delete", func(id uint) (bool, error) { return policy.CanDelete(id, project) }, admin.ID, true},
		{"member cannot delete", func(id uint) (bool, error) { return policy.CanDelete(id, project) }, member.ID, false},
	}

	for _, tc := range cases {
		allowed, err := tc.check(tc.userID)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if allowed != tc.allowed {
			t.Errorf("%s: allowed = %v, expected %v", tc.name, allowed, tc.allowed)
		}
	}
}

func TestProjectPolicy_PersonalProject(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	// Bob shares a workspace with Alice, but her personal project is gated
	// by user id alone.
	workspace := seedWorkspace(t, db, "shared", alice)
	addMember(t, db, workspace.ID, bob.ID, models.RoleAdmin)

	personal := seedProject(t, db, "notes", nil, alice.ID)
	policy := NewProjectPolicy(db)

	for name, check := range map[string]func(uint, *models.Project) (bool, error){
		"view":   policy.CanView,
		"update": policy.CanUpdate,
		"delete": policy.CanDelete,
	} {
		allowed, err := check(alice.ID, personal)
		if err != nil {
			t.Fatalf("%s owner: %v", name, err)
		}
		if !allowed {
			t.Errorf("%s: personal owner should be allowed", name)
		}

		allowed, err = check(bob.ID, personal)
		if err != nil {
			t.Fatalf("%s other: %v", name, err)
		}
		if allowed {
			t.Errorf("%s: workspace co-member must not reach a personal project", name)
		}
	}
}

func TestProjectPolicy_CanCreate(t *testing.T) {
	db := openTestDB(t)
	policy := NewProjectPolicy(db)

	// No active workspace: personal project creation stays open.
	allowed, err := policy.CanCreate(1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Error("create with no workspace context should be allowed")
	}

	owner := seedUser(t, db, "owner")
	workspace := seedWorkspace(t, db, "acme", owner)

	wctx := &WorkspaceContext{Workspace: workspace, Role: models.RoleViewer}
	if allowed, _ = policy.CanCreate(owner.ID, wctx); allowed {
		t.Error("viewer must not create projects")
	}

	wctx.Role = models.RoleMember
	if allowed, _ = policy.CanCreate(owner.ID, wctx); !allowed {
		t.Error("member should create projects")
	}
}

func TestWorkspacePolicy(t *testing.T) {
	db := openTestDB(t)

	owner := seedUser(t, db, "owner")
	workspace := seedWorkspace(t, db, "acme", owner)
	admin := seedUser(t, db, "admin")
	member := seedUser(t, db, "member")
	outsider := seedUser(t, db, "outsider")
	addMember(t, db, workspace.ID, admin.ID, models.RoleAdmin)
	addMember(t, db, workspace.ID, member.ID, models.RoleMember)

	policy := NewWorkspacePolicy(db)

	cases := []struct {
		name    string
		check   func(userID, workspaceID uint) (bool, error)
		userID  uint
		allowed bool
	}{
		{"member can view", policy.CanView, member.ID, true},
		{"outsider cannot view", policy.CanView, outsider.ID, false},
		{"owner can update", policy.CanUpdate, owner.ID, true},
		{"admin can update", policy.CanUpdate, admin.ID, true},
		{"member cannot update", policy.CanUpdate, member.ID, false},
		{"admin can manage members", policy.CanManageMembers, admin.ID, true},
		{"member cannot manage members", policy.CanManageMembers, member.ID, false},
		{"owner can delete", policy.CanDelete, owner.ID, true},
		{"admin cannot delete", policy.CanDelete, admin.ID, false},
	}

	for _, tc := range cases {
		allowed, err := tc.check(tc.userID, workspace.ID)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if allowed != tc.allowed {
			t.Errorf("%s: allowed = %v, expected %v", tc.name, allowed, tc.allowed)
		}
	}
}
