package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/checkmatehq/checkmate/internal/models"
)

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}

func TestResolve_StoredPointer(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	seedWorkspace(t, db, "first", alice)
	second := seedWorkspace(t, db, "second", alice)

	if err := db.Model(alice).Update("current_workspace_id", second.ID).Error; err != nil {
		t.Fatal(err)
	}

	wctx, err := NewWorkspaceContextService(db).Resolve(alice.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if wctx == nil || wctx.Workspace.ID != second.ID {
		t.Fatalf("expected stored pointer to win, got %+v", wctx)
	}
	if wctx.Role != models.RoleOwner {
		t.Errorf("role = %q, expected owner", wctx.Role)
	}
}

func TestResolve_StalePointerHeals(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	mine := seedWorkspace(t, db, "mine", alice)

	bob := seedUser(t, db, "bob")
	theirs := seedWorkspace(t, db, "theirs", bob)

	// Pointer at a workspace Alice does not belong to.
	if err := db.Model(alice).Update("current_workspace_id", theirs.ID).Error; err != nil {
		t.Fatal(err)
	}

	wctx, err := NewWorkspaceContextService(db).Resolve(alice.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if wctx == nil || wctx.Workspace.ID != mine.ID {
		t.Fatalf("expected fallback to first membership, got %+v", wctx)
	}

	healed := reloadUser(t, db, alice.ID)
	if healed.CurrentWorkspaceID == nil || *healed.CurrentWorkspaceID != mine.ID {
		t.Errorf("pointer not healed: %v", healed.CurrentWorkspaceID)
	}
}

func TestResolve_FirstMembershipByInsertionOrder(t *testing.T) {
	db := openTestDB(t)

	owner := seedUser(t, db, "owner")
	older := seedWorkspace(t, db, "older", owner)
	newer := seedWorkspace(t, db, "newer", owner)

	carol := seedUser(t, db, "carol")
	addMember(t, db, older.ID, carol.ID, models.RoleViewer)
	addMember(t, db, newer.ID, carol.ID, models.RoleAdmin)

	// No pointer at all: the oldest membership wins.
	wctx, err := NewWorkspaceContextService(db).Resolve(carol.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if wctx == nil || wctx.Workspace.ID != older.ID {
		t.Fatalf("expected oldest membership, got %+v", wctx)
	}
	if wctx.Role != models.RoleViewer {
		t.Errorf("role = %q, expected viewer", wctx.Role)
	}
}

func TestResolve_RouteProjectOverridesPointer(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	home := seedWorkspace(t, db, "home", alice)
	work := seedWorkspace(t, db, "work", alice)

	if err := db.Model(alice).Update("current_workspace_id", home.ID).Error; err != nil {
		t.Fatal(err)
	}
	project := seedProject(t, db, "api", &work.ID, alice.ID)

	wctx, err := NewWorkspaceContextService(db).Resolve(alice.ID, project)
	if err != nil {
		t.Fatal(err)
	}
	if wctx == nil || wctx.Workspace.ID != work.ID {
		t.Fatalf("expected route project's workspace, got %+v", wctx)
	}

	switched := reloadUser(t, db, alice.ID)
	if switched.CurrentWorkspaceID == nil || *switched.CurrentWorkspaceID != work.ID {
		t.Errorf("pointer should follow the route project: %v", switched.CurrentWorkspaceID)
	}
}

func TestResolve_NoMemberships(t *testing.T) {
	db := openTestDB(t)
	loner := seedUser(t, db, "loner")

	wctx, err := NewWorkspaceContextService(db).Resolve(loner.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if wctx != nil {
		t.Fatalf("user with no memberships should get no context, got %+v", wctx)
	}
}

func TestSwitchTo(t *testing.T) {
	db := openTestDB(t)

	alice := seedUser(t, db, "alice")
	seedWorkspace(t, db, "home", alice)
	bob := seedUser(t, db, "bob")
	theirs := seedWorkspace(t, db, "theirs", bob)

	svc := NewWorkspaceContextService(db)

	// Not a member: no switch, no error.
	wctx, err := svc.SwitchTo(alice.ID, theirs.ID)
	if err != nil {
		t.Fatal(err)
	}
	if wctx != nil {
		t.Fatalf("non-member switch should yield nil, got %+v", wctx)
	}

	addMember(t, db, theirs.ID, alice.ID, models.RoleMember)
	wctx, err = svc.SwitchTo(alice.ID, theirs.ID)
	if err != nil {
		t.Fatal(err)
	}
	if wctx == nil || wctx.Workspace.ID != theirs.ID || wctx.Role != models.RoleMember {
		t.Fatalf("unexpected context after switch: %+v", wctx)
	}

	switched := reloadUser(t, db, alice.ID)
	if switched.CurrentWorkspaceID == nil || *switched.CurrentWorkspaceID != theirs.ID {
		t.Errorf("pointer not persisted: %v", switched.CurrentWorkspaceID)
	}
}
