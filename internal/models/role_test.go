package models

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"owner", "admin", "member", "viewer"} {
		role, err := ParseRole(s)
		if err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", s, err)
		}
		if string(role) != s {
			t.Errorf("ParseRole(%q) = %q", s, role)
		}
	}
}

func TestParseRole_Invalid(t *testing.T) {
	for _, s := range []string{"", "Owner", "superadmin", "guest"} {
		if _, err := ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) should fail", s)
		}
	}
}

func TestRole_Capabilities(t *testing.T) {
	cases := []struct {
		role            Role
		manageProjects  bool
		manageMembers   bool
		deleteWorkspace bool
		view            bool
	}{
		{RoleOwner, true, true, true, true},
		{RoleAdmin, true, true, false, true},
		{RoleMember, true, false, false, true},
		{RoleViewer, false, false, false, true},
	}

	for _, tc := range cases {
		if got := tc.role.CanManageProjects(); got != tc.manageProjects {
			t.Errorf("%s.CanManageProjects() = %v, expected %v", tc.role, got, tc.manageProjects)
		}
		if got := tc.role.CanManageMembers(); got != tc.manageMembers {
			t.Errorf("%s.CanManageMembers() = %v, expected %v", tc.role, got, tc.manageMembers)
		}
		if got := tc.role.CanDeleteWorkspace(); got != tc.deleteWorkspace {
			t.Errorf("%s.CanDeleteWorkspace() = %v, expected %v", tc.role, got, tc.deleteWorkspace)
		}
		if got := tc.role.CanView(); got != tc.view {
			t.Errorf("%s.CanView() = %v, expected %v", tc.role, got, tc.view)
		}
	}
}

func TestRole_InvalidHasNoCapabilities(t *testing.T) {
	bad := Role("superuser")

	if bad.Valid() {
		t.Error("unknown role should not be valid")
	}
	if bad.CanManageProjects() || bad.CanManageMembers() || bad.CanDeleteWorkspace() || bad.CanView() {
		t.Error("unknown role should grant nothing")
	}
}
