package auth

import "testing"

func TestRoleFromCode(t *testing.T) {
	cases := []struct {
		code int
		want Role
		ok   bool
	}{
		{0, RoleAdmin, true},
		{1, RoleHR, true},
		{2, RoleApplicant, true},
		{3, 0, false},
		{-1, 0, false},
		{99, 0, false},
	}
	for _, tc := range cases {
		got, ok := RoleFromCode(tc.code)
		if ok != tc.ok {
			t.Fatalf("RoleFromCode(%d) ok = %v, want %v", tc.code, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("RoleFromCode(%d) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestRoleFromNameCaseInsensitive(t *testing.T) {
	for _, name := range []string{"admin", "Admin", "ADMIN", "  admin  "} {
		role, ok := RoleFromName(name)
		if !ok || role != RoleAdmin {
			t.Fatalf("RoleFromName(%q) = %v, %v; want admin", name, role, ok)
		}
	}
	if _, ok := RoleFromName("superuser"); ok {
		t.Fatal("expected unknown name to be rejected")
	}
	if _, ok := RoleFromName(""); ok {
		t.Fatal("expected empty name to be rejected")
	}
}

func TestRoleNameCodeAgreement(t *testing.T) {
	for _, role := range Roles() {
		byName, ok := RoleFromName(role.Name())
		if !ok || byName != role {
			t.Fatalf("name round trip failed for %v", role)
		}
		byCode, ok := RoleFromCode(role.Code())
		if !ok || byCode != role {
			t.Fatalf("code round trip failed for %v", role)
		}
	}
}

func TestRolesOrder(t *testing.T) {
	roles := Roles()
	if len(roles) != 3 {
		t.Fatalf("expected 3 roles, got %d", len(roles))
	}
	if roles[0] != RoleAdmin || roles[1] != RoleHR || roles[2] != RoleApplicant {
		t.Fatalf("unexpected role order: %v", roles)
	}
}
