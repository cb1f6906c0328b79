package auth

import "testing"

func resolve(t *testing.T, values map[string]any) (Role, bool) {
	t.Helper()
	return NewRoleResolver().Resolve(NewClaimSet(values))
}

func TestResolveNumericCodeClaim(t *testing.T) {
	role, ok := resolve(t, map[string]any{ClaimRoleCode: float64(1)})
	if !ok || role != RoleHR {
		t.Fatalf("resolved %v (ok=%v), want hr", role, ok)
	}
}

func TestResolveNumericCodeRejectsOutOfRange(t *testing.T) {
	// an integer that parses but is outside the closed set yields nothing,
	// letting the next strategy try
	role, ok := resolve(t, map[string]any{
		ClaimRoleCode: "9",
		ClaimRoleName: "admin",
	})
	if !ok || role != RoleAdmin {
		t.Fatalf("resolved %v (ok=%v), want fall-through to admin", role, ok)
	}
}

func TestResolveCanonicalNameClaim(t *testing.T) {
	role, ok := resolve(t, map[string]any{ClaimRoleCanonical: "Applicant"})
	if !ok || role != RoleApplicant {
		t.Fatalf("resolved %v (ok=%v), want applicant", role, ok)
	}
	// the canonical-name tier never interprets numbers
	if _, ok := resolve(t, map[string]any{ClaimRoleCanonical: "2"}); ok {
		t.Fatal("canonical name tier must not parse numeric values")
	}
}

func TestResolveLegacyNamespacedClaim(t *testing.T) {
	// numeric parse first
	role, ok := resolve(t, map[string]any{ClaimRoleLegacy: "0"})
	if !ok || role != RoleAdmin {
		t.Fatalf("resolved %v (ok=%v), want admin", role, ok)
	}
	// then name match
	role, ok = resolve(t, map[string]any{ClaimRoleLegacy: "HR"})
	if !ok || role != RoleHR {
		t.Fatalf("resolved %v (ok=%v), want hr", role, ok)
	}
}

func TestResolveGenericRoleClaim(t *testing.T) {
	role, ok := resolve(t, map[string]any{ClaimRoleName: "applicant"})
	if !ok || role != RoleApplicant {
		t.Fatalf("resolved %v (ok=%v), want applicant", role, ok)
	}
	role, ok = resolve(t, map[string]any{ClaimRoleName: "1"})
	if !ok || role != RoleHR {
		t.Fatalf("resolved %v (ok=%v), want hr", role, ok)
	}
}

func TestResolveKeyScan(t *testing.T) {
	role, ok := resolve(t, map[string]any{"x-gateway-role": "hr"})
	if !ok || role != RoleHR {
		t.Fatalf("resolved %v (ok=%v), want hr", role, ok)
	}
	// sorted key order makes the scan deterministic when several keys match
	role, ok = resolve(t, map[string]any{
		"a_role": "admin",
		"z_role": "applicant",
	})
	if !ok || role != RoleAdmin {
		t.Fatalf("resolved %v (ok=%v), want admin from lowest sorted key", role, ok)
	}
}

func TestResolveMembershipProbe(t *testing.T) {
	role, ok := resolve(t, map[string]any{"roles": []any{"something", "HR"}})
	if !ok || role != RoleHR {
		t.Fatalf("resolved %v (ok=%v), want hr", role, ok)
	}
	role, ok = resolve(t, map[string]any{"applicant": true})
	if !ok || role != RoleApplicant {
		t.Fatalf("resolved %v (ok=%v), want applicant", role, ok)
	}
	// fixed probe order: admin wins when several memberships are present
	role, ok = resolve(t, map[string]any{"roles": []any{"applicant", "admin"}})
	if !ok || role != RoleAdmin {
		t.Fatalf("resolved %v (ok=%v), want admin first in probe order", role, ok)
	}
}

func TestResolvePrecedenceIsTotal(t *testing.T) {
	// all six tiers present and disagreeing: the lowest-numbered wins
	claims := map[string]any{
		ClaimRoleCode:      "2",         // tier 1 -> applicant
		ClaimRoleCanonical: "hr",        // tier 2
		ClaimRoleLegacy:    "0",         // tier 3
		ClaimRoleName:      "hr",        // tier 4
		"gateway_role":     "admin",     // tier 5
		"roles":            []any{"hr"}, // tier 6
	}
	role, ok := resolve(t, claims)
	if !ok || role != RoleApplicant {
		t.Fatalf("resolved %v (ok=%v), want applicant from tier 1", role, ok)
	}

	// drop tier 1: tier 2 wins
	delete(claims, ClaimRoleCode)
	role, ok = resolve(t, claims)
	if !ok || role != RoleHR {
		t.Fatalf("resolved %v (ok=%v), want hr from tier 2", role, ok)
	}

	// drop tier 2: tier 3 wins
	delete(claims, ClaimRoleCanonical)
	role, ok = resolve(t, claims)
	if !ok || role != RoleAdmin {
		t.Fatalf("resolved %v (ok=%v), want admin from tier 3", role, ok)
	}
}

func TestResolveUnknownWhenExhausted(t *testing.T) {
	for _, values := range []map[string]any{
		{},
		{"sub": "12", "email": "a@b.c"},
		{ClaimRoleName: "superuser"},
		{ClaimRoleCode: "not-a-number"},
		{"roles": []any{"viewer"}},
	} {
		if role, ok := resolve(t, values); ok {
			t.Fatalf("claims %v unexpectedly resolved to %v", values, role)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	claims := map[string]any{
		"b_role": "hr",
		"a_role": "applicant",
		"roles":  []any{"admin"},
	}
	first, ok1 := resolve(t, claims)
	for i := 0; i < 50; i++ {
		again, ok2 := resolve(t, claims)
		if ok1 != ok2 || first != again {
			t.Fatalf("resolution not deterministic: %v vs %v", first, again)
		}
	}
}
