package auth

import (
	"testing"

	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func principalWithRole(role Role) *Principal {
	return &Principal{SubjectID: 10, SubjectKnown: true, Role: role, RoleKnown: true}
}

func TestPolicySemantics(t *testing.T) {
	engine := NewEngine()

	cases := []struct {
		policy string
		role   Role
		allow  bool
	}{
		{PolicyAdminOnly, RoleAdmin, true},
		{PolicyAdminOnly, RoleHR, false},
		{PolicyAdminOnly, RoleApplicant, false},

		{PolicyHROnly, RoleHR, true},
		{PolicyHROnly, RoleAdmin, false},
		{PolicyHROnly, RoleApplicant, false},

		{PolicyApplicantOnly, RoleApplicant, true},
		{PolicyApplicantOnly, RoleAdmin, false},
		{PolicyApplicantOnly, RoleHR, false},

		{PolicyAdminOrHR, RoleAdmin, true},
		{PolicyAdminOrHR, RoleHR, true},
		{PolicyAdminOrHR, RoleApplicant, false},

		{PolicyApplicantOrAdminOrHROwns, RoleAdmin, true},
		{PolicyApplicantOrAdminOrHROwns, RoleHR, true},
		{PolicyApplicantOrAdminOrHROwns, RoleApplicant, true},
	}

	for _, tc := range cases {
		err := engine.Evaluate(tc.policy, principalWithRole(tc.role), RequestContext{})
		if tc.allow && err != nil {
			t.Fatalf("%s should allow %s: %v", tc.policy, tc.role.Name(), err)
		}
		if !tc.allow {
			if err == nil {
				t.Fatalf("%s should deny %s", tc.policy, tc.role.Name())
			}
			if !apperrors.IsCode(err, "FORBIDDEN") {
				t.Fatalf("%s denial for %s has wrong code: %v", tc.policy, tc.role.Name(), err)
			}
		}
	}
}

func TestEveryPolicyDeniesUnresolvedRole(t *testing.T) {
	engine := NewEngine()
	unresolved := &Principal{SubjectID: 10, SubjectKnown: true, RoleKnown: false}

	for _, policy := range []string{
		PolicyAdminOnly, PolicyHROnly, PolicyApplicantOnly,
		PolicyAdminOrHR, PolicyApplicantOrAdminOrHROwns,
	} {
		err := engine.Evaluate(policy, unresolved, RequestContext{})
		if err == nil {
			t.Fatalf("%s should deny an unresolved role", policy)
		}
		if !apperrors.IsCode(err, "ROLE_UNRESOLVED") {
			t.Fatalf("%s denial has wrong code: %v", policy, err)
		}
	}
}

func TestIdentifiedUserPolicyRequiresSubject(t *testing.T) {
	engine := NewEngine()
	anonymous := &Principal{Role: RoleApplicant, RoleKnown: true, SubjectKnown: false}

	err := engine.Evaluate(PolicyApplicantOrAdminOrHROwns, anonymous, RequestContext{})
	if err == nil {
		t.Fatal("expected denial for caller with no resolvable subject id")
	}
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("wrong code: %v", err)
	}
}

func TestUnknownPolicyNameIsAnError(t *testing.T) {
	engine := NewEngine()
	if err := engine.Evaluate("NoSuchPolicy", principalWithRole(RoleAdmin), RequestContext{}); err == nil {
		t.Fatal("expected error for unregistered policy")
	}
	if engine.Known("NoSuchPolicy") {
		t.Fatal("NoSuchPolicy should not be registered")
	}
	if !engine.Known(PolicyAdminOnly) {
		t.Fatal("AdminOnly should be registered")
	}
}

func TestEvaluateIsPure(t *testing.T) {
	engine := NewEngine()
	p := principalWithRole(RoleHR)

	first := engine.Evaluate(PolicyHROnly, p, RequestContext{ResourceID: 5})
	for i := 0; i < 100; i++ {
		again := engine.Evaluate(PolicyHROnly, p, RequestContext{ResourceID: 5})
		if (first == nil) != (again == nil) {
			t.Fatal("repeated evaluation diverged")
		}
	}
}

func TestSelfScopeRelaxation(t *testing.T) {
	unresolved := &Principal{SubjectID: 7, SubjectKnown: true, RoleKnown: false}

	// matching owner narrows to applicant for this one decision
	role, ok := unresolved.RoleOrSelfScope(7)
	if !ok || role != RoleApplicant {
		t.Fatalf("RoleOrSelfScope(7) = %v, %v; want applicant", role, ok)
	}
	// non-matching owner stays unresolved
	if _, ok := unresolved.RoleOrSelfScope(8); ok {
		t.Fatal("self scope must not apply to another user's resource")
	}

	// a resolved role is never overridden
	hr := principalWithRole(RoleHR)
	role, ok = hr.RoleOrSelfScope(10)
	if !ok || role != RoleHR {
		t.Fatalf("RoleOrSelfScope on resolved principal = %v, %v; want hr", role, ok)
	}

	// SelfScoped produces a principal the policies accept, without mutating
	// the original
	scoped := unresolved.SelfScoped(7)
	if !scoped.RoleKnown || scoped.Role != RoleApplicant {
		t.Fatalf("scoped principal = %+v", scoped)
	}
	if unresolved.RoleKnown {
		t.Fatal("SelfScoped mutated the original principal")
	}
	if err := NewEngine().Evaluate(PolicyApplicantOrAdminOrHROwns, scoped, RequestContext{}); err != nil {
		t.Fatalf("scoped principal should pass the identified-user policy: %v", err)
	}
}
