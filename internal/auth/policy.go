package auth

import (
	"fmt"

	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// Policy names selectable by the request pipeline.
const (
	PolicyAdminOnly                = "AdminOnly"
	PolicyHROnly                   = "HROnly"
	PolicyApplicantOnly            = "ApplicantOnly"
	PolicyAdminOrHR                = "AdminOrHR"
	PolicyApplicantOrAdminOrHROwns = "ApplicantOrAdminOrHROwns"
)

// RequestContext carries the request-scoped facts a policy may inspect.
type RequestContext struct {
	ResourceID int64
}

// Policy is a pure predicate over the resolved caller and request context.
// Policies must be side-effect-free and deterministic.
type Policy func(p *Principal, rc RequestContext) bool

// Engine evaluates named policies. The policy set is registered once at
// construction and immutable afterwards, so the engine is safe for concurrent
// use.
type Engine struct {
	policies map[string]Policy
}

// NewEngine registers the platform policy set.
func NewEngine() *Engine {
	return &Engine{policies: map[string]Policy{
		PolicyAdminOnly: func(p *Principal, _ RequestContext) bool {
			return p.Role == RoleAdmin
		},
		PolicyHROnly: func(p *Principal, _ RequestContext) bool {
			return p.Role == RoleHR
		},
		PolicyApplicantOnly: func(p *Principal, _ RequestContext) bool {
			return p.Role == RoleApplicant
		},
		PolicyAdminOrHR: func(p *Principal, _ RequestContext) bool {
			return p.Role == RoleAdmin || p.Role == RoleHR
		},
		// Gates "is this a recognized, identified user". The actual
		// resource-owner comparison is the OwnershipGuard's job at the call
		// site.
		PolicyApplicantOrAdminOrHROwns: func(p *Principal, _ RequestContext) bool {
			return p.Role.Valid() && p.SubjectKnown
		},
	}}
}

// Evaluate runs the named policy. An unresolved role denies every policy
// unless the call site already applied the self-scope relaxation to the
// principal. Referencing an unregistered policy is a programming error, not
// an authorization outcome.
func (e *Engine) Evaluate(name string, p *Principal, rc RequestContext) error {
	policy, ok := e.policies[name]
	if !ok {
		return fmt.Errorf("auth: unknown policy %q", name)
	}
	if p == nil {
		return apperrors.NewUnauthorized("no authenticated principal")
	}
	if !p.RoleKnown {
		return apperrors.NewRoleUnresolved()
	}
	if !policy(p, rc) {
		return apperrors.NewForbidden(fmt.Sprintf("policy %s denied", name))
	}
	return nil
}

// Known reports whether a policy with the given name is registered.
func (e *Engine) Known(name string) bool {
	_, ok := e.policies[name]
	return ok
}
