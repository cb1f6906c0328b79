package auth

// Principal is the per-request view of the authenticated caller: normalized
// claims plus the single role the resolver settled on. Built once by the
// middleware after validation, read-only afterwards.
type Principal struct {
	SubjectID    int64
	SubjectKnown bool
	Email        string
	Role         Role
	RoleKnown    bool
	Claims       *ClaimSet
}

// NewPrincipal resolves the caller's identity and role from a validated claim
// set.
func NewPrincipal(claims *ClaimSet, resolver *RoleResolver) *Principal {
	p := &Principal{Claims: claims, Email: claims.Email()}
	p.SubjectID, p.SubjectKnown = claims.SubjectID()
	p.Role, p.RoleKnown = resolver.Resolve(claims)
	return p
}

// RoleOrSelfScope returns the resolved role. When resolution yielded no role
// and the caller is acting on a self-scoped resource it owns, the caller is
// treated as Applicant for this one decision. This narrowing lives here, at
// the call site boundary, and never inside the resolver.
func (p *Principal) RoleOrSelfScope(ownerID int64) (Role, bool) {
	if p.RoleKnown {
		return p.Role, true
	}
	if p.SubjectKnown && p.SubjectID == ownerID {
		return RoleApplicant, true
	}
	return 0, false
}

// SelfScoped returns a principal with the self-scope relaxation applied, or
// the receiver unchanged when it does not apply.
func (p *Principal) SelfScoped(ownerID int64) *Principal {
	role, ok := p.RoleOrSelfScope(ownerID)
	if !ok || p.RoleKnown {
		return p
	}
	scoped := *p
	scoped.Role = role
	scoped.RoleKnown = true
	return &scoped
}
