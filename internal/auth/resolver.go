package auth

import (
	"strconv"
	"strings"
)

// RoleResolver maps a ClaimSet to exactly one Role, or reports that none could
// be determined. Intermediate layers are known to rename role claims (short
// name, namespaced URI, numeric side-channel) so resolution runs an ordered
// chain of strategies; the first strategy that yields a role wins and later
// ones are never consulted. The chain order is a total tie-break: when
// conflicting role claims coexist, the lowest-numbered strategy decides.
//
// The resolver is pure. The self-scoped "treat unknown as applicant" override
// is a call-site decision (Principal.RoleOrSelfScope) and is deliberately not
// part of Resolve.
type RoleResolver struct {
	chain []roleStrategy
}

type roleStrategy struct {
	name    string
	resolve func(*ClaimSet) (Role, bool)
}

// NewRoleResolver builds the resolver with the canonical strategy chain.
func NewRoleResolver() *RoleResolver {
	return &RoleResolver{chain: []roleStrategy{
		{name: "role_code", resolve: resolveRoleCode},
		{name: "role_name", resolve: resolveCanonicalName},
		{name: "legacy_namespaced", resolve: claimValueStrategy(ClaimRoleLegacy)},
		{name: "generic_role", resolve: claimValueStrategy(ClaimRoleName)},
		{name: "key_scan", resolve: resolveKeyScan},
		{name: "membership_probe", resolve: resolveMembership},
	}}
}

// Resolve returns the single deterministic role for the claim set, or
// (0, false) when every strategy is exhausted.
func (r *RoleResolver) Resolve(claims *ClaimSet) (Role, bool) {
	for _, strategy := range r.chain {
		if role, ok := strategy.resolve(claims); ok {
			return role, true
		}
	}
	return 0, false
}

// resolveRoleCode reads the dedicated numeric role-code claim. Values that
// parse as integers but fall outside the defined codes are rejected, not
// clamped.
func resolveRoleCode(claims *ClaimSet) (Role, bool) {
	raw := claims.String(ClaimRoleCode)
	if raw == "" {
		return 0, false
	}
	code, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return RoleFromCode(code)
}

// resolveCanonicalName matches the explicit role-name claim against registry
// names, case-insensitively. No numeric interpretation at this tier.
func resolveCanonicalName(claims *ClaimSet) (Role, bool) {
	raw := claims.String(ClaimRoleCanonical)
	if raw == "" {
		return 0, false
	}
	return RoleFromName(raw)
}

// claimValueStrategy builds a strategy reading a single claim key, trying an
// integer code first and a name match second.
func claimValueStrategy(key string) func(*ClaimSet) (Role, bool) {
	return func(claims *ClaimSet) (Role, bool) {
		raw := claims.String(key)
		if raw == "" {
			return 0, false
		}
		return parseRoleValue(raw)
	}
}

// resolveKeyScan is the last-resort targeted lookup: any remaining claim whose
// key contains "role" is tried, in sorted key order so the result does not
// depend on map iteration.
func resolveKeyScan(claims *ClaimSet) (Role, bool) {
	for _, key := range claims.Keys() {
		switch key {
		case ClaimRoleCode, ClaimRoleCanonical, ClaimRoleLegacy, ClaimRoleName:
			continue
		}
		if !strings.Contains(strings.ToLower(key), "role") {
			continue
		}
		if role, ok := parseRoleValue(claims.String(key)); ok {
			return role, true
		}
	}
	return 0, false
}

// resolveMembership probes the fixed, ordered list of known role names: a
// truthy claim keyed by the role name, or a "roles"/"groups" list containing
// it, satisfies the probe. The first satisfied role wins.
func resolveMembership(claims *ClaimSet) (Role, bool) {
	for _, role := range Roles() {
		name := role.Name()
		if v, ok := claims.Get(name); ok && truthy(v) {
			return role, true
		}
		for _, listKey := range []string{"roles", "groups"} {
			if containsName(claims, listKey, name) {
				return role, true
			}
		}
	}
	return 0, false
}

func parseRoleValue(raw string) (Role, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if code, err := strconv.Atoi(raw); err == nil {
		return RoleFromCode(code)
	}
	return RoleFromName(raw)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t == 1
	default:
		return false
	}
}

func containsName(claims *ClaimSet, key, name string) bool {
	v, ok := claims.Get(key)
	if !ok {
		return false
	}
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if s, ok := item.(string); ok && strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
