package auth

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Claim keys emitted at issuance. The role is embedded redundantly as both
// name and numeric code so consumers that rename or normalize claim types can
// still recover it.
const (
	ClaimSubject  = "sub"
	ClaimEmail    = "email"
	ClaimRoleName = "role"
	ClaimRoleCode = "role_code"
	ClaimTokenID  = "jti"

	// ClaimRoleCanonical is the explicit role-name claim some upstream
	// gateways rewrite "role" into.
	ClaimRoleCanonical = "role_name"

	// ClaimRoleLegacy is the namespaced claim type legacy identity
	// middleware maps role claims onto.
	ClaimRoleLegacy = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// ClaimSet is the read-only view of a validated token payload. It is built
// once per request after signature and time checks pass and never mutated.
type ClaimSet struct {
	values map[string]any
}

// NewClaimSet copies the payload map into an immutable view.
func NewClaimSet(values map[string]any) *ClaimSet {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &ClaimSet{values: copied}
}

// Get returns the raw claim value for key.
func (c *ClaimSet) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the claim value as a string, or "" when absent or not
// string-representable.
func (c *ClaimSet) String(key string) string {
	v, ok := c.values[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// Keys returns all claim keys in sorted order.
func (c *ClaimSet) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SubjectID parses the subject claim as the caller's numeric identity id.
func (c *ClaimSet) SubjectID() (int64, bool) {
	raw := c.String(ClaimSubject)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Email returns the email claim.
func (c *ClaimSet) Email() string {
	return c.String(ClaimEmail)
}
