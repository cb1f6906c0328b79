package auth

import (
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// AuthorizeOwned decides owner-scoped access for a single resource.
//
// An absent resource short-circuits to NotFound for every role, before any
// ownership comparison. For a resource that exists, Admin passes regardless of
// owner; HR and Applicant pass only when the recorded owner id equals the
// caller id. A resource with no owner recorded fails closed with Forbidden.
// An ownership mismatch on an existing resource is never reported as NotFound.
func AuthorizeOwned(role Role, callerID int64, ownerID *int64, resourceExists bool) error {
	if !resourceExists {
		return apperrors.NewNotFound("resource", nil)
	}

	switch role {
	case RoleAdmin:
		return nil
	case RoleHR, RoleApplicant:
		if ownerID == nil || *ownerID != callerID {
			return apperrors.NewForbidden("resource owned by another user")
		}
		return nil
	default:
		return apperrors.NewForbidden("unrecognized role")
	}
}
