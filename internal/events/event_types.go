package events

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventJobPosted              EventType = "job_posted"
	EventJobClosed              EventType = "job_closed"
	EventApplicationSubmitted   EventType = "application_submitted"
	EventApplicationWithdrawn   EventType = "application_withdrawn"
	EventPasswordResetRequested EventType = "password_reset_requested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ActorID   *int64    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// JobPostedPayload payload.
type JobPostedPayload struct {
	JobID int64  `json:"job_id"`
	Title string `json:"title"`
}

// JobClosedPayload payload.
type JobClosedPayload struct {
	JobID int64 `json:"job_id"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID int64                    `json:"application_id"`
	JobID         int64                    `json:"job_id"`
	ApplicantID   int64                    `json:"applicant_id"`
	Status        domain.ApplicationStatus `json:"status"`
}

// ApplicationWithdrawnPayload payload.
type ApplicationWithdrawnPayload struct {
	ApplicationID int64 `json:"application_id"`
	JobID         int64 `json:"job_id"`
}

// PasswordResetRequestedPayload payload. The token itself is delivered out of
// band, never logged.
type PasswordResetRequestedPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
