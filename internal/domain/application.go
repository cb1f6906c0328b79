package domain

import "time"

// ApplicationStatus represents lifecycle states for a job application.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationStatusReviewed  ApplicationStatus = "REVIEWED"
	ApplicationStatusWithdrawn ApplicationStatus = "WITHDRAWN"
)

// Application records an applicant applying to a job. ApplicantID is the
// ownership reference, set at creation and immutable.
type Application struct {
	ID          int64
	JobID       int64
	ApplicantID int64
	ResumeURL   string
	CoverLetter string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
