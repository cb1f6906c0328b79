package domain

import "time"

// JobStatus represents lifecycle states for a job posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "OPEN"
	JobStatusClosed JobStatus = "CLOSED"
)

// Job is a posting created by an HR user. CreatedBy is the ownership
// reference: set once at creation, never reassigned. It is nullable because
// postings imported from legacy systems may lack a recorded creator; such
// postings fail closed on HR-owner checks.
type Job struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Salary      *int64
	CreatedBy   *int64
	Status      JobStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
