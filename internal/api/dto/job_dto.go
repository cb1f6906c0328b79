package dto

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// JobRequest payload for creating or updating a posting.
type JobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Salary      *int64 `json:"salary,omitempty"`
}

// JobResponse is the public view of a posting.
type JobResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Salary      *int64    `json:"salary,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewJobResponse maps a domain job. The owner id is intentionally not exposed.
func NewJobResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Salary:      job.Salary,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
	}
}

// NewJobResponses maps a slice of jobs.
func NewJobResponses(jobs []*domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, NewJobResponse(job))
	}
	return out
}
