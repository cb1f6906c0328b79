package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// JobInput carries creatable/updatable job fields.
type JobInput struct {
	Title       string
	Description string
	Location    string
	Salary      *int64
}

// JobService owns job posting operations. Role policies are enforced at the
// route; owner-scoped operations additionally run the ownership guard here.
type JobService struct {
	jobs       repository.JobRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewJobService builds the service.
func NewJobService(jobs repository.JobRepository, dispatcher events.Dispatcher, logger *zap.Logger) *JobService {
	return &JobService{jobs: jobs, dispatcher: dispatcher, logger: logger}
}

// Create posts a new job owned by the caller. The ownership reference is set
// here, once, and never reassigned.
func (s *JobService) Create(ctx context.Context, p *auth.Principal, input JobInput) (*domain.Job, error) {
	if input.Title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	createdBy := p.SubjectID
	job := &domain.Job{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Salary:      input.Salary,
		CreatedBy:   &createdBy,
		Status:      domain.JobStatusOpen,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventJobPosted, p.SubjectID, events.JobPostedPayload{
		JobID: job.ID,
		Title: job.Title,
	})
	return job, nil
}

// Get returns a job; listings are public.
func (s *JobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
		}
		return nil, err
	}
	return job, nil
}

// List returns jobs, optionally filtered by status.
func (s *JobService) List(ctx context.Context, status *domain.JobStatus, limit, offset int) ([]*domain.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.jobs.List(ctx, status, limit, offset)
}

// Update edits a posting. Admin may edit any job; HR only jobs they created.
func (s *JobService) Update(ctx context.Context, p *auth.Principal, id int64, input JobInput) (*domain.Job, error) {
	job, err := s.authorizeOwner(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		job.Title = input.Title
	}
	if input.Description != "" {
		job.Description = input.Description
	}
	if input.Location != "" {
		job.Location = input.Location
	}
	if input.Salary != nil {
		job.Salary = input.Salary
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Close marks a posting closed.
func (s *JobService) Close(ctx context.Context, p *auth.Principal, id int64) (*domain.Job, error) {
	job, err := s.authorizeOwner(ctx, p, id)
	if err != nil {
		return nil, err
	}

	job.Status = domain.JobStatusClosed
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventJobClosed, p.SubjectID, events.JobClosedPayload{JobID: job.ID})
	return job, nil
}

// Delete removes a posting.
func (s *JobService) Delete(ctx context.Context, p *auth.Principal, id int64) error {
	if _, err := s.authorizeOwner(ctx, p, id); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

// authorizeOwner loads the job and runs the ownership guard. A missing job is
// NotFound for every role; an existing job owned by someone else is Forbidden,
// never NotFound.
func (s *JobService) authorizeOwner(ctx context.Context, p *auth.Principal, id int64) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.AuthorizeOwned(p.Role, p.SubjectID, nil, false)
		}
		return nil, err
	}
	if err := auth.AuthorizeOwned(p.Role, p.SubjectID, job.CreatedBy, true); err != nil {
		s.logger.Info("job ownership denied",
			zap.Int64("caller_id", p.SubjectID),
			zap.Int64("job_id", id))
		return nil, err
	}
	return job, nil
}

func (s *JobService) publish(ctx context.Context, eventType events.EventType, actorID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   &actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
