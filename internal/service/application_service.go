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

// ApplicationService owns application operations: applicants act on their own
// applications, HR on applications to jobs they posted, Admin on everything.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// NewApplicationService builds the service.
func NewApplicationService(applications repository.ApplicationRepository, jobs repository.JobRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{applications: applications, jobs: jobs, dispatcher: dispatcher, logger: logger}
}

// Apply submits an application to an open job on behalf of the caller.
func (s *ApplicationService) Apply(ctx context.Context, p *auth.Principal, jobID int64, resumeURL, coverLetter string) (*domain.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": jobID})
		}
		return nil, err
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperrors.NewConflict("job is not accepting applications", nil)
	}

	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: p.SubjectID,
		ResumeURL:   resumeURL,
		CoverLetter: coverLetter,
		Status:      domain.ApplicationStatusSubmitted,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventApplicationSubmitted, p.SubjectID, events.ApplicationSubmittedPayload{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		ApplicantID:   app.ApplicantID,
		Status:        app.Status,
	})
	return app, nil
}

// Get returns one application. The relevant ownership reference depends on
// the caller's role: the application's applicant for Applicant callers, the
// job's creator for HR callers.
func (s *ApplicationService) Get(ctx context.Context, p *auth.Principal, id int64) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.AuthorizeOwned(p.Role, p.SubjectID, nil, false)
		}
		return nil, err
	}

	owner, err := s.ownerRefFor(ctx, p, app)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeOwned(p.Role, p.SubjectID, owner, true); err != nil {
		s.logDenial(p, id)
		return nil, err
	}
	return app, nil
}

// ListByJob returns applications for a posting; HR must own the posting.
func (s *ApplicationService) ListByJob(ctx context.Context, p *auth.Principal, jobID int64) ([]*domain.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.AuthorizeOwned(p.Role, p.SubjectID, nil, false)
		}
		return nil, err
	}
	if err := auth.AuthorizeOwned(p.Role, p.SubjectID, job.CreatedBy, true); err != nil {
		s.logDenial(p, jobID)
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID)
}

// ListForApplicant returns an applicant's own applications. This is the one
// call path where an unresolved role may be narrowed to Applicant: when the
// requested applicant id is the caller's own id.
func (s *ApplicationService) ListForApplicant(ctx context.Context, p *auth.Principal, applicantID int64) ([]*domain.Application, error) {
	role, ok := p.RoleOrSelfScope(applicantID)
	if !ok {
		return nil, apperrors.NewRoleUnresolved()
	}
	if err := auth.AuthorizeOwned(role, p.SubjectID, &applicantID, true); err != nil {
		s.logDenial(p, applicantID)
		return nil, err
	}
	return s.applications.ListByApplicant(ctx, applicantID)
}

// Withdraw marks the caller's application withdrawn.
func (s *ApplicationService) Withdraw(ctx context.Context, p *auth.Principal, id int64) error {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.AuthorizeOwned(p.Role, p.SubjectID, nil, false)
		}
		return err
	}
	if err := auth.AuthorizeOwned(p.Role, p.SubjectID, &app.ApplicantID, true); err != nil {
		s.logDenial(p, id)
		return err
	}

	if err := s.applications.UpdateStatus(ctx, id, domain.ApplicationStatusWithdrawn); err != nil {
		return err
	}
	s.publish(ctx, events.EventApplicationWithdrawn, p.SubjectID, events.ApplicationWithdrawnPayload{
		ApplicationID: app.ID,
		JobID:         app.JobID,
	})
	return nil
}

// Review moves an application to reviewed; HR must own the posting.
func (s *ApplicationService) Review(ctx context.Context, p *auth.Principal, id int64) error {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.AuthorizeOwned(p.Role, p.SubjectID, nil, false)
		}
		return err
	}

	job, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeOwned(p.Role, p.SubjectID, job.CreatedBy, true); err != nil {
		s.logDenial(p, id)
		return err
	}
	return s.applications.UpdateStatus(ctx, id, domain.ApplicationStatusReviewed)
}

// ownerRefFor picks which recorded owner the guard compares against.
func (s *ApplicationService) ownerRefFor(ctx context.Context, p *auth.Principal, app *domain.Application) (*int64, error) {
	if p.Role == auth.RoleHR {
		job, err := s.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		return job.CreatedBy, nil
	}
	return &app.ApplicantID, nil
}

func (s *ApplicationService) logDenial(p *auth.Principal, resourceID int64) {
	s.logger.Info("application access denied",
		zap.Int64("caller_id", p.SubjectID),
		zap.Int64("resource_id", resourceID))
}

func (s *ApplicationService) publish(ctx context.Context, eventType events.EventType, actorID int64, payload any) {
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
