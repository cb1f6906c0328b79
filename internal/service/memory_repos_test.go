package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

// In-memory repository fakes for service tests.

type memoryUserRepo struct {
	nextID int64
	byID   map[int64]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, byID: make(map[int64]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.byID[user.ID] = &stored
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	r.byID[user.ID] = &stored
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memoryJobRepo struct {
	nextID int64
	byID   map[int64]*domain.Job
}

func newMemoryJobRepo() *memoryJobRepo {
	return &memoryJobRepo{nextID: 1, byID: make(map[int64]*domain.Job)}
}

func (r *memoryJobRepo) Create(_ context.Context, job *domain.Job) error {
	job.ID = r.nextID
	r.nextID++
	stored := *job
	r.byID[job.ID] = &stored
	return nil
}

func (r *memoryJobRepo) Update(_ context.Context, job *domain.Job) error {
	if _, ok := r.byID[job.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *job
	r.byID[job.ID] = &stored
	return nil
}

func (r *memoryJobRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryJobRepo) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	job, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (r *memoryJobRepo) List(_ context.Context, status *domain.JobStatus, limit, offset int) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)
	for _, job := range r.byID {
		if status != nil && job.Status != *status {
			continue
		}
		copied := *job
		jobs = append(jobs, &copied)
	}
	return jobs, nil
}

type memoryApplicationRepo struct {
	nextID int64
	byID   map[int64]*domain.Application
}

func newMemoryApplicationRepo() *memoryApplicationRepo {
	return &memoryApplicationRepo{nextID: 1, byID: make(map[int64]*domain.Application)}
}

func (r *memoryApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	app.ID = r.nextID
	r.nextID++
	stored := *app
	r.byID[app.ID] = &stored
	return nil
}

func (r *memoryApplicationRepo) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus) error {
	app, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	app.Status = status
	return nil
}

func (r *memoryApplicationRepo) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	app, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *app
	return &copied, nil
}

func (r *memoryApplicationRepo) ListByJob(_ context.Context, jobID int64) ([]*domain.Application, error) {
	apps := make([]*domain.Application, 0)
	for _, app := range r.byID {
		if app.JobID == jobID {
			copied := *app
			apps = append(apps, &copied)
		}
	}
	return apps, nil
}

func (r *memoryApplicationRepo) ListByApplicant(_ context.Context, applicantID int64) ([]*domain.Application, error) {
	apps := make([]*domain.Application, 0)
	for _, app := range r.byID {
		if app.ApplicantID == applicantID {
			copied := *app
			apps = append(apps, &copied)
		}
	}
	return apps, nil
}

type memoryResetRepo struct {
	nextID  int64
	byToken map[string]*repository.PasswordResetToken
}

func newMemoryResetRepo() *memoryResetRepo {
	return &memoryResetRepo{nextID: 1, byToken: make(map[string]*repository.PasswordResetToken)}
}

func (r *memoryResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	token.ID = r.nextID
	r.nextID++
	stored := *token
	r.byToken[token.Token] = &stored
	return nil
}

func (r *memoryResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := r.byToken[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (r *memoryResetRepo) MarkUsed(_ context.Context, id int64) error {
	for _, token := range r.byToken {
		if token.ID == id && token.UsedAt == nil {
			now := token.ExpiresAt
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}
