package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// ApplicationRepository defines persistence access for job applications.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID int64) ([]*domain.Application, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository returns a Postgres-backed implementation.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (job_id, applicant_id, resume_url, cover_letter, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		app.JobID,
		app.ApplicantID,
		app.ResumeURL,
		app.CoverLetter,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE applications SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	const query = `
        SELECT id, job_id, applicant_id, resume_url, cover_letter, status, created_at, updated_at
        FROM applications WHERE id=$1`

	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.JobID,
		&app.ApplicantID,
		&app.ResumeURL,
		&app.CoverLetter,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*domain.Application, error) {
	const query = `
        SELECT id, job_id, applicant_id, resume_url, cover_letter, status, created_at, updated_at
        FROM applications WHERE job_id=$1 ORDER BY created_at DESC`

	return r.list(ctx, query, jobID)
}

func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID int64) ([]*domain.Application, error) {
	const query = `
        SELECT id, job_id, applicant_id, resume_url, cover_letter, status, created_at, updated_at
        FROM applications WHERE applicant_id=$1 ORDER BY created_at DESC`

	return r.list(ctx, query, applicantID)
}

func (r *applicationRepository) list(ctx context.Context, query string, arg any) ([]*domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID,
			&app.JobID,
			&app.ApplicantID,
			&app.ResumeURL,
			&app.CoverLetter,
			&app.Status,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}
