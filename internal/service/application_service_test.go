package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

func newTestApplicationService(t *testing.T) (*ApplicationService, *JobService) {
	t.Helper()
	jobs := newMemoryJobRepo()
	apps := newMemoryApplicationRepo()
	logger := zap.NewNop()
	return NewApplicationService(apps, jobs, nil, logger), NewJobService(jobs, nil, logger)
}

func TestApplyToOpenJob(t *testing.T) {
	appSvc, jobSvc := newTestApplicationService(t)
	job, err := jobSvc.Create(context.Background(), hrPrincipal(5), JobInput{Title: "Go Engineer"})
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}

	app, err := appSvc.Apply(context.Background(), applicantPrincipal(9), job.ID, "https://cv.example/9", "hello")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.ApplicantID != 9 {
		t.Fatalf("applicant id = %d, want 9", app.ApplicantID)
	}
	if app.Status != domain.ApplicationStatusSubmitted {
		t.Fatalf("status = %v", app.Status)
	}

	// closed jobs do not accept applications
	if _, err := jobSvc.Close(context.Background(), hrPrincipal(5), job.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := appSvc.Apply(context.Background(), applicantPrincipal(10), job.ID, "", ""); !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("apply to closed job: got %v, want CONFLICT", err)
	}

	// missing job
	if _, err := appSvc.Apply(context.Background(), applicantPrincipal(9), 999, "", ""); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("apply to missing job: got %v, want NOT_FOUND", err)
	}
}

func TestGetApplicationOwnerScoping(t *testing.T) {
	appSvc, jobSvc := newTestApplicationService(t)
	job, _ := jobSvc.Create(context.Background(), hrPrincipal(5), JobInput{Title: "Go Engineer"})
	app, err := appSvc.Apply(context.Background(), applicantPrincipal(9), job.ID, "", "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// the applicant who owns it
	if _, err := appSvc.Get(context.Background(), applicantPrincipal(9), app.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	// another applicant is forbidden, not told it is missing
	if _, err := appSvc.Get(context.Background(), applicantPrincipal(10), app.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("other applicant get: got %v, want FORBIDDEN", err)
	}
	// the HR user who posted the job
	if _, err := appSvc.Get(context.Background(), hrPrincipal(5), app.ID); err != nil {
		t.Fatalf("posting HR get: %v", err)
	}
	// a different HR user
	if _, err := appSvc.Get(context.Background(), hrPrincipal(6), app.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("other HR get: got %v, want FORBIDDEN", err)
	}
	// admin
	if _, err := appSvc.Get(context.Background(), adminPrincipal(1), app.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
	// absent application
	if _, err := appSvc.Get(context.Background(), adminPrincipal(1), 999); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("missing application: got %v, want NOT_FOUND", err)
	}
}

func TestListByJobRequiresPostingOwnership(t *testing.T) {
	appSvc, jobSvc := newTestApplicationService(t)
	job, _ := jobSvc.Create(context.Background(), hrPrincipal(5), JobInput{Title: "Go Engineer"})
	if _, err := appSvc.Apply(context.Background(), applicantPrincipal(9), job.ID, "", ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	apps, err := appSvc.ListByJob(context.Background(), hrPrincipal(5), job.ID)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("len = %d, want 1", len(apps))
	}

	if _, err := appSvc.ListByJob(context.Background(), hrPrincipal(6), job.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("other HR list: got %v, want FORBIDDEN", err)
	}
	if _, err := appSvc.ListByJob(context.Background(), hrPrincipal(5), 999); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("missing job list: got %v, want NOT_FOUND", err)
	}
}

func TestListForApplicantSelfScope(t *testing.T) {
	appSvc, jobSvc := newTestApplicationService(t)
	job, _ := jobSvc.Create(context.Background(), hrPrincipal(5), JobInput{Title: "Go Engineer"})
	if _, err := appSvc.Apply(context.Background(), applicantPrincipal(9), job.ID, "", ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// a caller whose role did not resolve but who asks for their own records
	// is narrowed to applicant for this decision
	unresolved := &auth.Principal{SubjectID: 9, SubjectKnown: true}
	apps, err := appSvc.ListForApplicant(context.Background(), unresolved, 9)
	if err != nil {
		t.Fatalf("self-scoped list: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("len = %d, want 1", len(apps))
	}

	// the narrowing never applies to someone else's records
	stranger := &auth.Principal{SubjectID: 10, SubjectKnown: true}
	if _, err := appSvc.ListForApplicant(context.Background(), stranger, 9); !apperrors.IsCode(err, "ROLE_UNRESOLVED") {
		t.Fatalf("stranger list: got %v, want ROLE_UNRESOLVED", err)
	}

	// a resolved applicant cannot read another applicant's records
	if _, err := appSvc.ListForApplicant(context.Background(), applicantPrincipal(10), 9); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("other applicant list: got %v, want FORBIDDEN", err)
	}

	// admin may
	if _, err := appSvc.ListForApplicant(context.Background(), adminPrincipal(1), 9); err != nil {
		t.Fatalf("admin list: %v", err)
	}
}

func TestWithdrawAndReview(t *testing.T) {
	appSvc, jobSvc := newTestApplicationService(t)
	job, _ := jobSvc.Create(context.Background(), hrPrincipal(5), JobInput{Title: "Go Engineer"})
	app, err := appSvc.Apply(context.Background(), applicantPrincipal(9), job.ID, "", "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// only the owning applicant (or admin) withdraws
	if err := appSvc.Withdraw(context.Background(), applicantPrincipal(10), app.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("other applicant withdraw: got %v, want FORBIDDEN", err)
	}
	if err := appSvc.Withdraw(context.Background(), applicantPrincipal(9), app.ID); err != nil {
		t.Fatalf("owner withdraw: %v", err)
	}
	got, err := appSvc.Get(context.Background(), adminPrincipal(1), app.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.ApplicationStatusWithdrawn {
		t.Fatalf("status = %v, want WITHDRAWN", got.Status)
	}

	// review is gated on posting ownership
	app2, err := appSvc.Apply(context.Background(), applicantPrincipal(11), job.ID, "", "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := appSvc.Review(context.Background(), hrPrincipal(6), app2.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("other HR review: got %v, want FORBIDDEN", err)
	}
	if err := appSvc.Review(context.Background(), hrPrincipal(5), app2.ID); err != nil {
		t.Fatalf("posting HR review: %v", err)
	}
}
