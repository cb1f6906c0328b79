package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/service"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ApplicationsHandler exposes application endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	engine       *auth.Engine
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, engine *auth.Engine) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService, engine: engine}
}

// Apply handles POST /jobs/:id/applications. Route policy: ApplicantOnly.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no authenticated principal")
	}
	jobID, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.applications.Apply(c.Context(), principal, jobID, req.ResumeURL, req.CoverLetter)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// Get handles GET /applications/:id. Route policy: ApplicantOrAdminOrHROwns;
// the specific owner comparison runs in the service.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no authenticated principal")
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	app, err := h.applications.Get(c.Context(), principal, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponse(app)})
}

// ListByJob handles GET /jobs/:id/applications. Route policy: AdminOrHR.
func (h *ApplicationsHandler) ListByJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no authenticated principal")
	}
	jobID, err := pathID(c)
	if err != nil {
		return err
	}

	apps, err := h.applications.ListByJob(c.Context(), principal, jobID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponses(apps)})
}

// ListMine handles GET /applications/mine. This is the one call path that may
// apply the self-scope narrowing: a caller whose role did not resolve but who
// requests their own records is treated as Applicant for this decision, before
// the policy is consulted.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no authenticated principal")
	}
	if !principal.SubjectKnown {
		return apperrors.NewUnauthorized("subject id missing from token")
	}

	applicantID := principal.SubjectID
	scoped := principal.SelfScoped(applicantID)
	if err := h.engine.Evaluate(auth.PolicyApplicantOrAdminOrHROwns, scoped, auth.RequestContext{ResourceID: applicantID}); err != nil {
		return err
	}

	apps, err := h.applications.ListForApplicant(c.Context(), scoped, applicantID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationResponses(apps)})
}

// Withdraw handles POST /applications/:id/withdraw. Route policy:
// ApplicantOrAdminOrHROwns.
func (h *ApplicationsHandler) Withdraw(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no authenticated principal")
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.applications.Withdraw(c.Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "withdrawn"}})
}

// Review handles POST /applications/:id/review. Route policy: AdminOrHR.
func (h *ApplicationsHandler) Review(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no authenticated principal")
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.applications.Review(c.Context(), principal, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "reviewed"}})
}
