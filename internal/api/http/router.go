package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
	"github.com/spec-kit/jobboard-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.Middleware
	Engine         *auth.Engine
	Logger         *zap.Logger
}

// RegisterRoutes wires HTTP routes. Each protected operation selects its
// policy by name.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/:id", cfg.Jobs.Get)

	jobsProtected := jobs.Group("", cfg.AuthMiddleware.Handle)
	jobsProtected.Post("/",
		auth.RequirePolicy(cfg.Engine, auth.PolicyHROnly, cfg.Logger), cfg.Jobs.Create)
	jobsProtected.Put("/:id",
		auth.RequirePolicy(cfg.Engine, auth.PolicyAdminOrHR, cfg.Logger), cfg.Jobs.Update)
	jobsProtected.Post("/:id/close",
		auth.RequirePolicy(cfg.Engine, auth.PolicyAdminOrHR, cfg.Logger), cfg.Jobs.Close)
	jobsProtected.Delete("/:id",
		auth.RequirePolicy(cfg.Engine, auth.PolicyAdminOrHR, cfg.Logger), cfg.Jobs.Delete)
	jobsProtected.Post("/:id/applications",
		auth.RequirePolicy(cfg.Engine, auth.PolicyApplicantOnly, cfg.Logger), cfg.Applications.Apply)
	jobsProtected.Get("/:id/applications",
		auth.RequirePolicy(cfg.Engine, auth.PolicyAdminOrHR, cfg.Logger), cfg.Applications.ListByJob)

	applications := app.Group("/applications", cfg.AuthMiddleware.Handle)
	// ListMine evaluates ApplicantOrAdminOrHROwns itself, after the optional
	// self-scope narrowing; no route-level policy here.
	applications.Get("/mine", cfg.Applications.ListMine)
	applications.Get("/:id",
		auth.RequirePolicy(cfg.Engine, auth.PolicyApplicantOrAdminOrHROwns, cfg.Logger), cfg.Applications.Get)
	applications.Post("/:id/withdraw",
		auth.RequirePolicy(cfg.Engine, auth.PolicyApplicantOrAdminOrHROwns, cfg.Logger), cfg.Applications.Withdraw)
	applications.Post("/:id/review",
		auth.RequirePolicy(cfg.Engine, auth.PolicyAdminOrHR, cfg.Logger), cfg.Applications.Review)
}
