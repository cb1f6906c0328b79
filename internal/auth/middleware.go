package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

const principalKey = "auth_principal"

// Middleware validates bearer tokens and resolves the caller's role before
// any handler runs.
type Middleware struct {
	tokens   *TokenManager
	resolver *RoleResolver
	logger   *zap.Logger
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, resolver *RoleResolver, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, resolver: resolver, logger: logger}
}

// Handle authenticates the request. An unresolved role is not rejected here:
// policies deny it later, and one call path may still apply the self-scope
// relaxation. The raw token is never logged.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Validate(parts[1], time.Now())
	if err != nil {
		return apperrors.NewInvalidToken()
	}

	principal := NewPrincipal(claims, m.resolver)
	if !principal.RoleKnown {
		m.logger.Warn("role unresolved for authenticated caller",
			zap.Int64("caller_id", principal.SubjectID),
			zap.String("path", c.Path()))
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequirePolicy guards a route with a named policy.
func RequirePolicy(engine *Engine, name string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("no authenticated principal")
		}
		if err := engine.Evaluate(name, principal, RequestContext{}); err != nil {
			logger.Info("policy denied request",
				zap.Int64("caller_id", principal.SubjectID),
				zap.String("policy", name),
				zap.String("path", c.Path()))
			return err
		}
		return c.Next()
	}
}
