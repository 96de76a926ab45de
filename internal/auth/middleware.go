package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// CookieName is the cookie carrying the session token.
const CookieName = "sessionID"

const principalKey = "auth_principal"

// Middleware wraps the gate for fiber routes.
type Middleware struct {
	gate *Gate
}

// NewMiddleware constructs middleware around the gate.
func NewMiddleware(gate *Gate) *Middleware {
	return &Middleware{gate: gate}
}

// RequireSession admits any caller with a valid session. Failure is a
// 403; the response does not reveal why the check failed.
func (m *Middleware) RequireSession() fiber.Handler {
	return m.require(domain.RoleUser, apperrors.NewForbidden())
}

// RequireAuthenticated admits any caller with a valid session but maps
// failure to 401, the contract for issue creation.
func (m *Middleware) RequireAuthenticated() fiber.Handler {
	return m.require(domain.RoleUser, apperrors.NewUnauthorized("Invalid session token provided"))
}

// RequireAdmin admits only administrators. Both "not authenticated"
// and "not admin" collapse into the same 403.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return m.require(domain.RoleAdmin, apperrors.NewForbidden())
}

func (m *Middleware) require(role domain.Role, failure error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := m.gate.Authorize(c.UserContext(), c.Cookies(CookieName), role)
		if err != nil {
			if errors.Is(err, ErrNoSession) || errors.Is(err, ErrRoleDenied) {
				return failure
			}
			return err
		}
		c.Locals(principalKey, principal)
		return c.Next()
	}
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
