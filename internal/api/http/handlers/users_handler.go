package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UsersHandler exposes account and session endpoints.
type UsersHandler struct {
	accounts      *service.AccountService
	secureCookies bool
}

// NewUsersHandler constructs the handler. The cookie-security flag is
// injected here and nowhere else.
func NewUsersHandler(accounts *service.AccountService, secureCookies bool) *UsersHandler {
	return &UsersHandler{accounts: accounts, secureCookies: secureCookies}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.accounts.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"id":      user.ID,
		"message": "User has been successfully registered",
	})
}

// Login handles POST /api/auth/login. Success sets the session cookie.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sess, _, err := h.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:    auth.CookieName,
		Value:   sess.ID,
		Expires: sess.ExpiresAt,
		Secure:  h.secureCookies,
		Path:    "/",
	})
	return c.JSON(fiber.Map{"message": "Session has been successfully created"})
}

// Logout handles POST /api/auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	if err := h.accounts.Logout(c.UserContext(), c.Cookies(auth.CookieName)); err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:    auth.CookieName,
		Value:   "",
		Expires: time.Unix(0, 0),
		Secure:  h.secureCookies,
		Path:    "/",
	})
	return c.JSON(fiber.Map{"message": "Session has been successfully deleted"})
}

// IDByEmail handles POST /api/auth/id.
func (h *UsersHandler) IDByEmail(c *fiber.Ctx) error {
	var req dto.IDByEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	id, err := h.accounts.IDByEmail(c.UserContext(), c.Cookies(auth.CookieName), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id})
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.accounts.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.UserResponse{
			ID:      user.ID,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		})
	}
	return c.JSON(items)
}

// Promote handles PATCH /api/users/:id/promote.
func (h *UsersHandler) Promote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewForbidden()
	}
	if err := h.accounts.Promote(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User has been successfully promoted"})
}

// Delete handles DELETE /api/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewForbidden()
	}
	if err := h.accounts.DeleteUser(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User has been successfully deleted"})
}
