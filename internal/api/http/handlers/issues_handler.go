package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// IssuesHandler manages issue endpoints.
type IssuesHandler struct {
	issues *service.IssueService
}

// NewIssuesHandler constructs the handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{issues: issueService}
}

// Create handles POST /api/issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Invalid session token provided")
	}
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("invalid payload", nil)
	}

	issue, err := h.issues.Create(c.UserContext(), principal.User.ID, service.IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": issue.ID})
}

// ListAll handles GET /api/issues.
func (h *IssuesHandler) ListAll(c *fiber.Ctx) error {
	issues, err := h.issues.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(issueResponses(issues))
}

// ListByOwner handles GET /api/users/:id/issues.
func (h *IssuesHandler) ListByOwner(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewForbidden()
	}
	issues, err := h.issues.ListByOwner(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(issueResponses(issues))
}

// Update handles PATCH /api/issues/:id.
func (h *IssuesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewForbidden()
	}
	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("invalid payload", nil)
	}

	patch := repository.IssuePatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Type != nil {
		issueType, valid := domain.ParseIssueType(*req.Type)
		if !valid {
			return apperrors.NewUnprocessable("unknown issue type", map[string]any{"type": *req.Type})
		}
		patch.Type = &issueType
	}

	if err := h.issues.Update(c.UserContext(), principal, c.Params("id"), patch); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Issue has been updated"})
}

// Resolve handles PATCH /api/issues/resolve/:id.
func (h *IssuesHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewForbidden()
	}
	if err := h.issues.Resolve(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Issue has been resolved"})
}

// Delete handles DELETE /api/issues/:id.
func (h *IssuesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewForbidden()
	}
	if err := h.issues.Delete(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Issue has been deleted"})
}

func issueResponses(issues []domain.Issue) []dto.IssueResponse {
	items := make([]dto.IssueResponse, 0, len(issues))
	for _, issue := range issues {
		items = append(items, dto.IssueResponse{
			ID:          issue.ID,
			Title:       issue.Title,
			Type:        string(issue.Type),
			Description: issue.Description,
			UserID:      issue.UserID,
			IsResolved:  issue.IsResolved,
		})
	}
	return items
}
