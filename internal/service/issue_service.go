package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// IssueService coordinates issue workflows.
type IssueService struct {
	issues     repository.IssueRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// IssueDependencies bundles repositories for the issue service.
type IssueDependencies struct {
	IssueRepo  repository.IssueRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// IssueCreateInput describes the issue creation payload.
type IssueCreateInput struct {
	Title       string
	Description string
	Type        string
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create stores a new issue owned by ownerID. Title and description
// are persisted verbatim; the type must be one of the fixed set.
func (s *IssueService) Create(ctx context.Context, ownerID string, input IssueCreateInput) (*domain.Issue, error) {
	if input.Title == "" || input.Description == "" {
		return nil, apperrors.NewUnprocessable("title and description are required", nil)
	}
	issueType, ok := domain.ParseIssueType(input.Type)
	if !ok {
		return nil, apperrors.NewUnprocessable("unknown issue type", map[string]any{"type": input.Type})
	}

	issue := &domain.Issue{
		Title:       input.Title,
		Description: input.Description,
		Type:        issueType,
		UserID:      ownerID,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventIssueCreated,
		ActorID: ownerID,
		Payload: events.IssueCreatedPayload{
			IssueID: issue.ID,
			OwnerID: ownerID,
			Type:    issue.Type,
			Title:   issue.Title,
		},
	})
	return issue, nil
}

// ListAll returns every issue. Admin-only; enforced by the caller.
func (s *IssueService) ListAll(ctx context.Context) ([]domain.Issue, error) {
	return s.issues.ListAll(ctx)
}

// ListByOwner returns the issues of targetID for a caller that is
// either that user or an admin.
func (s *IssueService) ListByOwner(ctx context.Context, principal *auth.Principal, targetID string) ([]domain.Issue, error) {
	if principal.User.ID != targetID && !principal.Role().HasAtLeast(domain.RoleAdmin) {
		return nil, apperrors.NewForbidden()
	}
	exists, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundMessage("ID of user not found")
	}
	return s.issues.ListByOwner(ctx, targetID)
}

// Update applies a sparse patch on behalf of the owner or an admin.
// An empty patch is a validation failure, not a no-op.
func (s *IssueService) Update(ctx context.Context, principal *auth.Principal, issueID string, patch repository.IssuePatch) error {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("ID of issue not found")
		}
		return err
	}
	if issue.UserID != principal.User.ID && !principal.Role().HasAtLeast(domain.RoleAdmin) {
		return apperrors.NewForbidden()
	}
	if patch.IsEmpty() {
		return apperrors.NewUnprocessable("Must enter at least one value", nil)
	}

	if err := s.issues.Update(ctx, issueID, patch); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("ID of issue not found")
		}
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventIssueUpdated,
		ActorID: principal.User.ID,
		Payload: events.IssueUpdatedPayload{
			IssueID: issueID,
			Fields:  patchFields(patch),
		},
	})
	return nil
}

// Resolve marks the issue resolved. Admin-only; enforced by the
// caller. Resolving twice succeeds both times.
func (s *IssueService) Resolve(ctx context.Context, actorID, issueID string) error {
	if err := s.issues.Resolve(ctx, issueID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("ID of issue not found")
		}
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventIssueResolved,
		ActorID: actorID,
		Payload: events.IssueResolvedPayload{IssueID: issueID},
	})
	return nil
}

// Delete removes the issue. Admin-only; enforced by the caller.
func (s *IssueService) Delete(ctx context.Context, actorID, issueID string) error {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("ID of issue not found")
		}
		return err
	}
	if err := s.issues.Delete(ctx, issueID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("ID of issue not found")
		}
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventIssueDeleted,
		ActorID: actorID,
		Payload: events.IssueDeletedPayload{IssueID: issueID, OwnerID: issue.UserID},
	})
	return nil
}

func (s *IssueService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func patchFields(patch repository.IssuePatch) []string {
	fields := []string{}
	if patch.Title != nil {
		fields = append(fields, "title")
	}
	if patch.Type != nil {
		fields = append(fields, "type")
	}
	if patch.Description != nil {
		fields = append(fields, "description")
	}
	return fields
}
