package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/session"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Lowercase alphanumeric local part with one optional separator,
// domain and TLD. Single-character local parts are accepted.
var emailPattern = regexp.MustCompile(`^[a-z0-9]+[\._]?[a-z0-9]*[@]\w+[.]\w+$`)

// AccountService coordinates registration, login and user management.
type AccountService struct {
	users      repository.UserRepository
	issues     repository.IssueRepository
	sessions   session.Store
	dispatcher events.Dispatcher
	bcryptCost int
}

// AccountDependencies bundles requirements for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	IssueRepo  repository.IssueRepository
	Sessions   session.Store
	Dispatcher events.Dispatcher
	BcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		issues:     deps.IssueRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// Register creates a new account after validating email format and
// password complexity. Validation runs before the store is touched.
func (s *AccountService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" || !validEmail(email) || !validPassword(password) {
		return nil, apperrors.NewValidationError("Email or password entered is not valid format", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("Email already registered", nil)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a fresh session. The failure
// ladder is part of the external contract: empty or malformed email is
// a validation error, an unknown email is not found, and a wrong
// password is unauthorized.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, apperrors.NewValidationError("Email or password entered is not valid format", nil)
	}
	if !validEmail(email) {
		return nil, nil, apperrors.NewValidationError("Email entered is not valid format", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFoundMessage("Email does not exist in system")
		}
		return nil, nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.NewUnauthorized("Incorrect email or password")
	}

	// Legacy SHA-256 records are migrated to bcrypt on the first
	// successful login. Failure to upgrade does not block the login.
	if auth.NeedsRehash(user.PasswordHash) {
		if hash, hashErr := auth.HashPassword(password, s.bcryptCost); hashErr == nil {
			_ = s.users.UpdatePasswordHash(ctx, user.ID, hash)
		}
	}

	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return sess, user, nil
}

// Logout deletes the session. An unknown or missing token is 404.
func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return apperrors.NewNotFoundMessage("session does not exist")
		}
		return err
	}
	return nil
}

// ListUsers returns every account. Authorization (any valid session)
// is enforced by the caller, not here.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// IDByEmail resolves a user id from an email for callers holding any
// valid session.
func (s *AccountService) IDByEmail(ctx context.Context, sessionID, email string) (string, error) {
	ok, err := s.sessions.Exists(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperrors.NewNotFoundMessage("session does not exist")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFoundMessage("Email does not exist in system")
		}
		return "", err
	}
	return user.ID, nil
}

// Promote grants admin to the target user. Promotion is one-way and
// re-promoting an admin is rejected, not treated as a no-op.
func (s *AccountService) Promote(ctx context.Context, actorID, targetID string) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("ID of user not found")
		}
		return err
	}
	if target.IsAdmin {
		return apperrors.NewForbidden()
	}
	if err := s.users.Promote(ctx, targetID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventUserPromoted,
		ActorID: actorID,
		Payload: events.UserPromotedPayload{UserID: targetID},
	})
	return nil
}

// DeleteUser removes the target account and, atomically with it, every
// issue the account owns. The target's sessions are cleaned up
// opportunistically afterwards; a session that survives still fails
// closed at the gate.
func (s *AccountService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	exists, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFoundMessage("ID of user not found")
	}

	owned, err := s.issues.ListByOwner(ctx, targetID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("ID of user not found")
		}
		return err
	}
	_ = s.sessions.DeleteByUser(ctx, targetID)

	s.publish(ctx, events.Event{
		Type:    events.EventUserDeleted,
		ActorID: actorID,
		Payload: events.UserDeletedPayload{UserID: targetID, IssueCount: len(owned)},
	})
	return nil
}

// EnsureAdmin seeds the bootstrap administrator when configured and
// not yet present.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil || exists {
		return err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{Email: email, PasswordHash: hash, IsAdmin: true}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return err
	}
	return nil
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validPassword enforces 8-16 characters with at least one digit, one
// lowercase, one uppercase and one non-word symbol, and no spaces.
func validPassword(password string) bool {
	runes := []rune(password)
	if len(runes) < 8 || len(runes) > 16 {
		return false
	}
	var digit, lower, upper, symbol bool
	for _, r := range runes {
		switch {
		case r == ' ':
			return false
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r == '_':
			// word character, does not count as a symbol
		default:
			symbol = true
		}
	}
	return digit && lower && upper && symbol
}
