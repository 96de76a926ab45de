package auth

import (
	"context"
	"errors"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/session"
)

// ErrNoSession covers every way a token can fail to resolve: missing
// cookie, unknown token, expired token, or a token whose user no
// longer exists. Callers map it to the status their endpoint requires.
var ErrNoSession = errors.New("session invalid or missing")

// ErrRoleDenied is returned when the caller is authenticated but lacks
// the required role.
var ErrRoleDenied = errors.New("insufficient role")

// Principal is the authenticated caller.
type Principal struct {
	SessionID string
	User      *domain.User
}

// Role returns the caller's authorization role.
func (p *Principal) Role() domain.Role {
	if p == nil || p.User == nil {
		return domain.RoleUser
	}
	return p.User.Role()
}

// Gate decides whether a session token grants a required role. Every
// decision re-reads the session and user stores, so promotions,
// deletions and logouts take effect on the next request.
type Gate struct {
	sessions session.Store
	users    repository.UserRepository
}

// NewGate constructs the authorization gate.
func NewGate(sessions session.Store, users repository.UserRepository) *Gate {
	return &Gate{sessions: sessions, users: users}
}

// Authenticate resolves a session token to a principal.
func (g *Gate) Authenticate(ctx context.Context, sessionID string) (*Principal, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	userID, err := g.sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		// A session whose user has since been deleted is a dangling
		// weak reference; it fails closed.
		return nil, ErrNoSession
	}
	return &Principal{SessionID: sessionID, User: user}, nil
}

// Authorize authenticates and then requires at least the given role.
func (g *Gate) Authorize(ctx context.Context, sessionID string, required domain.Role) (*Principal, error) {
	principal, err := g.Authenticate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !principal.Role().HasAtLeast(required) {
		return nil, ErrRoleDenied
	}
	return principal, nil
}
