package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/session"
)

type stubSessions struct {
	tokens map[string]string
}

func (s *stubSessions) Create(_ context.Context, userID string) (*domain.Session, error) {
	id := uuid.NewString()
	s.tokens[id] = userID
	return &domain.Session{ID: id, UserID: userID, ExpiresAt: time.Now().Add(30 * time.Minute)}, nil
}

func (s *stubSessions) Resolve(_ context.Context, sessionID string) (string, error) {
	userID, ok := s.tokens[sessionID]
	if !ok {
		return "", session.ErrNotFound
	}
	return userID, nil
}

func (s *stubSessions) Exists(_ context.Context, sessionID string) (bool, error) {
	_, ok := s.tokens[sessionID]
	return ok, nil
}

func (s *stubSessions) Delete(_ context.Context, sessionID string) error {
	if _, ok := s.tokens[sessionID]; !ok {
		return session.ErrNotFound
	}
	delete(s.tokens, sessionID)
	return nil
}

func (s *stubSessions) DeleteByUser(_ context.Context, userID string) error {
	for id, owner := range s.tokens {
		if owner == userID {
			delete(s.tokens, id)
		}
	}
	return nil
}

type stubUsers struct {
	users map[string]*domain.User
}

func (r *stubUsers) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	r.users[user.ID] = user
	return nil
}

func (r *stubUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUsers) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *stubUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *stubUsers) List(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *stubUsers) Promote(_ context.Context, id string) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsAdmin = true
	return nil
}

func (r *stubUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = hash
	return nil
}

func (r *stubUsers) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func newGateFixture() (*Gate, *stubSessions, *stubUsers) {
	sessions := &stubSessions{tokens: map[string]string{}}
	users := &stubUsers{users: map[string]*domain.User{}}
	return NewGate(sessions, users), sessions, users
}

func TestAuthenticateMissingToken(t *testing.T) {
	gate, _, _ := newGateFixture()
	if _, err := gate.Authenticate(context.Background(), ""); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := gate.Authenticate(context.Background(), "no-such-token"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for unknown token, got %v", err)
	}
}

func TestAuthorizeRoleLadder(t *testing.T) {
	gate, sessions, users := newGateFixture()
	ctx := context.Background()

	user := &domain.User{Email: "a@test.com"}
	_ = users.Create(ctx, user)
	sess, _ := sessions.Create(ctx, user.ID)

	if _, err := gate.Authorize(ctx, sess.ID, domain.RoleUser); err != nil {
		t.Fatalf("user-level authorize failed: %v", err)
	}
	if _, err := gate.Authorize(ctx, sess.ID, domain.RoleAdmin); !errors.Is(err, ErrRoleDenied) {
		t.Fatalf("expected ErrRoleDenied before promotion, got %v", err)
	}

	// Promotion takes effect on the very next check; the gate re-reads
	// the user store on each decision.
	_ = users.Promote(ctx, user.ID)
	principal, err := gate.Authorize(ctx, sess.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin authorize after promotion failed: %v", err)
	}
	if principal.Role() != domain.RoleAdmin {
		t.Fatalf("expected RoleAdmin, got %v", principal.Role())
	}
}

func TestAuthenticateDanglingSession(t *testing.T) {
	gate, sessions, users := newGateFixture()
	ctx := context.Background()

	user := &domain.User{Email: "a@test.com"}
	_ = users.Create(ctx, user)
	sess, _ := sessions.Create(ctx, user.ID)

	// Deleting the user leaves the session as a dangling weak
	// reference; it must fail closed.
	_ = users.Delete(ctx, user.ID)
	if _, err := gate.Authenticate(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for dangling session, got %v", err)
	}
}

func TestAuthenticateAfterLogout(t *testing.T) {
	gate, sessions, users := newGateFixture()
	ctx := context.Background()

	user := &domain.User{Email: "a@test.com"}
	_ = users.Create(ctx, user)
	sess, _ := sessions.Create(ctx, user.ID)

	if _, err := gate.Authenticate(ctx, sess.ID); err != nil {
		t.Fatalf("authenticate before logout: %v", err)
	}
	_ = sessions.Delete(ctx, sess.ID)
	if _, err := gate.Authenticate(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
}
