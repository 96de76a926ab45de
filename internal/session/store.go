package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ErrNotFound is returned when a session token does not resolve,
// whether it never existed, was deleted, or has expired.
var ErrNotFound = errors.New("session not found")

// Store persists opaque session tokens. The store has no knowledge of
// transport; callers decide how the token travels.
type Store interface {
	Create(ctx context.Context, userID string) (*domain.Session, error)
	Resolve(ctx context.Context, sessionID string) (string, error)
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

const (
	sessionKeyPrefix = "session:"
	userIndexPrefix  = "user-sessions:"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed session store. Tokens live for
// ttl; Redis expiry is the enforcement mechanism, so resolving an
// expired token behaves exactly like resolving an unknown one.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, userID string) (*domain.Session, error) {
	id := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)

	if err := s.client.Set(ctx, sessionKeyPrefix+id, userID, s.ttl).Err(); err != nil {
		return nil, err
	}
	// Secondary index so all of a user's sessions can be removed when
	// the user is deleted. Kept alive as long as sessions are issued.
	if err := s.client.SAdd(ctx, userIndexPrefix+userID, id).Err(); err != nil {
		return nil, err
	}
	_ = s.client.Expire(ctx, userIndexPrefix+userID, s.ttl).Err()

	return &domain.Session{ID: id, UserID: userID, ExpiresAt: expiresAt}, nil
}

func (s *redisStore) Resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrNotFound
	}
	userID, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *redisStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	count, err := s.client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNotFound
	}
	userID, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	deleted, err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	_ = s.client.SRem(ctx, userIndexPrefix+userID, sessionID).Err()
	return nil
}

func (s *redisStore) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, userIndexPrefix+userID).Result()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
			return err
		}
	}
	return s.client.Del(ctx, userIndexPrefix+userID).Err()
}
