package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
	"github.com/custodia-labs/scenaria-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)

const (
	sessionPrefix        = "scenaria:session:"
	sessionTokenPrefix   = "scenaria:session:token:"
	sessionRefreshPrefix = "scenaria:session:refresh:"
	sessionUserPrefix    = "scenaria:session:user:"

	// sessionExpiryKey is a sorted set of session IDs scored by expiry
	// (unix seconds). Redis drops the session keys on its own; the set
	// lets the janitor prune the per-user indexes that still list them.
	sessionExpiryKey = "scenaria:session:expiry"

	userIndexTTL = 30 * 24 * time.Hour
)

// SessionStore implements driven.SessionStore using Redis.
// Session keys carry a TTL derived from ExpiresAt.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// indexEntry is what the expiry set stores per session: enough to clean
// the user index once the session key itself is gone.
func indexEntry(session *domain.Session) string {
	return session.UserID + "|" + session.ID
}

// Save stores a session and its lookup indexes. Already expired sessions
// are silently dropped.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionPrefix+session.ID, data, ttl)
		pipe.Set(ctx, sessionTokenPrefix+session.Token, session.ID, ttl)
		if session.RefreshToken != "" {
			pipe.Set(ctx, sessionRefreshPrefix+session.RefreshToken, session.ID, ttl)
		}
		pipe.SAdd(ctx, sessionUserPrefix+session.UserID, session.ID)
		pipe.Expire(ctx, sessionUserPrefix+session.UserID, userIndexTTL)
		pipe.ZAdd(ctx, sessionExpiryKey, redis.Z{
			Score:  float64(session.ExpiresAt.Unix()),
			Member: indexEntry(session),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// GetByToken retrieves a session by access token
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	return s.getByIndex(ctx, sessionTokenPrefix+token)
}

// GetByRefreshToken retrieves a session by refresh token
func (s *SessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.getByIndex(ctx, sessionRefreshPrefix+refreshToken)
}

func (s *SessionStore) getByIndex(ctx context.Context, key string) (*domain.Session, error) {
	id, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session index: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete deletes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	session, err := s.Get(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remove(ctx, session)
}

// DeleteByToken deletes a session by access token
func (s *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	session, err := s.GetByToken(ctx, token)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.remove(ctx, session)
}

// DeleteByUser deletes every session of a user. Sessions that vanish
// mid-way are skipped.
func (s *SessionStore) DeleteByUser(ctx context.Context, userID string) error {
	ids, err := s.client.SMembers(ctx, sessionUserPrefix+userID).Result()
	if err != nil {
		return fmt.Errorf("list user sessions: %w", err)
	}

	for _, id := range ids {
		_ = s.Delete(ctx, id)
	}
	return s.client.Del(ctx, sessionUserPrefix+userID).Err()
}

// ListByUser lists the live sessions of a user and drops index entries
// whose session already expired.
func (s *SessionStore) ListByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	ids, err := s.client.SMembers(ctx, sessionUserPrefix+userID).Result()
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}

	sessions := make([]*domain.Session, 0, len(ids))
	var stale []interface{}
	for _, id := range ids {
		session, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrSessionNotFound) {
			stale = append(stale, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if session.IsExpired() {
			stale = append(stale, id)
			continue
		}
		sessions = append(sessions, session)
	}

	if len(stale) > 0 {
		s.client.SRem(ctx, sessionUserPrefix+userID, stale...)
	}
	return sessions, nil
}

// DeleteExpired prunes index entries of sessions that expired before the
// cutoff and returns how many were pruned.
func (s *SessionStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	cutoff := strconv.FormatInt(before.Unix(), 10)
	entries, err := s.client.ZRangeByScore(ctx, sessionExpiryKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: cutoff,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("scan expired sessions: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, entry := range entries {
			userID, id, ok := strings.Cut(entry, "|")
			if !ok {
				continue
			}
			pipe.SRem(ctx, sessionUserPrefix+userID, id)
			pipe.Del(ctx, sessionPrefix+id)
		}
		pipe.ZRemRangeByScore(ctx, sessionExpiryKey, "-inf", cutoff)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune expired sessions: %w", err)
	}
	return len(entries), nil
}

// remove deletes a session and all of its indexes
func (s *SessionStore) remove(ctx context.Context, session *domain.Session) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionPrefix+session.ID)
		pipe.Del(ctx, sessionTokenPrefix+session.Token)
		if session.RefreshToken != "" {
			pipe.Del(ctx, sessionRefreshPrefix+session.RefreshToken)
		}
		pipe.SRem(ctx, sessionUserPrefix+session.UserID, session.ID)
		pipe.ZRem(ctx, sessionExpiryKey, indexEntry(session))
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
