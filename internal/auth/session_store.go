package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodforward/internal/cache"
	"foodforward/internal/model"
)

const sessionKeyPrefix = "session:"

// Session is the server-side record backing a refresh token.
type Session struct {
	UserID uint       `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
}

// SessionStoreInterface defines the interface for session storage operations.
type SessionStoreInterface interface {
	Store(ctx context.Context, tokenID string, session Session, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (*Session, error)
	Delete(ctx context.Context, tokenID string) error
}

// SessionStore keeps refresh-token sessions in Redis.
type SessionStore struct {
	cache *cache.Client
}

var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Store persists a session under the refresh token ID with TTL.
func (s *SessionStore) Store(ctx context.Context, tokenID string, session Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+tokenID, payload, ttl)
}

// Get retrieves a session by refresh token ID.
func (s *SessionStore) Get(ctx context.Context, tokenID string) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+tokenID)
	if err != nil || data == nil {
		return nil, fmt.Errorf("session not found")
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session, invalidating its refresh token.
func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+tokenID)
}
