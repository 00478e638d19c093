// Package session stores per-session conversation context.
package session

import (
	"context"
	"sync"

	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/pkg/metrics"
)

// Store keeps conversation context keyed by session id. Context is
// ephemeral, best-effort state: implementations may evict at will and make
// no ordering promise for concurrent writers of the same session.
type Store interface {
	Get(ctx context.Context, sessionID string) (*model.ConversationContext, bool, error)
	Put(ctx context.Context, sessionID string, conv *model.ConversationContext) error
}

// MemoryStore is the default in-process store. It is bounded only by
// process lifetime; deployments that need eviction use the Redis store.
type MemoryStore struct {
	mu       sync.RWMutex
	contexts map[string]*model.ConversationContext
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contexts: make(map[string]*model.ConversationContext),
	}
}

// Get retrieves the context for a session.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*model.ConversationContext, bool, error) {
	s.mu.RLock()
	conv, ok := s.contexts[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	clone := *conv
	return &clone, true, nil
}

// Put stores the context for a session, replacing any previous value.
func (s *MemoryStore) Put(ctx context.Context, sessionID string, conv *model.ConversationContext) error {
	s.mu.Lock()
	s.contexts[sessionID] = conv
	size := len(s.contexts)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(size))
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}
