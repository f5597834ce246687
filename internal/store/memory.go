package store

import (
	"context"
	"sync"
)

// MemoryStore is the in-process history backend. maxChars caps each
// transcript, keeping its tail; 0 means unbounded.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]string
	maxChars int
}

func NewMemoryStore(maxChars int) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]string),
		maxChars: maxChars,
	}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sessionID], nil
}

func (m *MemoryStore) Append(_ context.Context, sessionID, userText, reply string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := appendTurn(m.sessions[sessionID], userText, reply)
	if m.maxChars > 0 && len(h) > m.maxChars {
		h = h[len(h)-m.maxChars:]
	}
	m.sessions[sessionID] = h
	return nil
}
