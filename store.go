package auth

import "sync"

// TokenStore persists the raw bearer token under a single fixed key.
// Implementations must make Read a cheap synchronous operation; the token
// is the only durable artifact of this package.
type TokenStore interface {
	Write(token string) error
	// Read returns the stored token, or ok=false when nothing is stored.
	Read() (token string, ok bool, err error)
	Delete() error
}

// SessionStore reconstructs sessions from the persisted token. Storage
// failures never escape: a failed write is skipped and logged, a failed
// read is treated as "no token stored".
type SessionStore struct {
	backend TokenStore
	logger  Logger
}

// SessionStoreOption customizes a SessionStore
type SessionStoreOption func(*SessionStore)

// WithStoreLogger overrides the logger used for absorbed storage failures
func WithStoreLogger(logger Logger) SessionStoreOption {
	return func(s *SessionStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSessionStore returns a store over the given backend. A nil backend
// falls back to an in-memory store so behavior stays consistent in
// contexts without durable storage.
func NewSessionStore(backend TokenStore, opts ...SessionStoreOption) *SessionStore {
	if backend == nil {
		backend = NewMemoryTokenStore()
	}

	s := &SessionStore{
		backend: backend,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// SaveToken persists the raw token and returns the decoded session. The
// session is returned even when the write fails so callers observe the
// same behavior with or without durable storage.
func (s *SessionStore) SaveToken(token string) Session {
	if err := s.backend.Write(token); err != nil {
		s.logger.Warn("session store write skipped: %v", err)
	}
	return NewSession(token)
}

// Current reads the stored token and rebuilds its session. ok is false
// when no token is stored; a stored-but-undecodable token still yields a
// fallback session, never ok=false.
func (s *SessionStore) Current() (Session, bool) {
	token, ok, err := s.backend.Read()
	if err != nil {
		s.logger.Warn("session store read failed, treating as no session: %v", err)
		return Session{}, false
	}
	if !ok {
		return Session{}, false
	}
	return NewSession(token), true
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *SessionStore) Clear() {
	if err := s.backend.Delete(); err != nil {
		s.logger.Warn("session store clear failed: %v", err)
	}
}

// MemoryTokenStore is a process-local TokenStore used as the fallback
// backend and in tests.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	has   bool
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Write(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.has = true
	return nil
}

func (m *MemoryTokenStore) Read() (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.has, nil
}

func (m *MemoryTokenStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.has = false
	return nil
}
