package auth

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// State is the lifecycle state of the session manager
type State string

const (
	// StateUninitialized is the state before Restore has been invoked
	StateUninitialized State = "uninitialized"
	// StateRestoring is the state while the persisted session is re-validated
	StateRestoring State = "restoring"
	// StateAuthenticated holds a live session and its user
	StateAuthenticated State = "authenticated"
	// StateUnauthenticated holds no session
	StateUnauthenticated State = "unauthenticated"
)

// Listener observes state republishes. Listeners run best-effort on the
// calling goroutine and must not block.
type Listener func(state State, user *User)

// SessionManager is the process-wide auth state container: constructed once
// at app root, torn down never. It owns the in-memory session snapshot and
// drives every transition through the injected repositories and store.
type SessionManager struct {
	mu          sync.RWMutex
	auth        AuthRepository
	users       UserRepository
	store       *SessionStore
	logger      Logger
	now         func() time.Time
	listeners   []Listener
	transitions map[State]map[State]struct{}

	state    State
	session  *Session
	user     *User
	loading  bool
	restored bool
}

// SessionManagerOption customizes manager construction
type SessionManagerOption func(*SessionManager)

// WithLogger overrides the manager logger
func WithLogger(logger Logger) SessionManagerOption {
	return func(m *SessionManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock injects a custom clock (useful for tests)
func WithClock(clock func() time.Time) SessionManagerOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithListener registers a state listener
func WithListener(l Listener) SessionManagerOption {
	return func(m *SessionManager) {
		if l != nil {
			m.listeners = append(m.listeners, l)
		}
	}
}

// NewSessionManager returns a manager over the injected repositories and
// store. The manager starts uninitialized; call Restore once at mount.
func NewSessionManager(authRepo AuthRepository, userRepo UserRepository, store *SessionStore, opts ...SessionManagerOption) *SessionManager {
	if store == nil {
		store = NewSessionStore(nil)
	}

	m := &SessionManager{
		auth:   authRepo,
		users:  userRepo,
		store:  store,
		logger: defLogger{},
		now:    time.Now,
		state:  StateUninitialized,
		transitions: map[State]map[State]struct{}{
			StateUninitialized: {
				StateRestoring: {},
			},
			StateRestoring: {
				StateAuthenticated:   {},
				StateUnauthenticated: {},
			},
			StateAuthenticated: {
				StateAuthenticated:   {},
				StateUnauthenticated: {},
			},
			StateUnauthenticated: {
				StateAuthenticated:   {},
				StateUnauthenticated: {},
			},
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Restore re-validates the persisted session. It is invoked once at mount
// and is idempotent: later calls return the settled state without touching
// storage. The loading flag is cleared exactly once per restoration
// attempt, success or failure; user-fetch failures end in
// StateUnauthenticated, never in an error visible to the app shell.
func (m *SessionManager) Restore(ctx context.Context) State {
	m.mu.Lock()
	if m.restored || m.state == StateRestoring {
		state := m.state
		m.mu.Unlock()
		return state
	}
	m.state = StateRestoring
	m.loading = true
	m.mu.Unlock()
	m.publish()

	session, ok := m.store.Current()

	if !ok || !session.Authenticated(m.now()) || session.UserID == "" {
		if ok && session.Expired(m.now()) {
			m.logger.Debug("restore found expired session", "user_id", session.UserID)
		}
		return m.settleRestore(StateUnauthenticated, nil, nil)
	}

	user, err := m.users.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		if err != nil {
			m.logger.Warn("restore user fetch failed: %v", err)
		}
		return m.settleRestore(StateUnauthenticated, nil, nil)
	}

	return m.settleRestore(StateAuthenticated, &session, user)
}

func (m *SessionManager) settleRestore(state State, session *Session, user *User) State {
	m.mu.Lock()
	m.transitionLocked(state)
	m.session = session
	m.user = user
	m.loading = false
	m.restored = true
	m.mu.Unlock()
	m.publish()
	return state
}

// Login exchanges credentials for a session, persists the token, fetches
// the owning user, and transitions to StateAuthenticated. It requires a
// settled Restore: calls before that return ErrManagerNotRestored.
// Credential rejections are surfaced to the caller; the state is left
// untouched on failure. Concurrent logins are not deduplicated: the last
// to resolve wins the published state.
func (m *SessionManager) Login(ctx context.Context, credentials Credentials) (Session, *User, error) {
	m.mu.RLock()
	settled := m.restored
	m.mu.RUnlock()
	if !settled {
		return Session{}, nil, ErrManagerNotRestored
	}

	if err := credentials.Validate(); err != nil {
		return Session{}, nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithTextCode(textCodeValidationFailed).
			WithCode(goerrors.CodeBadRequest)
	}

	remote, err := m.auth.Login(ctx, credentials)
	if err != nil {
		m.logger.Error("login rejected", "identifier", credentials.Identifier, "error", err)
		return Session{}, nil, err
	}

	session := m.store.SaveToken(remote.Token)

	var user *User
	if session.UserID != "" {
		if user, err = m.users.GetByID(ctx, session.UserID); err != nil {
			m.logger.Warn("login user fetch failed: %v", err)
			user = nil
		}
	}

	m.mu.Lock()
	m.transitionLocked(StateAuthenticated)
	m.session = &session
	m.user = user
	m.mu.Unlock()
	m.publish()

	return session, user, nil
}

// Logout clears the session. The remote call is best-effort: failures are
// logged and the local session is cleared regardless, so logout always
// succeeds locally.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.auth.Logout(ctx); err != nil {
		m.logger.Warn("remote logout failed, clearing local session anyway: %v", err)
	}

	m.store.Clear()

	m.mu.Lock()
	m.transitionLocked(StateUnauthenticated)
	m.session = nil
	m.user = nil
	m.mu.Unlock()
	m.publish()
}

// Register delegates account creation to the backend. It never logs the
// user in implicitly; validation and conflict errors surface as reported.
func (m *SessionManager) Register(ctx context.Context, registration Registration) error {
	if err := registration.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithTextCode(textCodeValidationFailed).
			WithCode(goerrors.CodeBadRequest)
	}

	registration, err := registration.Normalize(DefaultPhoneRegion)
	if err != nil {
		return err
	}

	return m.auth.Register(ctx, registration)
}

// RequestPasswordReset delegates to the backend, surfacing its errors as-is
func (m *SessionManager) RequestPasswordReset(ctx context.Context, email string) error {
	if err := (PasswordResetRequest{Email: email}).Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid reset payload").
			WithTextCode(textCodeValidationFailed).
			WithCode(goerrors.CodeBadRequest)
	}
	return m.auth.RequestPasswordReset(ctx, email)
}

// ChangePassword delegates to the backend, surfacing its errors as-is
func (m *SessionManager) ChangePassword(ctx context.Context, change PasswordChange) error {
	if err := change.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password change payload").
			WithTextCode(textCodeValidationFailed).
			WithCode(goerrors.CodeBadRequest)
	}
	return m.auth.ChangePassword(ctx, change)
}

// CurrentSession returns the latest in-memory session snapshot without
// touching storage or the network.
func (m *SessionManager) CurrentSession() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// CurrentUser returns the user behind the current session, nil when
// unauthenticated.
func (m *SessionManager) CurrentUser() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Loading reports whether the initial restoration cycle is still in flight.
// Guards must check this before trusting any role or plan decision.
func (m *SessionManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// State returns the current lifecycle state
func (m *SessionManager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// GuardState captures the published snapshot guards decide on
func (m *SessionManager) GuardState(path string) GuardState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return GuardState{
		Loading: m.loading,
		User:    m.user,
		Path:    path,
	}
}

func (m *SessionManager) transitionLocked(target State) {
	if allowed, ok := m.transitions[m.state]; ok {
		if _, exists := allowed[target]; exists {
			m.state = target
			return
		}
	}
	m.logger.Error("invalid session state transition", "from", m.state, "to", target)
	m.state = target
}

func (m *SessionManager) publish() {
	m.mu.RLock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	state := m.state
	user := m.user
	m.mu.RUnlock()

	for _, l := range listeners {
		l(state, user)
	}
}
