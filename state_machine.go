package client

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// SessionManager owns the session: token, user, and lifecycle state. It is
// the only component allowed to mutate them, and every transition funnels
// through its action methods.
//
// States: Uninitialized -> Initializing -> {Authenticated, Anonymous};
// Authenticated -> Anonymous on logout or profile-fetch failure.
//
// Concurrency: one action runs at a time. Login, Register, RefreshProfile,
// and Bootstrap reject with ErrActionInProgress while another action holds
// the slot; Logout queues instead, since it must never fail.
type SessionManager struct {
	api    AuthAPI
	tokens TokenStore
	logger Logger
	sink   SessionSink
	now    func() time.Time

	action sync.Mutex

	mu    sync.Mutex
	state SessionState
	token string
	user  *User
}

// SessionManagerOption customizes SessionManager construction.
type SessionManagerOption func(*SessionManager)

// WithSessionLogger overrides the logger used for sink and logout failures.
func WithSessionLogger(logger Logger) SessionManagerOption {
	return func(m *SessionManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSessionClock injects a custom clock (useful for tests).
func WithSessionClock(clock func() time.Time) SessionManagerOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithSessionSink sets the SessionSink notified after every transition.
func WithSessionSink(sink SessionSink) SessionManagerOption {
	return func(m *SessionManager) {
		m.sink = normalizeSessionSink(sink)
	}
}

func NewSessionManager(api AuthAPI, tokens TokenStore, opts ...SessionManagerOption) *SessionManager {
	m := &SessionManager{
		api:    api,
		tokens: tokens,
		logger: defLogger{},
		sink:   noopSessionSink{},
		now:    time.Now,
		state:  StateUninitialized,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Snapshot returns a value copy of the current session.
func (m *SessionManager) Snapshot() SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SessionSnapshot{
		State:        m.state,
		Token:        m.token,
		User:         copyUser(m.user),
		Initializing: m.state == StateInitializing,
	}
}

// State returns the current lifecycle state.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns a copy of the resolved user, or nil.
func (m *SessionManager) CurrentUser() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyUser(m.user)
}

// Bootstrap hydrates the session from the token store and resolves it
// against the profile endpoint. If the store is empty the session goes
// straight to Anonymous. A failed probe clears everything, including the
// persisted token, and the session ends Anonymous; the error is still
// returned so callers can report it.
func (m *SessionManager) Bootstrap(ctx context.Context) error {
	if !m.action.TryLock() {
		return ErrActionInProgress
	}
	defer m.action.Unlock()

	m.setSession(StateInitializing, "", nil)

	token, err := m.tokens.Get(ctx)
	if err != nil {
		m.logger.Error("bootstrap: token store read failed: %v", err)
		m.setSession(StateAnonymous, "", nil)
		return err
	}

	if token == "" {
		m.setSession(StateAnonymous, "", nil)
		m.record(ctx, SessionEventBootstrap, nil)
		return nil
	}

	m.setSession(StateInitializing, token, nil)

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.logger.Warn("bootstrap: profile probe failed, clearing session: %v", err)
		m.clearSession(ctx)
		m.record(ctx, SessionEventCleared, map[string]any{"reason": "bootstrap_probe_failed"})
		return err
	}

	m.setSession(StateAuthenticated, token, user)
	m.record(ctx, SessionEventBootstrap, nil)
	return nil
}

// Login exchanges credentials for a session. On success the token is
// persisted before the canonical profile fetch, so the profile request (and
// every request after it) already carries the new credential. On failure
// the session is left untouched.
func (m *SessionManager) Login(ctx context.Context, payload LoginPayload) (*User, error) {
	if !m.action.TryLock() {
		return nil, ErrActionInProgress
	}
	defer m.action.Unlock()

	return m.authenticate(ctx, SessionEventLogin, func(ctx context.Context) (*AuthResponse, error) {
		return m.api.Login(ctx, payload)
	})
}

// Register has the same contract as Login, creating the account first.
func (m *SessionManager) Register(ctx context.Context, payload RegisterPayload) (*User, error) {
	if !m.action.TryLock() {
		return nil, ErrActionInProgress
	}
	defer m.action.Unlock()

	return m.authenticate(ctx, SessionEventRegister, func(ctx context.Context) (*AuthResponse, error) {
		return m.api.Register(ctx, payload)
	})
}

func (m *SessionManager) authenticate(ctx context.Context, event SessionEventType, call func(context.Context) (*AuthResponse, error)) (*User, error) {
	res, err := call(ctx)
	if err != nil {
		m.record(ctx, SessionEventLoginFailure, map[string]any{"error": err.Error()})
		return nil, err
	}

	token := res.BearerToken()
	if token == "" {
		return nil, goerrors.New("auth response carried no token", goerrors.CategoryInternal)
	}

	if err := m.tokens.Set(ctx, token); err != nil {
		return nil, err
	}

	// the embedded user is provisional until the profile fetch resolves
	m.setSession(StateAuthenticated, token, res.User)

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.logger.Warn("auth: canonical profile fetch failed, clearing session: %v", err)
		m.clearSession(ctx)
		m.record(ctx, SessionEventCleared, map[string]any{"reason": "profile_fetch_failed"})
		return nil, err
	}

	m.setSession(StateAuthenticated, token, user)
	m.record(ctx, event, nil)
	return copyUser(user), nil
}

// Logout tells the backend to drop the token, then clears local state no
// matter what the backend said. It never fails from the caller's
// perspective; backend failures are logged only. Unlike the other actions
// it waits for any in-flight action instead of rejecting.
func (m *SessionManager) Logout(ctx context.Context) {
	m.action.Lock()
	defer m.action.Unlock()

	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn("logout: backend call failed, clearing local session anyway: %v", err)
	}

	m.clearSession(ctx)
	m.record(ctx, SessionEventLogout, nil)
}

// RefreshProfile re-resolves the user against the profile endpoint. A
// failure clears the session (an implicit logout) and returns the error.
func (m *SessionManager) RefreshProfile(ctx context.Context) (*User, error) {
	if !m.action.TryLock() {
		return nil, ErrActionInProgress
	}
	defer m.action.Unlock()

	user, err := m.api.Profile(ctx)
	if err != nil {
		m.logger.Warn("refresh: profile fetch failed, clearing session: %v", err)
		m.clearSession(ctx)
		m.record(ctx, SessionEventCleared, map[string]any{"reason": "profile_refresh_failed"})
		return nil, err
	}

	m.mu.Lock()
	m.user = copyUser(user)
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.record(ctx, SessionEventProfileRefresh, nil)
	return copyUser(user), nil
}

func (m *SessionManager) setSession(state SessionState, token string, user *User) {
	m.mu.Lock()
	m.state = state
	m.token = token
	m.user = copyUser(user)
	m.mu.Unlock()
}

// clearSession wipes the persisted token and the in-memory session. A store
// failure is logged but never stops the clear; the invariant that a missing
// token means a missing user must hold regardless.
func (m *SessionManager) clearSession(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		m.logger.Error("session: token store clear failed: %v", err)
	}
	m.setSession(StateAnonymous, "", nil)
}

func (m *SessionManager) record(ctx context.Context, eventType SessionEventType, metadata map[string]any) {
	snapshot := m.Snapshot()

	event := SessionEvent{
		Type:       eventType,
		State:      snapshot.State,
		Metadata:   metadata,
		OccurredAt: m.now(),
	}
	if snapshot.User != nil {
		event.UserID = snapshot.User.ID
	}
	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if err := m.sink.Record(ctx, event); err != nil {
		m.logger.Warn("session sink record error: %v", err)
	}
}
