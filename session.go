package client

import (
	"context"
	"time"
)

// SessionState identifies where the session is in its lifecycle.
type SessionState string

const (
	StateUninitialized SessionState = "uninitialized"
	StateInitializing  SessionState = "initializing"
	StateAuthenticated SessionState = "authenticated"
	StateAnonymous     SessionState = "anonymous"
)

// SessionSnapshot is a value copy of the current session, safe to hand to
// consumers. Initializing is true only while the startup bootstrap probe is
// resolving the persisted token.
type SessionSnapshot struct {
	State        SessionState
	Token        string
	User         *User
	Initializing bool
}

// IsAuthenticated mirrors the original client: a session counts as
// authenticated as soon as it holds a token.
func (s SessionSnapshot) IsAuthenticated() bool {
	return s.Token != ""
}

// Role returns the normalized role for gating decisions. A missing user or
// missing role means Resident.
func (s SessionSnapshot) Role() Role {
	if s.User == nil {
		return RoleResident
	}
	return NormalizeRole(string(s.User.Role))
}

// SessionEventType enumerates session transitions observers can subscribe to.
type SessionEventType string

const (
	SessionEventBootstrap      SessionEventType = "session.bootstrap"
	SessionEventLogin          SessionEventType = "session.login"
	SessionEventLoginFailure   SessionEventType = "session.login.failure"
	SessionEventRegister       SessionEventType = "session.register"
	SessionEventLogout         SessionEventType = "session.logout"
	SessionEventCleared        SessionEventType = "session.cleared"
	SessionEventProfileRefresh SessionEventType = "session.profile.refresh"
)

// SessionEvent captures one session transition for telemetry or UI updates.
type SessionEvent struct {
	Type       SessionEventType
	State      SessionState
	UserID     int64
	Metadata   map[string]any
	OccurredAt time.Time
}

// SessionSink consumes session events. Sinks run best effort; errors are
// logged and never block the transition that produced them.
type SessionSink interface {
	Record(ctx context.Context, event SessionEvent) error
}

// SessionSinkFunc adapts a function to the SessionSink interface.
type SessionSinkFunc func(ctx context.Context, event SessionEvent) error

// Record implements SessionSink.
func (f SessionSinkFunc) Record(ctx context.Context, event SessionEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopSessionSink struct{}

func (noopSessionSink) Record(context.Context, SessionEvent) error {
	return nil
}

func normalizeSessionSink(s SessionSink) SessionSink {
	if s == nil {
		return noopSessionSink{}
	}
	return s
}
