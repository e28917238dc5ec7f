package client

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenReader exposes read access to the persisted bearer token. The
// transport reads it at call time, once per outbound request.
type TokenReader interface {
	Get(ctx context.Context) (string, error)
}

// TokenStore persists the bearer token across process restarts. There is a
// single slot; Set replaces whatever token was stored before.
type TokenStore interface {
	TokenReader
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AuthAPI is the remote authentication contract the session manager drives.
type AuthAPI interface {
	Login(ctx context.Context, payload LoginPayload) (*AuthResponse, error)
	Register(ctx context.Context, payload RegisterPayload) (*AuthResponse, error)
	Profile(ctx context.Context) (*User, error)
	Logout(ctx context.Context) error
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetTimeout() time.Duration
	GetTokenDBPath() string
	GetPhoneRegion() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CLIENT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] CLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
