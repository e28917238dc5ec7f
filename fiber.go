package client

import (
	"github.com/gofiber/fiber/v2"
)

// SessionContextKey is where RequireSession stores the snapshot for
// downstream handlers.
const SessionContextKey = "client_session"

// GuardConfig wires the route guard into a fiber application serving the
// navigable pages.
type GuardConfig struct {
	Manager *SessionManager
	Guard   *Guard
	// LoadingHandler renders the bootstrap placeholder. When nil the
	// middleware answers 503 with a Retry-After hint.
	LoadingHandler fiber.Handler
	// ContextKey overrides SessionContextKey.
	ContextKey string
}

// RequireSession evaluates the route guard for every request and enforces
// its decision: render (continue), redirect, or hold while the session
// bootstrap is still resolving.
func RequireSession(cfg GuardConfig) fiber.Handler {
	key := cfg.ContextKey
	if key == "" {
		key = SessionContextKey
	}

	return func(c *fiber.Ctx) error {
		snapshot := cfg.Manager.Snapshot()
		result := cfg.Guard.Evaluate(snapshot, c.Path())

		switch result.Decision {
		case DecisionShowLoading:
			if cfg.LoadingHandler != nil {
				return cfg.LoadingHandler(c)
			}
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.SendStatus(fiber.StatusServiceUnavailable)
		case DecisionRedirectLogin, DecisionRedirectDashboard:
			return c.Redirect(result.Target, fiber.StatusFound)
		default:
			c.Locals(key, snapshot)
			return c.Next()
		}
	}
}

// SnapshotFromCtx retrieves the session snapshot stored by RequireSession.
func SnapshotFromCtx(c *fiber.Ctx, key ...string) (SessionSnapshot, bool) {
	contextKey := SessionContextKey
	if len(key) > 0 && key[0] != "" {
		contextKey = key[0]
	}

	snapshot, ok := c.Locals(contextKey).(SessionSnapshot)
	return snapshot, ok
}
