// Package client is the Go client for the city cleanliness monitoring API:
// residents report issues, join clean-up events, and earn coins, while
// operators triage reports and manage districts and events.
//
// Session lifecycle:
//   - SessionManager owns the session (token, user, initializing flag) and is
//     its only mutation surface. Bootstrap hydrates the persisted token and
//     resolves it against the profile endpoint; Login, Register, Logout, and
//     RefreshProfile drive the remaining transitions. Logout never fails:
//     the backend call is best effort and local state is always cleared.
//   - TokenStore persists the bearer token across restarts. BunTokenStore
//     keeps it in a local SQLite database; expiry is only ever discovered
//     through a rejected authenticated call.
//   - Client injects the stored token per request through its transport,
//     skipping the login and register endpoints. Token reads happen at call
//     time, so a token change is visible to the very next request.
//
// Route gating:
//   - Guard is a pure decision function over the session snapshot and a
//     route table: render, show loading during bootstrap, redirect to login,
//     or redirect to the dashboard when the role gate rejects. Roles are
//     normalized at the ingestion boundary, so an absent, null, or empty
//     role is always Resident.
//   - RequireSession adapts the guard as a fiber middleware for
//     server-rendered consumers.
//
// Session sinks:
//   - SessionSink observes session transitions (bootstrap, login, logout,
//     clears) best effort; sink errors are logged and never block the
//     transition, so UIs and telemetry can subscribe safely.
package client
