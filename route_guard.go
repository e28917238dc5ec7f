package client

import "strings"

// Decision is the outcome of evaluating a navigation target against the
// current session.
type Decision string

const (
	DecisionRender            Decision = "render"
	DecisionShowLoading       Decision = "loading"
	DecisionRedirectLogin     Decision = "redirect-login"
	DecisionRedirectDashboard Decision = "redirect-dashboard"
)

// GuardResult couples a decision with the redirect target, when there is one.
type GuardResult struct {
	Decision Decision
	Target   string
}

// RouteRule describes one navigable route and its gate. A nil AllowedRoles
// means any authenticated user may render the route; Public routes skip the
// guard entirely.
type RouteRule struct {
	Path         string
	Public       bool
	AllowedRoles []Role
}

const (
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
)

// Guard decides, per navigation, whether a route may render. It is a pure
// function of the session snapshot and the route table; it holds no state
// of its own.
type Guard struct {
	rules     []RouteRule
	loginPath string
	homePath  string
}

// GuardOption customizes Guard construction.
type GuardOption func(*Guard)

// WithLoginPath overrides where unauthenticated visitors are sent.
func WithLoginPath(path string) GuardOption {
	return func(g *Guard) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// WithHomePath overrides the default authenticated landing page.
func WithHomePath(path string) GuardOption {
	return func(g *Guard) {
		if path != "" {
			g.homePath = path
		}
	}
}

// NewGuard builds a Guard over the given route table. Allow-lists are
// normalized up front, so a rule declared with the legacy sentinel set
// {Resident, null, ""} gates exactly like {Resident}.
func NewGuard(rules []RouteRule, opts ...GuardOption) *Guard {
	g := &Guard{
		rules:     make([]RouteRule, 0, len(rules)),
		loginPath: PathLogin,
		homePath:  PathDashboard,
	}

	for _, rule := range rules {
		rule.AllowedRoles = NormalizeRoles(rule.AllowedRoles)
		g.rules = append(g.rules, rule)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// DefaultRoutes reproduces the application's routing contract: public auth
// pages, authenticated pages for every role, a resident-only report form,
// and the operator console for operators and admins.
func DefaultRoutes() []RouteRule {
	return []RouteRule{
		{Path: PathLogin, Public: true},
		{Path: PathRegister, Public: true},
		{Path: PathDashboard},
		{Path: "/reports"},
		{Path: "/reports/:id"},
		{Path: "/create", AllowedRoles: []Role{RoleResident}},
		{Path: "/events"},
		{Path: "/events/:id"},
		{Path: "/profile"},
		{Path: "/notifications"},
		{Path: "/operator/dashboard", AllowedRoles: []Role{RoleOperator, RoleAdmin}},
		{Path: "/operator/events", AllowedRoles: []Role{RoleOperator, RoleAdmin}},
		{Path: "/operator/districts", AllowedRoles: []Role{RoleOperator, RoleAdmin}},
	}
}

// Evaluate decides what should happen for a navigation to path. Order
// matters: unknown paths (the root included) land on the dashboard, the
// bootstrap window blocks rendering, unauthenticated visitors go to login,
// and only then is the role gate checked.
func (g *Guard) Evaluate(snapshot SessionSnapshot, path string) GuardResult {
	rule, ok := g.match(path)
	if !ok {
		return GuardResult{Decision: DecisionRedirectDashboard, Target: g.homePath}
	}

	if rule.Public {
		return GuardResult{Decision: DecisionRender}
	}

	if snapshot.Initializing {
		return GuardResult{Decision: DecisionShowLoading}
	}

	if !snapshot.IsAuthenticated() {
		return GuardResult{Decision: DecisionRedirectLogin, Target: g.loginPath}
	}

	if len(rule.AllowedRoles) > 0 && !snapshot.Role().In(rule.AllowedRoles) {
		return GuardResult{Decision: DecisionRedirectDashboard, Target: g.homePath}
	}

	return GuardResult{Decision: DecisionRender}
}

func (g *Guard) match(path string) (RouteRule, bool) {
	segments := splitPath(path)
	for _, rule := range g.rules {
		if matchSegments(splitPath(rule.Path), segments) {
			return rule, true
		}
	}
	return RouteRule{}, false
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func matchSegments(pattern, actual []string) bool {
	if len(pattern) != len(actual) {
		return false
	}
	for i, segment := range pattern {
		if strings.HasPrefix(segment, ":") {
			continue
		}
		if segment != actual[i] {
			return false
		}
	}
	return true
}
