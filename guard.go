package auth

import "strings"

// DecisionKind is the outcome class of a guard evaluation
type DecisionKind string

const (
	// DecisionAllow lets the guarded content render
	DecisionAllow DecisionKind = "allow"
	// DecisionRedirect sends the caller somewhere else
	DecisionRedirect DecisionKind = "redirect"
	// DecisionFallback renders the caller-supplied fallback (default: nothing)
	DecisionFallback DecisionKind = "fallback"
)

// Decision is the result of a guard evaluation. Guards are pure: the
// rendering or routing layer merely executes the decision.
type Decision struct {
	Kind       DecisionKind
	RedirectTo string
}

// Allow renders the guarded content
func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

// RedirectTo sends the caller to path
func RedirectTo(path string) Decision {
	return Decision{Kind: DecisionRedirect, RedirectTo: path}
}

// Fallback renders nothing (or the caller's fallback)
func Fallback() Decision {
	return Decision{Kind: DecisionFallback}
}

// GuardState is the published auth snapshot a guard decides on. While
// Loading is true no decision is trusted: every guard yields Fallback so
// no redirect fires before session restoration completes.
type GuardState struct {
	Loading bool
	User    *User
	Path    string
}

// Guard decides whether guarded content renders, redirects, or falls back
type Guard interface {
	Decide(state GuardState) Decision
}

// AuthenticatedGuard admits any authenticated user. Unauthenticated
// callers are redirected to the login route; the adapter records the
// attempted path for the post-login redirect.
type AuthenticatedGuard struct {
	LoginRoute string
}

var _ Guard = (*AuthenticatedGuard)(nil)

// NewAuthenticatedGuard builds the guard with the default login route
func NewAuthenticatedGuard() *AuthenticatedGuard {
	return &AuthenticatedGuard{LoginRoute: "/login"}
}

func (g *AuthenticatedGuard) Decide(state GuardState) Decision {
	if state.Loading {
		return Fallback()
	}
	if state.User == nil {
		return RedirectTo(g.loginRoute())
	}
	return Allow()
}

func (g *AuthenticatedGuard) loginRoute() string {
	if g.LoginRoute == "" {
		return "/login"
	}
	return g.LoginRoute
}

// RoleGuard admits users whose role set intersects the required set. The
// platform admin role always passes regardless of the required set. On a
// mismatch the redirect target depends on where the caller was: inside the
// dashboard it lands on the dashboard root, elsewhere on the public root.
type RoleGuard struct {
	Required        []Role
	LoginRoute      string
	PublicRoute     string
	DashboardPrefix string
}

var _ Guard = (*RoleGuard)(nil)

// NewRoleGuard builds a guard for the required roles with default routes
func NewRoleGuard(required ...Role) *RoleGuard {
	return &RoleGuard{
		Required:        required,
		LoginRoute:      "/login",
		PublicRoute:     "/",
		DashboardPrefix: "/dashboard",
	}
}

func (g *RoleGuard) Decide(state GuardState) Decision {
	if state.Loading {
		return Fallback()
	}

	if state.User == nil {
		return RedirectTo(valueOr(g.LoginRoute, "/login"))
	}

	if state.User.IsAdmin() {
		return Allow()
	}

	if len(g.Required) == 0 || IntersectsRoles(state.User.Roles, g.Required) {
		return Allow()
	}

	prefix := valueOr(g.DashboardPrefix, "/dashboard")
	if strings.HasPrefix(state.Path, prefix) {
		return RedirectTo(prefix)
	}
	return RedirectTo(valueOr(g.PublicRoute, "/"))
}

// PlanGuard gates on the company subscription tier instead of roles.
// Admin bypasses. A founding account forces the effective plan to the top
// tier regardless of the stored value. An unmet requirement falls back
// rather than redirecting, so callers can render an upgrade prompt.
type PlanGuard struct {
	RequiredPlans  []Plan
	RequireCompany bool
}

var _ Guard = (*PlanGuard)(nil)

// NewPlanGuard builds a guard for the required plan tiers
func NewPlanGuard(required ...Plan) *PlanGuard {
	return &PlanGuard{RequiredPlans: required}
}

func (g *PlanGuard) Decide(state GuardState) Decision {
	if state.Loading {
		return Fallback()
	}

	if state.User == nil {
		return Fallback()
	}

	if state.User.IsAdmin() {
		return Allow()
	}

	plan, hasCompany := state.User.EffectivePlan()

	if g.RequireCompany && !hasCompany {
		return Fallback()
	}

	if len(g.RequiredPlans) == 0 {
		return Allow()
	}

	if !hasCompany {
		return Fallback()
	}

	for _, required := range g.RequiredPlans {
		if plan == required {
			return Allow()
		}
	}
	return Fallback()
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
