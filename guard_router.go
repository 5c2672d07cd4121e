package auth

import (
	"net/http"
	"time"

	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// GuardMiddleware executes guard decisions on router contexts. Allow
// continues the chain, Redirect records the attempted path and redirects,
// Fallback ends the chain with the configured fallback handler (default:
// render nothing). Guards fail closed: an ambiguous state never grants
// access.
type GuardMiddleware struct {
	manager  *SessionManager
	cfg      Config
	fallback router.HandlerFunc
	Logger   Logger
}

// GuardMiddlewareOption customizes the middleware
type GuardMiddlewareOption func(*GuardMiddleware)

// WithGuardLogger overrides the middleware logger
func WithGuardLogger(logger Logger) GuardMiddlewareOption {
	return func(g *GuardMiddleware) {
		if logger != nil {
			g.Logger = logger
		}
	}
}

// WithFallbackHandler renders a custom fallback when a guard yields one
func WithFallbackHandler(h router.HandlerFunc) GuardMiddlewareOption {
	return func(g *GuardMiddleware) {
		if h != nil {
			g.fallback = h
		}
	}
}

// NewGuardMiddleware builds the middleware over the session manager
func NewGuardMiddleware(manager *SessionManager, cfg Config, opts ...GuardMiddlewareOption) *GuardMiddleware {
	g := &GuardMiddleware{
		manager: manager,
		cfg:     cfg,
		Logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Protect wraps routes with a guard evaluation
func (g *GuardMiddleware) Protect(guard Guard) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			state := g.manager.GuardState(c.OriginalURL())
			decision := guard.Decide(state)

			switch decision.Kind {
			case DecisionAllow:
				return c.Next()
			case DecisionRedirect:
				g.Logger.Info(
					"guard redirect",
					"path", c.OriginalURL(),
					"to", decision.RedirectTo,
					"state", print.MaybePrettyJSON(map[string]any{
						"loading":       state.Loading,
						"authenticated": state.User != nil,
					}),
				)
				g.SetRedirect(c)
				statusCode := http.StatusSeeOther
				if c.Method() == string(router.GET) {
					statusCode = http.StatusFound
				}
				return c.Redirect(decision.RedirectTo, statusCode)
			default:
				if g.fallback != nil {
					return g.fallback(c)
				}
				return nil
			}
		}
	}
}

// SetRedirect records the attempted path in a short-lived cookie so the
// login flow can send the user back after authenticating
func (g *GuardMiddleware) SetRedirect(c router.Context) {
	rejectedRoute := g.cfg.GetRejectedRouteKey()

	c.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetRedirect consumes the recorded path, returning def when none was set
func (g *GuardMiddleware) GetRedirect(c router.Context, def ...string) string {
	rejectedRoute := g.cfg.GetRejectedRouteKey()
	r := c.Cookies(rejectedRoute)
	if r == "" {
		if len(def) > 0 {
			return def[0]
		}
		return g.cfg.GetRejectedRouteDefault()
	}
	g.cookieDel(c, rejectedRoute)
	return r
}

// GetRedirectOrDefault consumes the recorded path, falling back to the
// configured default route
func (g *GuardMiddleware) GetRedirectOrDefault(c router.Context) string {
	return g.GetRedirect(c, g.cfg.GetRejectedRouteDefault())
}

func (g *GuardMiddleware) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
