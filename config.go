package auth

// Config holds client auth options
type Config interface {
	GetAPIBaseURL() string
	GetStorageKey() string
	GetPublicRoute() string
	GetLoginRoute() string
	GetDashboardPrefix() string
	GetRejectedRouteKey() string
	GetRejectedRouteDefault() string
}

// ConfigValues is a literal Config implementation with sensible defaults
type ConfigValues struct {
	APIBaseURL           string
	StorageKey           string
	PublicRoute          string
	LoginRoute           string
	DashboardPrefix      string
	RejectedRouteKey     string
	RejectedRouteDefault string
}

var _ Config = (*ConfigValues)(nil)

// WithDefaults fills zero-valued fields with the stock routes and keys
func (c ConfigValues) WithDefaults() ConfigValues {
	if c.StorageKey == "" {
		c.StorageKey = "appquilar_token"
	}
	if c.PublicRoute == "" {
		c.PublicRoute = "/"
	}
	if c.LoginRoute == "" {
		c.LoginRoute = "/login"
	}
	if c.DashboardPrefix == "" {
		c.DashboardPrefix = "/dashboard"
	}
	if c.RejectedRouteKey == "" {
		c.RejectedRouteKey = "rejected_route"
	}
	if c.RejectedRouteDefault == "" {
		c.RejectedRouteDefault = c.PublicRoute
	}
	return c
}

func (c ConfigValues) GetAPIBaseURL() string           { return c.APIBaseURL }
func (c ConfigValues) GetStorageKey() string           { return c.StorageKey }
func (c ConfigValues) GetPublicRoute() string          { return c.PublicRoute }
func (c ConfigValues) GetLoginRoute() string           { return c.LoginRoute }
func (c ConfigValues) GetDashboardPrefix() string      { return c.DashboardPrefix }
func (c ConfigValues) GetRejectedRouteKey() string     { return c.RejectedRouteKey }
func (c ConfigValues) GetRejectedRouteDefault() string { return c.RejectedRouteDefault }
