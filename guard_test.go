package auth_test

import (
	"testing"

	"github.com/appquilar/go-auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func userWithRoles(roles ...auth.Role) *auth.User {
	return &auth.User{ID: uuid.New(), Roles: roles}
}

func TestAuthenticatedGuard(t *testing.T) {
	guard := auth.NewAuthenticatedGuard()

	t.Run("loading always falls back, never redirects", func(t *testing.T) {
		decision := guard.Decide(auth.GuardState{Loading: true})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)

		decision = guard.Decide(auth.GuardState{Loading: true, User: userWithRoles(auth.RoleUser)})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)
	})

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		decision := guard.Decide(auth.GuardState{Path: "/dashboard/products"})

		assert.Equal(t, auth.DecisionRedirect, decision.Kind)
		assert.Equal(t, "/login", decision.RedirectTo)
	})

	t.Run("authenticated renders", func(t *testing.T) {
		decision := guard.Decide(auth.GuardState{User: userWithRoles(auth.RoleUser)})
		assert.Equal(t, auth.DecisionAllow, decision.Kind)
	})
}

func TestRoleGuard(t *testing.T) {
	t.Run("loading falls back regardless of other state", func(t *testing.T) {
		guard := auth.NewRoleGuard(auth.RoleAdmin)
		decision := guard.Decide(auth.GuardState{
			Loading: true,
			User:    userWithRoles(auth.RoleAdmin),
			Path:    "/dashboard/x",
		})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)
	})

	t.Run("admin bypasses any required set", func(t *testing.T) {
		guard := auth.NewRoleGuard(auth.RoleCompanyAdmin)
		decision := guard.Decide(auth.GuardState{User: userWithRoles(auth.RoleAdmin)})
		assert.Equal(t, auth.DecisionAllow, decision.Kind)
	})

	t.Run("intersecting roles render", func(t *testing.T) {
		guard := auth.NewRoleGuard(auth.RoleCompanyAdmin, auth.RoleCompanyUser)
		decision := guard.Decide(auth.GuardState{User: userWithRoles(auth.RoleCompanyUser)})
		assert.Equal(t, auth.DecisionAllow, decision.Kind)
	})

	t.Run("mismatch inside the dashboard redirects to the dashboard root", func(t *testing.T) {
		guard := auth.NewRoleGuard(auth.RoleAdmin)
		decision := guard.Decide(auth.GuardState{
			User: userWithRoles(auth.RoleUser),
			Path: "/dashboard/x",
		})

		assert.Equal(t, auth.DecisionRedirect, decision.Kind)
		assert.Equal(t, "/dashboard", decision.RedirectTo)
	})

	t.Run("mismatch outside the dashboard redirects to the public root", func(t *testing.T) {
		guard := auth.NewRoleGuard(auth.RoleAdmin)
		decision := guard.Decide(auth.GuardState{
			User: userWithRoles(auth.RoleUser),
			Path: "/pricing",
		})

		assert.Equal(t, auth.DecisionRedirect, decision.Kind)
		assert.Equal(t, "/", decision.RedirectTo)
	})

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		guard := auth.NewRoleGuard(auth.RoleAdmin)
		decision := guard.Decide(auth.GuardState{Path: "/dashboard/x"})

		assert.Equal(t, auth.DecisionRedirect, decision.Kind)
		assert.Equal(t, "/login", decision.RedirectTo)
	})

	t.Run("empty required set admits any authenticated user", func(t *testing.T) {
		guard := auth.NewRoleGuard()
		decision := guard.Decide(auth.GuardState{User: userWithRoles(auth.RoleUser)})
		assert.Equal(t, auth.DecisionAllow, decision.Kind)
	})
}

func TestPlanGuard(t *testing.T) {
	withCompany := func(plan auth.Plan, founding bool) *auth.User {
		user := userWithRoles(auth.RoleCompanyAdmin)
		user.Company = &auth.Company{
			ID:                uuid.New(),
			Plan:              plan,
			IsFoundingAccount: founding,
		}
		return user
	}

	t.Run("loading falls back", func(t *testing.T) {
		guard := auth.NewPlanGuard(auth.PlanEnterprise)
		decision := guard.Decide(auth.GuardState{
			Loading: true,
			User:    withCompany(auth.PlanEnterprise, false),
		})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)
	})

	t.Run("admin bypasses the plan requirement", func(t *testing.T) {
		guard := auth.NewPlanGuard(auth.PlanEnterprise)
		decision := guard.Decide(auth.GuardState{User: userWithRoles(auth.RoleAdmin)})
		assert.Equal(t, auth.DecisionAllow, decision.Kind)
	})

	t.Run("matching plan renders", func(t *testing.T) {
		guard := auth.NewPlanGuard(auth.PlanProfessional, auth.PlanEnterprise)
		decision := guard.Decide(auth.GuardState{User: withCompany(auth.PlanProfessional, false)})
		assert.Equal(t, auth.DecisionAllow, decision.Kind)
	})

	t.Run("founding account forces the top tier", func(t *testing.T) {
		guard := auth.NewPlanGuard(auth.PlanEnterprise)
		decision := guard.Decide(auth.GuardState{User: withCompany(auth.PlanStarter, true)})
		assert.Equal(t, auth.DecisionAllow, decision.Kind)
	})

	t.Run("unmet plan falls back instead of redirecting", func(t *testing.T) {
		guard := auth.NewPlanGuard(auth.PlanEnterprise)
		decision := guard.Decide(auth.GuardState{User: withCompany(auth.PlanStarter, false)})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)
	})

	t.Run("missing company context fails closed", func(t *testing.T) {
		guard := auth.NewPlanGuard(auth.PlanStarter)
		decision := guard.Decide(auth.GuardState{User: userWithRoles(auth.RoleCompanyAdmin)})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)
	})

	t.Run("required company context without a company falls back", func(t *testing.T) {
		guard := auth.NewPlanGuard()
		guard.RequireCompany = true

		decision := guard.Decide(auth.GuardState{User: userWithRoles(auth.RoleCompanyAdmin)})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)
	})

	t.Run("unauthenticated falls back", func(t *testing.T) {
		guard := auth.NewPlanGuard(auth.PlanStarter)
		decision := guard.Decide(auth.GuardState{})
		assert.Equal(t, auth.DecisionFallback, decision.Kind)
	})
}
