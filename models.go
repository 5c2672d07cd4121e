package auth

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus mirrors the billing state the backend reports for a company
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// User is the client-side view of an account. It is fetched from the
// backend after session restoration or login and republished to guards.
type User struct {
	ID             uuid.UUID  `json:"id,omitempty"`
	Email          string     `json:"email,omitempty"`
	Username       string     `json:"username,omitempty"`
	FirstName      string     `json:"first_name,omitempty"`
	LastName       string     `json:"last_name,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Roles          []Role     `json:"roles,omitempty"`
	Company        *Company   `json:"company,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// HasRole checks if the user carries a specific role
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	return ContainsRole(u.Roles, role)
}

// IsAdmin reports whether the user carries the platform super-role
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// EffectivePlan resolves the company plan guards should act on. Founding
// accounts are always treated as the top tier regardless of the stored plan.
func (u *User) EffectivePlan() (Plan, bool) {
	if u == nil || u.Company == nil {
		return "", false
	}
	if u.Company.IsFoundingAccount {
		return PlanEnterprise, true
	}
	return u.Company.Plan, true
}

// Company describes a user's affiliation with a company account
type Company struct {
	ID                 uuid.UUID          `json:"id,omitempty"`
	Name               string             `json:"name,omitempty"`
	Plan               Plan               `json:"plan_type,omitempty"`
	IsFoundingAccount  bool               `json:"is_founding_account,omitempty"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status,omitempty"`
}
