package httprepo

import (
	"time"

	"github.com/appquilar/go-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

type loginRequest struct {
	Identifier      string `json:"identifier"`
	Password        string `json:"password"`
	ExtendedSession bool   `json:"extended_session,omitempty"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userDTO struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Username       string      `json:"username"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	ProfilePicture string      `json:"profile_picture"`
	Roles          []string    `json:"roles"`
	Company        *companyDTO `json:"company"`
	CreatedAt      *time.Time  `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at"`
}

type companyDTO struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	PlanType           string `json:"plan_type"`
	IsFoundingAccount  bool   `json:"is_founding_account"`
	SubscriptionStatus string `json:"subscription_status"`
}

func (d userDTO) toDomain() (*auth.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "backend returned malformed user id")
	}

	user := &auth.User{
		ID:             id,
		Email:          d.Email,
		Username:       d.Username,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		ProfilePicture: d.ProfilePicture,
		Roles:          auth.FilterRoles(d.Roles),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}

	if d.Company != nil {
		company, err := d.Company.toDomain()
		if err != nil {
			return nil, err
		}
		user.Company = company
	}

	return user, nil
}

func (d companyDTO) toDomain() (*auth.Company, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "backend returned malformed company id")
	}

	plan, _ := auth.ParsePlan(d.PlanType)

	return &auth.Company{
		ID:                 id,
		Name:               d.Name,
		Plan:               plan,
		IsFoundingAccount:  d.IsFoundingAccount,
		SubscriptionStatus: auth.SubscriptionStatus(d.SubscriptionStatus),
	}, nil
}
