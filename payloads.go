package auth

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse national phone numbers
const DefaultPhoneRegion = "ES"

// Credentials is the login payload
type Credentials struct {
	Identifier      string `json:"identifier"`
	Password        string `json:"password"`
	ExtendedSession bool   `json:"extended_session,omitempty"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(
			&c.Identifier,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&c.Password,
			validation.Required,
		),
	)
}

// Registration is the account creation payload. Registration never logs
// the user in; a successful call still requires an explicit login.
type Registration struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(10, 100)),
		validation.Field(
			&r.PasswordConfirm,
			validation.Required,
			validation.Length(10, 100),
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

// Normalize fills derived fields: the username falls back to the email
// local part and the phone is converted to E.164. A phone that cannot be
// parsed for the region is rejected as a validation error.
func (r Registration) Normalize(region string) (Registration, error) {
	if region == "" {
		region = DefaultPhoneRegion
	}

	if r.Username == "" {
		r.Username = usernameFromEmail(r.Email)
	}

	if r.Phone != "" {
		normalized, err := NormalizePhone(r.Phone, region)
		if err != nil {
			return r, ErrValidationFailed
		}
		r.Phone = normalized
	}

	return r, nil
}

// PasswordResetRequest asks the backend to start a reset flow
type PasswordResetRequest struct {
	Email string `json:"email"`
}

func (p PasswordResetRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

// PasswordChange updates the password of the authenticated user
type PasswordChange struct {
	CurrentPassword    string `json:"current_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

func (p PasswordChange) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CurrentPassword, validation.Required),
		validation.Field(&p.NewPassword, validation.Required, validation.Length(10, 100)),
		validation.Field(
			&p.NewPasswordConfirm,
			validation.Required,
			validation.By(ValidateStringEquals(p.NewPassword)),
		),
	)
}

// ValidateStringEquals builds a rule asserting the value matches str
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return errors.New("value must be a string")
		}
		if s != str {
			return errors.New("values do not match")
		}
		return nil
	}
}

// NormalizePhone parses a phone number for the region and formats it E.164
func NormalizePhone(phone, region string) (string, error) {
	num, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number for region %s", region)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
