package client

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse national phone numbers
// that are submitted without a country prefix.
var DefaultPhoneRegion = "KZ"

// User is the profile record the API serves from /users/me.
type User struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"firstName,omitempty"`
	LastName    string     `json:"lastName,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Role        Role       `json:"role"`
	Coins       int        `json:"coins"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// FullName joins the name parts, skipping whichever is missing.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// LoginPayload carries the credentials for POST /Auth/login.
type LoginPayload struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(
			&p.PhoneNumber,
			validation.Required,
			validation.Length(10, 12),
			is.Digit,
		),
		validation.Field(
			&p.Password,
			validation.Required,
			validation.Length(6, 100),
		),
	)
}

// RegisterPayload carries the new-account fields for POST /Auth/register.
type RegisterPayload struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(
			&p.PhoneNumber,
			validation.Required,
			validation.Length(10, 12),
			is.Digit,
		),
		validation.Field(&p.Password, validation.Required, validation.Length(6, 100)),
	)
}

// ValidatePhoneNumber checks that the value parses as a dialable number for
// the given region. Empty values pass; pair with validation.Required.
func ValidatePhoneNumber(region string) validation.RuleFunc {
	return func(value any) error {
		raw, _ := value.(string)
		if raw == "" {
			return nil
		}

		parsed, err := phonenumbers.Parse(raw, region)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryValidation, "must be a valid phone number")
		}
		if !phonenumbers.IsValidNumber(parsed) {
			return goerrors.New("must be a valid phone number", goerrors.CategoryValidation).
				WithCode(goerrors.CodeBadRequest)
		}
		return nil
	}
}

// AuthResponse is the login/register response body. Depending on the backend
// version the token arrives as either "token" or "accessToken"; the embedded
// user is provisional and superseded by the profile fetch.
type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// BearerToken resolves the credential with the same precedence the original
// web client used: accessToken wins over token.
func (r *AuthResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}
