package client

import (
	"context"
	"encoding/json"

	goerrors "github.com/goliatone/go-errors"
)

var _ AuthAPI = (*AuthService)(nil)

// AuthService provides the four session endpoints as thin request/response
// bindings. It validates payloads before they leave the process but adds no
// session logic of its own; that belongs to the SessionManager.
type AuthService struct {
	client *Client
	region string
	logger Logger
}

func NewAuthService(c *Client) *AuthService {
	return &AuthService{
		client: c,
		region: DefaultPhoneRegion,
		logger: defLogger{},
	}
}

func (s *AuthService) WithLogger(logger Logger) *AuthService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithPhoneRegion sets the region used to validate national phone numbers.
func (s *AuthService) WithPhoneRegion(region string) *AuthService {
	if region != "" {
		s.region = region
	}
	return s
}

// Login exchanges credentials for a token. Rejections surface as
// ErrInvalidCredentials, transport failures as network errors.
func (s *AuthService) Login(ctx context.Context, payload LoginPayload) (*AuthResponse, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}
	if err := ValidatePhoneNumber(s.region)(payload.PhoneNumber); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	out := &AuthResponse{}
	if err := s.client.Post(ctx, "/Auth/login", payload, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Register creates an account. A duplicate phone number surfaces as
// ErrConflict.
func (s *AuthService) Register(ctx context.Context, payload RegisterPayload) (*AuthResponse, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}
	if err := ValidatePhoneNumber(s.region)(payload.PhoneNumber); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	out := &AuthResponse{}
	if err := s.client.Post(ctx, "/Auth/register", payload, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Profile fetches the canonical user record. The endpoint has served both a
// bare user object and a {user: ...} envelope, so both shapes are accepted.
func (s *AuthService) Profile(ctx context.Context) (*User, error) {
	raw := json.RawMessage{}
	if err := s.client.Get(ctx, "/users/me", nil, &raw); err != nil {
		return nil, err
	}

	envelope := struct {
		User *User `json:"user"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil {
		return envelope.User, nil
	}

	user := &User{}
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode profile response")
	}
	return user, nil
}

// Logout tells the backend to invalidate the token. Callers treat this as
// best effort; the session manager clears local state regardless.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Post(ctx, "/Auth/logout", nil, nil)
}
