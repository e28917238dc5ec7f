package client

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidCredentials = "INVALID_CREDENTIALS"
	textCodeDuplicateIdentity  = "DUPLICATE_IDENTITY"
	textCodeUnauthorized       = "UNAUTHORIZED"
	textCodeNetworkError       = "NETWORK_ERROR"
	textCodeActionInProgress   = "ACTION_IN_PROGRESS"
)

// ErrInvalidCredentials is returned when the login endpoint rejects the
// supplied phone number and password.
var ErrInvalidCredentials = goerrors.New("invalid phone number or password", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrConflict is returned when registration is rejected because the phone
// number is already taken.
var ErrConflict = goerrors.New("an account with this phone number already exists", goerrors.CategoryConflict).
	WithTextCode(textCodeDuplicateIdentity).
	WithCode(goerrors.CodeConflict)

// ErrUnauthorized is returned when an authenticated call is rejected because
// the stored token is invalid or expired. The session manager clears the
// session when it sees this error.
var ErrUnauthorized = goerrors.New("authentication token is invalid or expired", goerrors.CategoryAuth).
	WithTextCode(textCodeUnauthorized).
	WithCode(goerrors.CodeUnauthorized)

// ErrActionInProgress is returned when a session action is requested while
// another one (bootstrap included) has not finished yet.
var ErrActionInProgress = goerrors.New("another session action is in progress", goerrors.CategoryConflict).
	WithTextCode(textCodeActionInProgress).
	WithCode(goerrors.CodeConflict)

// apiError derives a response-specific error from one of the taxonomy
// sentinels, keeping errors.Is matching intact through Source.
func apiError(sentinel *goerrors.Error, message string, metadata map[string]any) error {
	clone := sentinel.Clone()
	if clone == nil {
		return sentinel
	}
	if message != "" {
		clone.Message = message
	}
	clone.Source = sentinel
	if len(metadata) > 0 {
		return clone.WithMetadata(metadata)
	}
	return clone
}

func wrapNetworkError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryOperation, message).
		WithTextCode(textCodeNetworkError)
}

// IsUnauthorized reports whether err means the current token was rejected.
func IsUnauthorized(err error) bool {
	return matchesTextCode(err, ErrUnauthorized, textCodeUnauthorized)
}

// IsInvalidCredentials reports whether err is a rejected login.
func IsInvalidCredentials(err error) bool {
	return matchesTextCode(err, ErrInvalidCredentials, textCodeInvalidCredentials)
}

// IsConflict reports whether err is a duplicate-identity registration error.
func IsConflict(err error) bool {
	return matchesTextCode(err, ErrConflict, textCodeDuplicateIdentity)
}

// IsNetworkError reports whether err is a transport or timeout failure. The
// UI is expected to surface these as generic retry-suggesting messages.
func IsNetworkError(err error) bool {
	var rich *goerrors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == textCodeNetworkError
	}
	return false
}

func matchesTextCode(err error, sentinel *goerrors.Error, textCode string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sentinel) {
		return true
	}
	var rich *goerrors.Error
	if errors.As(err, &rich) {
		return rich.TextCode == textCode
	}
	return false
}
