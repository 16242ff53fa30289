package service

import "errors"

// ValidationError marks caller input as malformed; handlers surface the
// message verbatim with a 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Domain errors for auth and film flows.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidToken       = errors.New("invalid token")
)
