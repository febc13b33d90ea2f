package account

import "errors"

var (
	ErrUsernameAlreadyExists    = errors.New("username already exists")
	ErrEmailAlreadyExists       = errors.New("email already exists")
	ErrAccountDoesNotExist      = errors.New("account does not exist")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrSessionDoesNotExist      = errors.New("session does not exist")
	ErrUnauthorized             = errors.New("authentication credentials were not provided or are invalid")
	ErrInvalidConfirmationToken = errors.New("invalid confirmation token")
)

// IsConflict reports whether err is caused by a uniqueness violation on create or update.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameAlreadyExists) || errors.Is(err, ErrEmailAlreadyExists)
}
