package account

import (
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"fmt"
	"time"
)

type Username string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

type Account struct {
	Username     Username
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a *Account) Validate() error {
	if a.Username == "" {
		return e.NewInvalidStateError("username is not set for account")
	}
	if a.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for account %s", a.Username))
	}
	if a.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for account %s", a.Username))
	}
	return nil
}
