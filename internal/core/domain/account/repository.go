package account

import (
	c "accounts/internal/core/domain/common"
	"context"
	"time"
)

type CreateAccountInput struct {
	Username     Username
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UpdateAccountInput struct {
	Username     Username
	Email        c.Optional[c.Email]
	PasswordHash c.Optional[PasswordHash]
	UpdatedAt    time.Time
}

type AccountRepository interface {
	Create(ctx context.Context, input CreateAccountInput) (Account, error)
	GetByUsername(ctx context.Context, username Username) (Account, error)
	// GetByUsernameForUpdate locks the account until the surrounding transaction ends.
	GetByUsernameForUpdate(ctx context.Context, username Username) (Account, error)
	Update(ctx context.Context, input UpdateAccountInput) (Account, error)
	SetPassword(ctx context.Context, username Username, password PasswordHash, at time.Time) error
	Delete(ctx context.Context, username Username) error
}

type CreateSessionInput struct {
	Username  Username
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetAccountByToken(ctx context.Context, token SessionToken) (Account, error)
	Delete(ctx context.Context, token SessionToken) (Username, error)
}
