package uow

import (
	"accounts/internal/core/domain/account"
	"context"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Accounts() account.AccountRepository
	Sessions() account.SessionRepository
	ConfirmationTokens() account.ConfirmationTokenLedger
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
