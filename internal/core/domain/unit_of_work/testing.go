package uow

import (
	"accounts/internal/core/domain/account"
	"context"
	"fmt"
)

type FakeUnitOfWorkContext struct {
	AccountRepository *account.FakeAccountRepository
	SessionRepository *account.FakeSessionRepository
	TokenLedger       *account.FakeConfirmationTokenLedger
	WasRollbackCalled bool
	WasCommitCalled   bool
	ReturnCommitError bool
}

func NewFakeUnitOfWorkContext(
	accountRepository *account.FakeAccountRepository,
	sessionRepository *account.FakeSessionRepository,
	tokenLedger *account.FakeConfirmationTokenLedger,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		AccountRepository: accountRepository,
		SessionRepository: sessionRepository,
		TokenLedger:       tokenLedger,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	if !c.WasCommitCalled {
		c.WasRollbackCalled = true
	}
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	if c.ReturnCommitError {
		return fmt.Errorf("could not commit")
	}
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Accounts() account.AccountRepository {
	return c.AccountRepository
}

func (c *FakeUnitOfWorkContext) Sessions() account.SessionRepository {
	return c.SessionRepository
}

func (c *FakeUnitOfWorkContext) ConfirmationTokens() account.ConfirmationTokenLedger {
	return c.TokenLedger
}

type FakeUnitOfWork struct {
	Context     *FakeUnitOfWorkContext
	ReturnError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	accountRepository := account.NewFakeAccountRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			accountRepository,
			account.NewFakeSessionRepository(accountRepository),
			account.NewFakeConfirmationTokenLedger(),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError {
		return nil, fmt.Errorf("could not begin unit of work")
	}
	u.Context.WasCommitCalled = false
	u.Context.WasRollbackCalled = false
	return u.Context, nil
}
