package uow

import (
	"accounts/internal/core/domain/account"
	uow "accounts/internal/core/domain/unit_of_work"
	dbaccount "accounts/internal/db/account"
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/samber/oops"
)

type pgxUnitOfWorkContext struct {
	tx     pgx.Tx
	ledger account.ConfirmationTokenLedger
}

func newPgxUnitOfWorkContext(tx pgx.Tx, ledger account.ConfirmationTokenLedger) *pgxUnitOfWorkContext {
	if ledger == nil {
		ledger = dbaccount.NewPgxConfirmationTokenLedger(tx)
	}
	return &pgxUnitOfWorkContext{tx: tx, ledger: ledger}
}

func (c *pgxUnitOfWorkContext) Commit(ctx context.Context) error {
	if err := c.tx.Commit(ctx); err != nil {
		return oops.Code("UOW_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

// Rollback is a no-op once the transaction has been committed.
func (c *pgxUnitOfWorkContext) Rollback(ctx context.Context) error {
	err := c.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (c *pgxUnitOfWorkContext) Accounts() account.AccountRepository {
	return dbaccount.NewPgxAccountRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) Sessions() account.SessionRepository {
	return dbaccount.NewPgxSessionRepository(c.tx)
}

func (c *pgxUnitOfWorkContext) ConfirmationTokens() account.ConfirmationTokenLedger {
	return c.ledger
}

type PgxUnitOfWork struct {
	db     *pgxpool.Pool
	ledger account.ConfirmationTokenLedger
}

// NewPgxUnitOfWork keeps confirmation tokens in the same transaction as accounts.
func NewPgxUnitOfWork(db *pgxpool.Pool) *PgxUnitOfWork {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUnitOfWork{db: db}
}

// NewPgxUnitOfWorkWithLedger uses an external ledger that does not take part
// in the transaction. The account row lock still serializes requests per account.
func NewPgxUnitOfWorkWithLedger(db *pgxpool.Pool, ledger account.ConfirmationTokenLedger) *PgxUnitOfWork {
	if ledger == nil {
		panic("Argument ledger must not be nil.")
	}
	u := NewPgxUnitOfWork(db)
	u.ledger = ledger
	return u
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, oops.Code("UOW_BEGIN_FAILED").Wrap(err)
	}
	return newPgxUnitOfWorkContext(tx, u.ledger), nil
}
