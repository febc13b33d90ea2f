package dbaccount

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/db/sqlcgen"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/samber/oops"
)

// PgxConfirmationTokenLedger stores token hashes in the confirmation_token table.
// Consume is atomic only inside a transaction, where it locks the row.
type PgxConfirmationTokenLedger struct {
	queries *sqlcgen.Queries
}

func NewPgxConfirmationTokenLedger(db sqlcgen.DBTX) *PgxConfirmationTokenLedger {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxConfirmationTokenLedger{queries: sqlcgen.New(db)}
}

func (l *PgxConfirmationTokenLedger) Issue(ctx context.Context, record account.ConfirmationTokenRecord) error {
	err := l.queries.UpsertConfirmationToken(ctx, sqlcgen.UpsertConfirmationTokenParams{
		Username:  string(record.Username),
		TokenHash: string(record.Hash),
		IssuedAt:  record.IssuedAt,
		ExpiresAt: record.ExpiresAt,
	})
	if foreignKeyViolation(err) {
		return account.ErrAccountDoesNotExist
	}
	if err != nil {
		return oops.Code("CONFIRMATION_TOKEN_ISSUE_FAILED").With("username", record.Username).Wrap(err)
	}
	return nil
}

func (l *PgxConfirmationTokenLedger) Validate(
	ctx context.Context,
	username account.Username,
	token account.ConfirmationToken,
	now time.Time,
) (bool, error) {
	dbtoken, err := l.queries.GetConfirmationToken(ctx, string(username))
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, oops.Code("CONFIRMATION_TOKEN_GET_FAILED").With("username", username).Wrap(err)
	}
	return decodeConfirmationToken(dbtoken).Accepts(token, now), nil
}

func (l *PgxConfirmationTokenLedger) Consume(
	ctx context.Context,
	username account.Username,
	token account.ConfirmationToken,
	now time.Time,
) (bool, error) {
	dbtoken, err := l.queries.GetConfirmationTokenForUpdate(ctx, string(username))
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, oops.Code("CONFIRMATION_TOKEN_LOCK_FAILED").With("username", username).Wrap(err)
	}
	if !decodeConfirmationToken(dbtoken).Accepts(token, now) {
		return false, nil
	}

	affected, err := l.queries.DeleteConfirmationToken(ctx, string(username))
	if err != nil {
		return false, oops.Code("CONFIRMATION_TOKEN_DELETE_FAILED").With("username", username).Wrap(err)
	}
	return affected == 1, nil
}

func (l *PgxConfirmationTokenLedger) Delete(ctx context.Context, username account.Username) error {
	_, err := l.queries.DeleteConfirmationToken(ctx, string(username))
	if err != nil {
		return oops.Code("CONFIRMATION_TOKEN_DELETE_FAILED").With("username", username).Wrap(err)
	}
	return nil
}

func decodeConfirmationToken(t sqlcgen.ConfirmationToken) account.ConfirmationTokenRecord {
	return account.ConfirmationTokenRecord{
		Username:  account.Username(t.Username),
		Hash:      account.ConfirmationTokenHash(t.TokenHash),
		IssuedAt:  t.IssuedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
