package dbaccount

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/db/sqlcgen"
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/samber/oops"
)

type PgxSessionRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxSessionRepository(db sqlcgen.DBTX) *PgxSessionRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxSessionRepository{queries: sqlcgen.New(db)}
}

func (r *PgxSessionRepository) Create(ctx context.Context, input account.CreateSessionInput) error {
	err := r.queries.CreateSession(ctx, sqlcgen.CreateSessionParams{
		Token:     string(input.Token),
		Username:  string(input.Username),
		CreatedAt: input.CreatedAt,
	})
	if foreignKeyViolation(err) {
		return account.ErrAccountDoesNotExist
	}
	if err != nil {
		return oops.Code("SESSION_CREATE_FAILED").With("username", input.Username).Wrap(err)
	}
	return nil
}

func (r *PgxSessionRepository) GetAccountByToken(
	ctx context.Context,
	token account.SessionToken,
) (a account.Account, err error) {
	dbaccount, err := r.queries.GetAccountBySessionToken(ctx, string(token))
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrSessionDoesNotExist
	}
	if err != nil {
		return a, oops.Code("SESSION_GET_FAILED").Wrap(err)
	}
	return decodeAccount(dbaccount)
}

func (r *PgxSessionRepository) Delete(ctx context.Context, token account.SessionToken) (account.Username, error) {
	username, err := r.queries.DeleteSessionByToken(ctx, string(token))
	if errors.Is(err, pgx.ErrNoRows) {
		return "", account.ErrSessionDoesNotExist
	}
	if err != nil {
		return "", oops.Code("SESSION_DELETE_FAILED").Wrap(err)
	}
	return account.Username(username), nil
}
