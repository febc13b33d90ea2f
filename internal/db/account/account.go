package dbaccount

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/db/sqlcgen"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	"github.com/samber/oops"
)

const (
	USERNAME_CONSTRAINT_NAME = "account_pkey"
	EMAIL_CONSTRAINT_NAME    = "account_email_idx"
)

type PgxAccountRepository struct {
	queries *sqlcgen.Queries
}

func NewPgxAccountRepository(db sqlcgen.DBTX) *PgxAccountRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxAccountRepository{queries: sqlcgen.New(db)}
}

func (r *PgxAccountRepository) Create(ctx context.Context, input account.CreateAccountInput) (a account.Account, err error) {
	dbaccount, err := r.queries.CreateAccount(ctx, sqlcgen.CreateAccountParams{
		Username:     string(input.Username),
		Email:        string(input.Email),
		PasswordHash: string(input.PasswordHash),
		CreatedAt:    input.CreatedAt,
	})
	if err := uniqueViolation(err); err != nil {
		return a, err
	}
	if err != nil {
		return a, oops.Code("ACCOUNT_CREATE_FAILED").With("username", input.Username).Wrap(err)
	}
	return decodeAccount(dbaccount)
}

func (r *PgxAccountRepository) GetByUsername(ctx context.Context, username account.Username) (a account.Account, err error) {
	dbaccount, err := r.queries.GetAccountByUsername(ctx, string(username))
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, oops.Code("ACCOUNT_GET_FAILED").With("username", username).Wrap(err)
	}
	return decodeAccount(dbaccount)
}

// GetByUsernameForUpdate locks the account row until the transaction ends.
func (r *PgxAccountRepository) GetByUsernameForUpdate(
	ctx context.Context,
	username account.Username,
) (a account.Account, err error) {
	dbaccount, err := r.queries.GetAccountByUsernameForUpdate(ctx, string(username))
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, oops.Code("ACCOUNT_LOCK_FAILED").With("username", username).Wrap(err)
	}
	return decodeAccount(dbaccount)
}

func (r *PgxAccountRepository) Update(ctx context.Context, input account.UpdateAccountInput) (a account.Account, err error) {
	dbaccount, err := r.queries.UpdateAccount(ctx, sqlcgen.UpdateAccountParams{
		SetEmail:        input.Email.IsPresent,
		Email:           string(input.Email.Value),
		SetPasswordHash: input.PasswordHash.IsPresent,
		PasswordHash:    string(input.PasswordHash.Value),
		UpdatedAt:       input.UpdatedAt,
		Username:        string(input.Username),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err := uniqueViolation(err); err != nil {
		return a, err
	}
	if err != nil {
		return a, oops.Code("ACCOUNT_UPDATE_FAILED").With("username", input.Username).Wrap(err)
	}
	return decodeAccount(dbaccount)
}

func (r *PgxAccountRepository) SetPassword(
	ctx context.Context,
	username account.Username,
	password account.PasswordHash,
	at time.Time,
) error {
	affected, err := r.queries.SetAccountPassword(ctx, sqlcgen.SetAccountPasswordParams{
		PasswordHash: string(password),
		UpdatedAt:    at,
		Username:     string(username),
	})
	if err != nil {
		return oops.Code("ACCOUNT_SET_PASSWORD_FAILED").With("username", username).Wrap(err)
	}
	if affected == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

func (r *PgxAccountRepository) Delete(ctx context.Context, username account.Username) error {
	affected, err := r.queries.DeleteAccount(ctx, string(username))
	if err != nil {
		return oops.Code("ACCOUNT_DELETE_FAILED").With("username", username).Wrap(err)
	}
	if affected == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

// uniqueViolation maps unique constraint violations to domain errors, nil otherwise.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case USERNAME_CONSTRAINT_NAME:
		return account.ErrUsernameAlreadyExists
	case EMAIL_CONSTRAINT_NAME:
		return account.ErrEmailAlreadyExists
	}
	return nil
}

func decodeAccount(a sqlcgen.Account) (account.Account, error) {
	decoded := account.Account{
		Username:     account.Username(a.Username),
		Email:        c.Email(a.Email),
		PasswordHash: account.PasswordHash(a.PasswordHash),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if err := decoded.Validate(); err != nil {
		return account.Account{}, err
	}
	return decoded, nil
}

func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
