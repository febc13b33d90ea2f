package editaccount

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"accounts/internal/core/services/auth"
	"context"
	"errors"
	"time"
)

type Input struct {
	NewPassword account.RawPassword
	Email       c.Optional[c.Email]
	Account     account.Account
}

func (i Input) WithAuthenticatedAccount(a account.Account) auth.Input {
	i.Account = a
	return i
}

type Result struct {
	Account account.Account
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	passwordHasher    account.PasswordHasher
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		accountRepository: accountRepository,
		passwordHasher:    passwordHasher,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.NewPassword == "" {
		return result, e.NewValidationError("password", "This field may not be blank.")
	}
	if input.Email.IsPresent && input.Email.Value == "" {
		return result, e.NewValidationError("email", "This field may not be blank.")
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("username", input.Account.Username))
		return result, err
	}

	updated, err := s.accountRepository.Update(ctx, account.UpdateAccountInput{
		Username:     input.Account.Username,
		Email:        input.Email,
		PasswordHash: c.NewOptional(newPasswordHash, true),
		UpdatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"Could not change email, it is taken by another account.",
			logging.Entry("username", input.Account.Username),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("username", input.Account.Username))
		return result, err
	}

	s.log.Info(ctx, "Account has been updated.", logging.Entry("username", updated.Username))
	return Result{Account: updated}, nil
}
