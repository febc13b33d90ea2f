package createaccount

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Username account.Username
	Email    c.Email
}

// Result carries the generated plaintext password. It is returned exactly once
// and is not retrievable afterwards.
type Result struct {
	Account  account.Account
	Password account.RawPassword
}

type service struct {
	log               logging.Logger
	accountRepository account.AccountRepository
	passwordGenerator account.PasswordGenerator
	passwordHasher    account.PasswordHasher
	now               func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	passwordGenerator account.PasswordGenerator,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if passwordGenerator == nil {
		panic(e.NewNilArgumentError("passwordGenerator"))
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
		passwordGenerator: passwordGenerator,
		passwordHasher:    passwordHasher,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	password := s.passwordGenerator.GeneratePassword()
	passwordHash, err := s.passwordHasher.HashPassword(password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	createdAccount, err := s.accountRepository.Create(ctx, account.CreateAccountInput{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if account.IsConflict(err) {
		s.log.Info(
			ctx,
			"Account with the username or email already exists.",
			logging.Entry("username", input.Username),
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new account.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New account has been created.", logging.Entry("username", createdAccount.Username))
	return Result{Account: createdAccount, Password: password}, nil
}
