package login

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Username account.Username
	Password account.RawPassword
}

type Result struct {
	Token account.SessionToken
}

type service struct {
	log                   logging.Logger
	accountRepository     account.AccountRepository
	sessionRepository     account.SessionRepository
	passwordHasher        account.PasswordHasher
	sessionTokenGenerator account.SessionTokenGenerator
	now                   func() time.Time
}

func New(
	log logging.Logger,
	accountRepository account.AccountRepository,
	sessionRepository account.SessionRepository,
	passwordHasher account.PasswordHasher,
	sessionTokenGenerator account.SessionTokenGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if accountRepository == nil {
		panic(e.NewNilArgumentError("accountRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenGenerator == nil {
		panic(e.NewNilArgumentError("sessionTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		accountRepository:     accountRepository,
		sessionRepository:     sessionRepository,
		passwordHasher:        passwordHasher,
		sessionTokenGenerator: sessionTokenGenerator,
		now:                   now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	a, err := s.accountRepository.GetByUsername(ctx, input.Username)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, account.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account for authentication.",
			logging.Entry("username", input.Username),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, a.PasswordHash) {
		return result, account.ErrInvalidCredentials
	}

	sessionToken := s.sessionTokenGenerator.GenerateToken()
	err = s.sessionRepository.Create(ctx, account.CreateSessionInput{
		Username:  a.Username,
		Token:     sessionToken,
		CreatedAt: s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create session token for account.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Account successfully authenticated, session token created.",
		logging.Entry("username", a.Username),
	)
	return Result{Token: sessionToken}, nil
}
