package sendpasswordresettoken

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	uow "accounts/internal/core/domain/unit_of_work"
	"accounts/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Username account.Username
}

type Result struct {
	// IsIssued is false only when an unknown username is answered silently.
	IsIssued     bool
	IsDelivered  bool
	Notification account.ConfirmationTokenNotification
}

type service struct {
	log                 logging.Logger
	unitOfWork          uow.UnitOfWork
	tokenGenerator      account.ConfirmationTokenGenerator
	tokenTTL            time.Duration
	now                 func() time.Time
	hideUnknownUsername bool
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	tokenGenerator account.ConfirmationTokenGenerator,
	tokenTTL time.Duration,
	now func() time.Time,
	hideUnknownUsername bool,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenTTL <= 0 {
		panic(e.NewInvalidStateError("confirmation token TTL must be positive"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                 log,
		unitOfWork:          unitOfWork,
		tokenGenerator:      tokenGenerator,
		tokenTTL:            tokenTTL,
		now:                 now,
		hideUnknownUsername: hideUnknownUsername,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Username == "" {
		return result, e.NewValidationError("username", "This field is required.")
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	a, err := uow.Accounts().GetByUsernameForUpdate(ctx, input.Username)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for unknown account.",
			logging.Entry("username", input.Username),
		)
		if s.hideUnknownUsername {
			return result, nil
		}
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get account for password reset.",
			logging.Entry("username", input.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	token := s.tokenGenerator.GenerateConfirmationToken()
	record := account.NewConfirmationTokenRecord(a.Username, token, s.now(), s.tokenTTL)
	err = uow.ConfirmationTokens().Issue(ctx, record)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue confirmation token.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(
			ctx,
			"Could not commit confirmation token.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Confirmation token has been issued.",
		logging.Entry("username", a.Username),
		logging.Entry("expiresAt", record.ExpiresAt),
	)
	return Result{
		IsIssued: true,
		Notification: account.ConfirmationTokenNotification{
			Username:  a.Username,
			Email:     a.Email,
			Token:     token,
			ExpiresAt: record.ExpiresAt,
		},
	}, nil
}
