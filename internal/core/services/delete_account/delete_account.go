package deleteaccount

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	uow "accounts/internal/core/domain/unit_of_work"
	"accounts/internal/core/services"
	"accounts/internal/core/services/auth"
	"context"
	"errors"
)

type Input struct {
	Account account.Account
}

func (i Input) WithAuthenticatedAccount(a account.Account) auth.Input {
	i.Account = a
	return i
}

type Result struct{}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	username := input.Account.Username

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	err = uow.ConfirmationTokens().Delete(ctx, username)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete confirmation token of the account.",
			logging.Entry("username", username),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = uow.Accounts().Delete(ctx, username)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrAccountDoesNotExist) {
		s.log.Info(ctx, "Account has already been deleted.", logging.Entry("username", username))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not delete account.",
			logging.Entry("username", username),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(
			ctx,
			"Could not commit account deletion.",
			logging.Entry("username", username),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Account has been deleted.", logging.Entry("username", username))
	return result, nil
}
