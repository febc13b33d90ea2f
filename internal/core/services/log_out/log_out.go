package logout

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Token account.SessionToken
}

type Result struct{}

type service struct {
	log               logging.Logger
	sessionRepository account.SessionRepository
}

func New(
	log logging.Logger,
	sessionRepository account.SessionRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &service{
		log:               log,
		sessionRepository: sessionRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	username, err := s.sessionRepository.Delete(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, account.ErrSessionDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not delete session.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(ctx, "Account logged out.", logging.Entry("username", username))
	return result, nil
}
