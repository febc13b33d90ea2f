package deliverconfirmationtoken

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
	Notification account.ConfirmationTokenNotification
}

type Result struct {
	IsDelivered bool
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	sender     account.ConfirmationTokenSender
	now        func() time.Time
}

// New creates a service that delivers queued confirmation tokens.
// Tokens that expired, were superseded or were already used while
// waiting in the queue are dropped.
func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	sender account.ConfirmationTokenSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, unitOfWork: unitOfWork, sender: sender, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	notification := input.Notification
	now := s.now()
	if !now.Before(notification.ExpiresAt) {
		s.log.Warning(
			ctx,
			"Confirmation token expired before delivery, skipped.",
			logging.Entry("username", notification.Username),
			logging.Entry("expiresAt", notification.ExpiresAt),
		)
		return result, nil
	}

	isLive, err := s.isLive(ctx, notification, now)
	if err != nil {
		return result, err
	}
	if !isLive {
		s.log.Warning(
			ctx,
			"Confirmation token is no longer live, skipped.",
			logging.Entry("username", notification.Username),
		)
		return result, nil
	}

	err = s.sender.SendConfirmationToken(ctx, notification)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not deliver confirmation token.",
			logging.Entry("username", notification.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Confirmation token has been delivered.", logging.Entry("username", notification.Username))
	return Result{IsDelivered: true}, nil
}

func (s *service) isLive(
	ctx context.Context,
	notification account.ConfirmationTokenNotification,
	now time.Time,
) (bool, error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return false, err
	}
	defer uow.Rollback(ctx)

	isLive, err := uow.ConfirmationTokens().Validate(ctx, notification.Username, notification.Token, now)
	if errors.Is(err, context.Canceled) {
		return false, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not validate confirmation token before delivery.",
			logging.Entry("username", notification.Username),
			logging.Entry("err", err),
		)
		return false, err
	}
	return isLive, nil
}
