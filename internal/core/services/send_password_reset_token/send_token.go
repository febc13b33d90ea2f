package sendpasswordresettoken

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"context"
	"errors"
)

type serviceWithTokenSending struct {
	log    logging.Logger
	sender account.ConfirmationTokenSender
	inner  services.Service[Input, Result]
}

// NewWithTokenSending dispatches the issued token through sender.
// A delivery failure leaves the token issued and is reported via Result.IsDelivered.
func NewWithTokenSending(
	log logging.Logger,
	sender account.ConfirmationTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithTokenSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithTokenSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Info(ctx, "Skip sending confirmation token.", logging.Entry("err", err))
		return result, err
	}
	if !result.IsIssued {
		return result, nil
	}

	err = s.sender.SendConfirmationToken(ctx, result.Notification)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send confirmation token.",
			logging.Entry("username", result.Notification.Username),
			logging.Entry("err", err),
		)
		return result, nil
	}

	result.IsDelivered = true
	s.log.Info(
		ctx,
		"Confirmation token has been sent to the account email.",
		logging.Entry("username", result.Notification.Username),
	)
	return result, nil
}
