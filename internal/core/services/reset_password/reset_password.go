package resetpassword

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

const fieldRequired = "This field is required."

type Input struct {
	Username           account.Username
	ConfirmationToken  account.ConfirmationToken
	NewPassword        account.RawPassword
	NewPasswordConfirm account.RawPassword
}

// Validate checks the fields that are meaningful only once the account is known.
func (i Input) Validate() error {
	if i.ConfirmationToken == "" {
		return e.NewValidationError("confirmation_token", fieldRequired)
	}
	if i.NewPassword == "" {
		return e.NewValidationError("new_password", fieldRequired)
	}
	if i.NewPasswordConfirm == "" {
		return e.NewValidationError("new_password_confirm", fieldRequired)
	}
	if i.NewPassword != i.NewPasswordConfirm {
		return e.NewValidationError("new_password_confirm", "The two password fields didn't match.")
	}
	return nil
}

type Result struct{}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher account.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher account.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Username == "" {
		return result, e.NewValidationError("username", fieldRequired)
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
		s.log.Info(ctx, "Account not found for password reset.", logging.Entry("username", input.Username))
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

	if err := input.Validate(); err != nil {
		return result, err
	}

	now := s.now()
	isConsumed, err := uow.ConfirmationTokens().Consume(ctx, a.Username, input.ConfirmationToken, now)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume confirmation token.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !isConsumed {
		s.log.Info(ctx, "Invalid confirmation token for password reset.", logging.Entry("username", a.Username))
		return result, account.ErrInvalidConfirmationToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}
	err = uow.Accounts().SetPassword(ctx, a.Username, newPasswordHash, now)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update account password.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(
			ctx,
			"Could not commit password reset.",
			logging.Entry("username", a.Username),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("username", a.Username))
	return result, nil
}
