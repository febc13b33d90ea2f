package services

import (
	"accounts/internal/app/deps"
	"accounts/internal/core/services"
	"accounts/internal/core/services/auth"
	createaccount "accounts/internal/core/services/create_account"
	deleteaccount "accounts/internal/core/services/delete_account"
	deliverconfirmationtoken "accounts/internal/core/services/deliver_confirmation_token"
	editaccount "accounts/internal/core/services/edit_account"
	login "accounts/internal/core/services/log_in"
	logout "accounts/internal/core/services/log_out"
	resetpassword "accounts/internal/core/services/reset_password"
	sendpasswordresettoken "accounts/internal/core/services/send_password_reset_token"
)

type Services struct {
	CreateAccount          services.Service[createaccount.Input, createaccount.Result]
	EditAccount            services.Service[editaccount.Input, editaccount.Result]
	DeleteAccount          services.Service[deleteaccount.Input, deleteaccount.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]

	LogIn  services.Service[login.Input, login.Result]
	LogOut services.Service[logout.Input, logout.Result]

	// DeliverConfirmationToken is nil unless an email sender is configured.
	DeliverConfirmationToken services.Service[deliverconfirmationtoken.Input, deliverconfirmationtoken.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.CreateAccount = createaccount.New(
		deps.Logger,
		deps.AccountRepository,
		deps.PasswordGenerator,
		deps.PasswordHasher,
		deps.Now,
	)
	s.EditAccount = auth.WithAuthentication(
		deps.SessionRepository,
		editaccount.New(
			deps.Logger,
			deps.AccountRepository,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.DeleteAccount = auth.WithAuthentication(
		deps.SessionRepository,
		deleteaccount.New(
			deps.Logger,
			deps.UnitOfWork,
		),
	)
	s.SendPasswordResetToken = sendpasswordresettoken.NewWithTokenSending(
		deps.Logger,
		deps.ConfirmationTokenSender,
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.ConfirmationTokenGenerator,
			deps.Config.ConfirmationTokenTTL,
			deps.Now,
			deps.Config.ResetHideUnknownUsername,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)

	s.LogIn = login.New(
		deps.Logger,
		deps.AccountRepository,
		deps.SessionRepository,
		deps.PasswordHasher,
		deps.SessionTokenGenerator,
		deps.Now,
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)

	if deps.EmailSender != nil {
		s.DeliverConfirmationToken = deliverconfirmationtoken.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.EmailSender,
			deps.Now,
		)
	}

	return s
}
