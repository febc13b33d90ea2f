package resetpassword

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	resetpassword "accounts/internal/core/services/reset_password"
	"accounts/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const INVALID_CONFIRMATION_TOKEN = "Invalid or expired confirmation token."

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// Input fields are checked by the service, since an unknown username
// takes precedence over every other failure.
type Input struct {
	Username           string `json:"username"`
	ConfirmationToken  string `json:"confirmation_token"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}

	_, err := h.service.Run(r.Context(), resetpassword.Input{
		Username:           account.Username(input.Username),
		ConfirmationToken:  account.ConfirmationToken(input.ConfirmationToken),
		NewPassword:        account.RawPassword(input.NewPassword),
		NewPasswordConfirm: account.RawPassword(input.NewPasswordConfirm),
	})

	var validationErr *e.ValidationError
	switch {
	case err == nil:
		response.RenderDetail(rw, "Password has been reset.", http.StatusCreated)
	case errors.As(err, &validationErr):
		response.RenderFieldError(rw, validationErr)
	case errors.Is(err, account.ErrInvalidConfirmationToken):
		response.RenderFieldError(
			rw,
			e.NewValidationError("confirmation_token", INVALID_CONFIRMATION_TOKEN),
		)
	case errors.Is(err, account.ErrAccountDoesNotExist):
		response.RenderNotFound(rw)
	default:
		response.RenderInternalError(rw)
	}
}
