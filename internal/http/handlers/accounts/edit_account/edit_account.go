package editaccount

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	editaccount "accounts/internal/core/services/edit_account"
	"accounts/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[editaccount.Input, editaccount.Result]
}

func New(
	service services.Service[editaccount.Input, editaccount.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Password string  `json:"password"`
	Email    *string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, validation.Required, validation.Length(0, 128)),
		validation.Field(&i.Email, validation.NilOrNotEmpty, is.Email, validation.Length(0, 254)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := editaccount.Input{NewPassword: account.RawPassword(input.Password)}
	if input.Email != nil {
		serviceInput.Email = c.NewOptional(c.NewEmail(*input.Email), true)
	}
	_, err := h.service.Run(r.Context(), serviceInput)

	var validationErr *e.ValidationError
	switch {
	case err == nil:
		response.RenderDetail(rw, "Account has been updated.", http.StatusOK)
	case errors.Is(err, account.ErrUnauthorized):
		response.RenderUnauthorized(rw)
	case errors.As(err, &validationErr):
		response.RenderValidationError(rw, validationErr)
	case errors.Is(err, account.ErrEmailAlreadyExists):
		response.RenderValidationError(rw, e.NewValidationError("email", "A user with that email already exists."))
	default:
		response.RenderInternalError(rw)
	}
}
