package createaccount

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	createaccount "accounts/internal/core/services/create_account"
	"accounts/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type Handler struct {
	service services.Service[createaccount.Input, createaccount.Result]
}

func New(
	service services.Service[createaccount.Input, createaccount.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Result struct {
	Detail   string `json:"detail"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(
			&i.Username,
			validation.Required,
			validation.Length(1, 150),
			validation.Match(usernamePattern).Error("may contain only letters, digits and @/./+/-/_ characters"),
		),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 254)),
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

	result, err := h.service.Run(
		r.Context(),
		createaccount.Input{Username: account.Username(input.Username), Email: c.NewEmail(input.Email)},
	)
	if errors.Is(err, account.ErrUsernameAlreadyExists) {
		response.RenderValidationError(rw, e.NewValidationError("username", "A user with that username already exists."))
		return
	}
	if errors.Is(err, account.ErrEmailAlreadyExists) {
		response.RenderValidationError(rw, e.NewValidationError("email", "A user with that email already exists."))
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{
		Detail:   "Account has been created.",
		Username: string(result.Account.Username),
		Email:    string(result.Account.Email),
		Password: string(result.Password),
	}, http.StatusCreated)
}
