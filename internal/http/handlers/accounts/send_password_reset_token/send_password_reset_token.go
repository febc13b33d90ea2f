package sendpasswordresettoken

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	sendpasswordresettoken "accounts/internal/core/services/send_password_reset_token"
	"accounts/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	TEST_CONFIRMATION_TOKEN_HEADER = "x-test-confirmation-token"
	DELIVERY_WARNING               = "The confirmation token could not be delivered, please request a new one."
)

type Handler struct {
	service    services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	isTestMode bool
}

func New(
	service services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Username string `json:"username"`
}

type Result struct {
	Detail  string `json:"detail"`
	Warning string `json:"warning,omitempty"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(1, 150)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderFieldErrors(rw, err)
		return
	}

	result, err := h.service.Run(r.Context(), sendpasswordresettoken.Input{
		Username: account.Username(input.Username),
	})

	var validationErr *e.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &validationErr):
		response.RenderFieldError(rw, validationErr)
		return
	case errors.Is(err, account.ErrAccountDoesNotExist):
		response.RenderNotFound(rw)
		return
	default:
		response.RenderInternalError(rw)
		return
	}

	res := Result{Detail: "Confirmation token has been sent."}
	if result.IsIssued && !result.IsDelivered {
		res.Warning = DELIVERY_WARNING
	}
	if h.isTestMode && result.IsIssued {
		rw.Header().Set(TEST_CONFIRMATION_TOKEN_HEADER, string(result.Notification.Token))
	}
	response.Render(rw, res, http.StatusCreated)
}
