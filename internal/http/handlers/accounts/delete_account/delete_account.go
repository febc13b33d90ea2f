package deleteaccount

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	deleteaccount "accounts/internal/core/services/delete_account"
	"accounts/internal/http/handlers/response"
	"errors"
	"net/http"
)

type Handler struct {
	service services.Service[deleteaccount.Input, deleteaccount.Result]
}

func New(
	service services.Service[deleteaccount.Input, deleteaccount.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	_, err := h.service.Run(r.Context(), deleteaccount.Input{})
	if errors.Is(err, account.ErrUnauthorized) || errors.Is(err, account.ErrAccountDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	response.RenderDetail(rw, "Account has been deleted.", http.StatusCreated)
}
