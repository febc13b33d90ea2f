package logout

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	logout "accounts/internal/core/services/log_out"
	"accounts/internal/http/handlers/auth"
	"accounts/internal/http/handlers/response"
	"errors"
	"net/http"
)

type Handler struct {
	service services.Service[logout.Input, logout.Result]
}

func New(service services.Service[logout.Input, logout.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	_, err := h.service.Run(r.Context(), logout.Input{Token: token})
	if errors.Is(err, account.ErrSessionDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	response.RenderDetail(rw, "Successfully logged out.", http.StatusOK)
}
