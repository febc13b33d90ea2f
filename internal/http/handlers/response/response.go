package response

import (
	e "accounts/internal/core/domain/errors"
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

type fieldErrorResponse struct {
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

func RenderDetail(rw http.ResponseWriter, detail string, status int) {
	Render(rw, detailResponse{Detail: detail}, status)
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "Authentication credentials were not provided or are invalid.", http.StatusUnauthorized)
}

func RenderNotFound(rw http.ResponseWriter) {
	RenderError(rw, "Not found.", http.StatusNotFound)
}

func RenderInvalidRequestData(rw http.ResponseWriter) {
	RenderError(rw, "Invalid request data.", http.StatusBadRequest)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

// RenderValidationError renders a single field failure as {"<field>": "<message>"}.
func RenderValidationError(rw http.ResponseWriter, err *e.ValidationError) {
	if err.Field == "" {
		RenderError(rw, err.Message, http.StatusBadRequest)
		return
	}
	Render(rw, map[string]string{err.Field: err.Message}, http.StatusBadRequest)
}

// RenderFieldError renders a single field failure as {"detail": "<message>", "field": "<field>"}.
func RenderFieldError(rw http.ResponseWriter, err *e.ValidationError) {
	Render(rw, fieldErrorResponse{Detail: err.Message, Field: err.Field}, http.StatusBadRequest)
}

// RenderFieldErrors renders the first failed field of ozzo validation errors,
// ordered by field name, the same way as RenderFieldError.
func RenderFieldErrors(rw http.ResponseWriter, err error) {
	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	field := fields[0]
	RenderFieldError(rw, e.NewValidationError(field, errs[field].Error()))
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	RenderDetail(rw, msg, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
