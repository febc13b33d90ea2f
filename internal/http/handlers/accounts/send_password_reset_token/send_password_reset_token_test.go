package sendpasswordresettoken

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	service "accounts/internal/core/services/send_password_reset_token"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const TOKEN = "0123456789abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqr"

type stubService struct {
	result service.Result
	err    error
	input  *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	s.input = &input
	return s.result, s.err
}

func issued(isDelivered bool) service.Result {
	return service.Result{
		IsIssued:     true,
		IsDelivered:  isDelivered,
		Notification: account.ConfirmationTokenNotification{Username: "alice", Token: TOKEN},
	}
}

func TestSendPasswordResetTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		isTestMode     bool
		result         service.Result
		serviceErr     error
		expectedStatus int
		expectedBody   string
		expectedHeader string
	}{
		{
			id:             "delivered",
			body:           `{"username": "alice"}`,
			result:         issued(true),
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"detail": "Confirmation token has been sent."}`,
		},
		{
			id:             "not delivered",
			body:           `{"username": "alice"}`,
			result:         issued(false),
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"detail": "Confirmation token has been sent.", "warning": "` + DELIVERY_WARNING + `"}`,
		},
		{
			id:             "test mode",
			body:           `{"username": "alice"}`,
			isTestMode:     true,
			result:         issued(true),
			expectedStatus: http.StatusCreated,
			expectedHeader: TOKEN,
		},
		{
			id:             "unknown username hidden",
			body:           `{"username": "bob"}`,
			isTestMode:     true,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"detail": "Confirmation token has been sent."}`,
		},
		{
			id:             "unknown username",
			body:           `{"username": "bob"}`,
			serviceErr:     account.ErrAccountDoesNotExist,
			expectedStatus: http.StatusNotFound,
		},
		{
			id:             "blank username",
			body:           `{"username": ""}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"detail": "cannot be blank", "field": "username"}`,
		},
		{
			id:             "validation error from service",
			body:           `{"username": "alice"}`,
			serviceErr:     e.NewValidationError("username", "This field is required."),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"detail": "This field is required.", "field": "username"}`,
		},
		{
			id:             "invalid json",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "service error",
			body:           `{"username": "alice"}`,
			serviceErr:     errors.New("test"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{result: testcase.result, err: testcase.serviceErr}
			rw := httptest.NewRecorder()
			r := httptest.NewRequest(
				http.MethodPost,
				"/accounts/password/reset/token",
				strings.NewReader(testcase.body),
			)

			New(stub, testcase.isTestMode).ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			if testcase.expectedBody != "" {
				assert.JSONEq(t, testcase.expectedBody, rw.Body.String())
			}
			assert.Equal(t, testcase.expectedHeader, rw.Header().Get(TEST_CONFIRMATION_TOKEN_HEADER))
		})
	}
}
