package app

import (
	"accounts/internal/app/deps"
	"accounts/internal/app/services"
	"accounts/internal/config"
	"accounts/internal/core/domain/account"
	"accounts/internal/core/domain/logging"
	uow "accounts/internal/core/domain/unit_of_work"
	createaccount "accounts/internal/core/services/create_account"
	deleteaccount "accounts/internal/core/services/delete_account"
	editaccount "accounts/internal/core/services/edit_account"
	login "accounts/internal/core/services/log_in"
	logout "accounts/internal/core/services/log_out"
	resetpassword "accounts/internal/core/services/reset_password"
	sendpasswordresettoken "accounts/internal/core/services/send_password_reset_token"
	sendtokenhandler "accounts/internal/http/handlers/accounts/send_password_reset_token"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService[I any, R any] struct {
	calls int
}

func (s *stubService[I, R]) Run(ctx context.Context, input I) (result R, err error) {
	s.calls++
	return result, nil
}

func newStubServices() *services.Services {
	return &services.Services{
		CreateAccount:          &stubService[createaccount.Input, createaccount.Result]{},
		EditAccount:            &stubService[editaccount.Input, editaccount.Result]{},
		DeleteAccount:          &stubService[deleteaccount.Input, deleteaccount.Result]{},
		SendPasswordResetToken: &stubService[sendpasswordresettoken.Input, sendpasswordresettoken.Result]{},
		ResetPassword:          &stubService[resetpassword.Input, resetpassword.Result]{},
		LogIn:                  &stubService[login.Input, login.Result]{},
		LogOut:                 &stubService[logout.Input, logout.Result]{},
	}
}

func TestRoutes(t *testing.T) {
	s := &services.Services{}
	createAccount := &stubService[createaccount.Input, createaccount.Result]{}
	editAccount := &stubService[editaccount.Input, editaccount.Result]{}
	deleteAccount := &stubService[deleteaccount.Input, deleteaccount.Result]{}
	sendToken := &stubService[sendpasswordresettoken.Input, sendpasswordresettoken.Result]{}
	resetPassword := &stubService[resetpassword.Input, resetpassword.Result]{}
	logIn := &stubService[login.Input, login.Result]{}
	logOut := &stubService[logout.Input, logout.Result]{}
	s.CreateAccount = createAccount
	s.EditAccount = editAccount
	s.DeleteAccount = deleteAccount
	s.SendPasswordResetToken = sendToken
	s.ResetPassword = resetPassword
	s.LogIn = logIn
	s.LogOut = logOut

	router := NewRouter(&deps.Deps{Config: &config.Config{AllowedOrigins: []string{"*"}}}, s)

	cases := []struct {
		id             string
		method         string
		path           string
		body           string
		expectedStatus int
		calls          func() int
	}{
		{
			id:             "create account",
			method:         http.MethodPost,
			path:           "/accounts/create",
			body:           `{"username": "alice", "email": "alice@test.test"}`,
			expectedStatus: http.StatusCreated,
			calls:          func() int { return createAccount.calls },
		},
		{
			id:             "edit account",
			method:         http.MethodPatch,
			path:           "/accounts",
			body:           `{"password": "new-password"}`,
			expectedStatus: http.StatusOK,
			calls:          func() int { return editAccount.calls },
		},
		{
			id:             "delete account",
			method:         http.MethodPost,
			path:           "/accounts/delete",
			expectedStatus: http.StatusCreated,
			calls:          func() int { return deleteAccount.calls },
		},
		{
			id:             "send password reset token",
			method:         http.MethodPost,
			path:           "/accounts/password/reset/token",
			body:           `{"username": "alice"}`,
			expectedStatus: http.StatusCreated,
			calls:          func() int { return sendToken.calls },
		},
		{
			id:             "reset password",
			method:         http.MethodPost,
			path:           "/accounts/password/reset",
			body:           `{"username": "alice"}`,
			expectedStatus: http.StatusCreated,
			calls:          func() int { return resetPassword.calls },
		},
		{
			id:             "log in",
			method:         http.MethodPost,
			path:           "/auth/login",
			body:           `{"username": "alice", "password": "secret"}`,
			expectedStatus: http.StatusOK,
			calls:          func() int { return logIn.calls },
		},
		{
			id:             "log out",
			method:         http.MethodPost,
			path:           "/auth/logout",
			expectedStatus: http.StatusOK,
			calls:          func() int { return logOut.calls },
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			rw := httptest.NewRecorder()
			r := httptest.NewRequest(testcase.method, testcase.path, strings.NewReader(testcase.body))
			r.Header.Set("Authorization", "Token abc")

			router.ServeHTTP(rw, r)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.Equal(t, 1, testcase.calls())
		})
	}
}

func TestWrongMethod(t *testing.T) {
	router := NewRouter(&deps.Deps{Config: &config.Config{}}, newStubServices())
	rw := httptest.NewRecorder()

	router.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/accounts/create", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rw.Code)
}

func TestMetricsRoute(t *testing.T) {
	router := NewRouter(&deps.Deps{Config: &config.Config{}}, newStubServices())
	rw := httptest.NewRecorder()

	router.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rw.Code)
}

const CONFIRMATION_TOKEN = "0123456789abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqr"

func newFakeDeps() *deps.Deps {
	unitOfWork := uow.NewFakeUnitOfWork()
	now := time.Now().UTC()

	return &deps.Deps{
		Config: &config.Config{
			IsTestMode:           true,
			ConfirmationTokenTTL: time.Hour,
			AllowedOrigins:       []string{"*"},
		},
		Logger:                     logging.NewFakeLogger(),
		Now:                        func() time.Time { return now },
		UnitOfWork:                 unitOfWork,
		AccountRepository:          unitOfWork.Context.AccountRepository,
		SessionRepository:          unitOfWork.Context.SessionRepository,
		PasswordHasher:             account.NewFakePasswordHasher(),
		PasswordGenerator:          account.NewFakePasswordGenerator("generated-password"),
		ConfirmationTokenGenerator: account.NewFakeConfirmationTokenGenerator(CONFIRMATION_TOKEN),
		SessionTokenGenerator:      account.NewFakeSessionTokenGenerator("session-key"),
		ConfirmationTokenSender:    account.NewFakeConfirmationTokenSender(),
	}
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rw
}

func TestPasswordResetFlow(t *testing.T) {
	d := newFakeDeps()
	router := NewRouter(d, services.InitServices(d))

	rw := serve(t, router, http.MethodPost, "/accounts/create", `{"username": "alice", "email": "alice@test.test"}`)
	require.Equal(t, http.StatusCreated, rw.Code)

	rw = serve(t, router, http.MethodPost, "/accounts/password/reset/token", `{"username": "alice"}`)
	require.Equal(t, http.StatusCreated, rw.Code)
	token := rw.Header().Get(sendtokenhandler.TEST_CONFIRMATION_TOKEN_HEADER)
	require.Equal(t, CONFIRMATION_TOKEN, token)

	resetBody := `{
		"username": "alice",
		"confirmation_token": "` + token + `",
		"new_password": "new-password",
		"new_password_confirm": "new-password"
	}`
	rw = serve(t, router, http.MethodPost, "/accounts/password/reset", resetBody)
	require.Equal(t, http.StatusCreated, rw.Code)

	rw = serve(t, router, http.MethodPost, "/auth/login", `{"username": "alice", "password": "generated-password"}`)
	require.Equal(t, http.StatusBadRequest, rw.Code)

	rw = serve(t, router, http.MethodPost, "/auth/login", `{"username": "alice", "password": "new-password"}`)
	require.Equal(t, http.StatusOK, rw.Code)
	require.JSONEq(t, `{"key": "session-key"}`, rw.Body.String())

	rw = serve(t, router, http.MethodPost, "/accounts/password/reset", resetBody)
	require.Equal(t, http.StatusBadRequest, rw.Code)
	body := map[string]string{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	require.Contains(t, body, "detail")
	require.Equal(t, "confirmation_token", body["field"])
}
