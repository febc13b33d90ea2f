package app

import (
	"accounts/internal/app/deps"
	"accounts/internal/app/services"
	createaccount "accounts/internal/http/handlers/accounts/create_account"
	deleteaccount "accounts/internal/http/handlers/accounts/delete_account"
	editaccount "accounts/internal/http/handlers/accounts/edit_account"
	resetpassword "accounts/internal/http/handlers/accounts/reset_password"
	sendpasswordresettoken "accounts/internal/http/handlers/accounts/send_password_reset_token"
	"accounts/internal/http/handlers/auth"
	login "accounts/internal/http/handlers/auth/log_in"
	logout "accounts/internal/http/handlers/auth/log_out"
	"accounts/internal/http/metrics"
	"fmt"
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	isTestMode := deps.Config.IsTestMode

	accountsRouter := chi.NewRouter()
	accountsRouter.Use(auth.SetAuthTokenToContext)
	accountsRouter.Method(http.MethodPost, "/create", createaccount.New(s.CreateAccount))
	accountsRouter.Method(http.MethodPatch, "/", editaccount.New(s.EditAccount))
	accountsRouter.Method(http.MethodPost, "/delete", deleteaccount.New(s.DeleteAccount))
	accountsRouter.Method(
		http.MethodPost,
		"/password/reset/token",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	accountsRouter.Method(http.MethodPost, "/password/reset", resetpassword.New(s.ResetPassword))

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))

	router := chi.NewRouter()
	router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{sendpasswordresettoken.TEST_CONFIRMATION_TOKEN_HEADER},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/accounts", accountsRouter)
	router.Mount("/auth", authRouter)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    address,
	}
}
