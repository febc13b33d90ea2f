package auth

import (
	"accounts/internal/core/domain/account"
	"accounts/internal/core/services/auth"
	"net/http"
	"strings"
)

const (
	AUTH_TOKEN_PREFIX  = "Token "
	AUTH_TOKEN_MAX_LEN = 1024
)

func ParseToken(r *http.Request) (token account.SessionToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	value, found := strings.CutPrefix(header, AUTH_TOKEN_PREFIX)
	if !found {
		return token, false
	}
	value = strings.TrimSpace(value)
	if value == "" || len(value) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return account.SessionToken(value), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithAuthToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
