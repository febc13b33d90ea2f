package auth

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/services"
	"context"
	"errors"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedAccount(a account.Account) Input
}

type service[T Input, S any] struct {
	sessionRepository account.SessionRepository
	inner             services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	sessionRepository account.SessionRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionRepository: sessionRepository,
		inner:             inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(account.SessionToken)
	if !ok {
		return result, account.ErrUnauthorized
	}
	a, err := s.sessionRepository.GetAccountByToken(ctx, authToken)
	if errors.Is(err, account.ErrSessionDoesNotExist) {
		return result, account.ErrUnauthorized
	}
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedAccount(a).(T))
}

func WithAuthToken(ctx context.Context, token account.SessionToken) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}
