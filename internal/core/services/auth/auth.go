package auth

import (
	"context"
	e "ums/internal/core/domain/errors"
	"ums/internal/core/domain/user"
	"ums/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

func WithAuthToken(ctx context.Context, token user.SessionToken) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	sessionRepository user.SessionRepository
	inner             services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	sessionRepository user.SessionRepository,
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
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok || authToken == "" {
		return result, user.ErrSessionDoesNotExist
	}
	u, err := s.sessionRepository.GetUserByToken(ctx, authToken)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
