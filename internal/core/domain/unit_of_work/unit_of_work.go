package uow

import (
	"context"
	"ums/internal/core/domain/user"
)

// Context is an open transaction. Exactly one of Commit or Rollback must be called.
type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
