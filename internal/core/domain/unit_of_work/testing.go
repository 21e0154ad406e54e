package uow

import (
	"context"
	"fmt"
	"ums/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	WasRollbackCalled bool
	WasCommitCalled   bool
}

func NewFakeUnitOfWorkContext(
	userRepository *user.FakeUserRepository,
	sessionRepository *user.FakeSessionRepository,
) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{
		UserRepository:    userRepository,
		SessionRepository: sessionRepository,
	}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

func (c *FakeUnitOfWorkContext) Sessions() user.SessionRepository {
	return c.SessionRepository
}

type FakeUnitOfWork struct {
	Context          *FakeUnitOfWorkContext
	ReturnBeginError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	userRepository := user.NewFakeUserRepository()
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(
			userRepository,
			user.NewFakeSessionRepository(userRepository),
		),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnBeginError {
		return nil, fmt.Errorf("could not begin transaction")
	}
	return u.Context, nil
}
