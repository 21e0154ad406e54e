package uow

import (
	"context"
	"testing"
	"time"
	"ums/internal/core/domain/user"
	"ums/internal/db"
	dbuser "ums/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const EMAIL = "test@test.test"

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createInTransaction(commit bool) user.User {
	ctx := context.Background()
	tx, err := s.uow.Begin(ctx)
	s.Require().Nil(err)

	u, err := tx.Users().Create(ctx, user.CreateUserInput{
		Name:         "Alice",
		Email:        EMAIL,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	s.Require().Nil(err)

	err = tx.Sessions().Create(ctx, user.CreateSessionInput{UserID: u.ID, Token: "token", CreatedAt: u.CreatedAt})
	s.Require().Nil(err)

	if commit {
		s.Require().Nil(tx.Commit(ctx))
	} else {
		s.Require().Nil(tx.Rollback(ctx))
	}
	return u
}

func (s *testSuite) TestCommit() {
	created := s.createInTransaction(true)

	u, err := dbuser.NewPgxRepository(s.pool).GetByEmail(context.Background(), EMAIL)
	s.Require().Nil(err)
	s.Require().Equal(created.ID, u.ID)

	owner, err := dbuser.NewPgxSessionRepository(s.pool).GetUserByToken(context.Background(), "token")
	s.Require().Nil(err)
	s.Require().Equal(created.ID, owner.ID)
}

func (s *testSuite) TestRollback() {
	s.createInTransaction(false)

	_, err := dbuser.NewPgxRepository(s.pool).GetByEmail(context.Background(), EMAIL)
	s.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}
