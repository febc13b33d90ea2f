package deleteaccount

import (
	"accounts/internal/core/domain/account"
	"accounts/internal/core/domain/logging"
	uow "accounts/internal/core/domain/unit_of_work"
	"accounts/internal/core/services"
	"accounts/internal/core/services/auth"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	USERNAME      = account.Username("test")
	EMAIL         = "test@test.test"
	SESSION_TOKEN = account.SessionToken("test-session-token")
	TOKEN         = account.ConfirmationToken("test-confirmation-token")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger     *logging.FakeLogger
	UnitOfWork *uow.FakeUnitOfWork
	Service    services.Service[Input, Result]
}

func (s *testSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.UnitOfWork = uow.NewFakeUnitOfWork()
	s.Service = auth.WithAuthentication(
		s.UnitOfWork.Context.SessionRepository,
		New(s.Logger, s.UnitOfWork),
	)

	ctx := context.Background()
	_, err := s.UnitOfWork.Context.AccountRepository.Create(ctx, account.CreateAccountInput{
		Username:     USERNAME,
		Email:        EMAIL,
		PasswordHash: "test-hash",
		CreatedAt:    NOW,
	})
	s.Require().NoError(err)
	err = s.UnitOfWork.Context.SessionRepository.Create(ctx, account.CreateSessionInput{
		Username:  USERNAME,
		Token:     SESSION_TOKEN,
		CreatedAt: NOW,
	})
	s.Require().NoError(err)
	err = s.UnitOfWork.Context.TokenLedger.Issue(
		ctx,
		account.NewConfirmationTokenRecord(USERNAME, TOKEN, NOW, time.Hour),
	)
	s.Require().NoError(err)
}

func TestDeleteAccountService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	ctx := auth.WithAuthToken(context.Background(), SESSION_TOKEN)

	_, err := s.Service.Run(ctx, Input{})

	assert := s.Require()
	assert.NoError(err)
	assert.True(s.UnitOfWork.Context.WasCommitCalled)
	assert.Empty(s.UnitOfWork.Context.AccountRepository.Accounts)
	assert.Empty(s.UnitOfWork.Context.TokenLedger.Records)

	_, err = s.UnitOfWork.Context.SessionRepository.GetAccountByToken(context.Background(), SESSION_TOKEN)
	assert.ErrorIs(err, account.ErrSessionDoesNotExist)
}

func (s *testSuite) TestUnauthorized() {
	cases := []struct {
		id  string
		ctx context.Context
	}{
		{id: "no token", ctx: context.Background()},
		{id: "unknown token", ctx: auth.WithAuthToken(context.Background(), "unknown")},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.Service.Run(testcase.ctx, Input{})

			assert := s.Require()
			assert.ErrorIs(err, account.ErrUnauthorized)
			assert.Len(s.UnitOfWork.Context.AccountRepository.Accounts, 1)
			assert.Len(s.UnitOfWork.Context.TokenLedger.Records, 1)
		})
	}
}

func (s *testSuite) TestRollbackOnRepositoryError() {
	ctx := auth.WithAuthToken(context.Background(), SESSION_TOKEN)
	inner := New(s.Logger, s.UnitOfWork)
	a, err := s.UnitOfWork.Context.AccountRepository.GetByUsername(ctx, USERNAME)
	s.Require().NoError(err)
	s.UnitOfWork.Context.AccountRepository.ReturnError = true

	_, err = inner.Run(ctx, Input{Account: a})

	assert := s.Require()
	assert.Error(err)
	assert.True(s.UnitOfWork.Context.WasRollbackCalled)
	assert.False(s.UnitOfWork.Context.WasCommitCalled)
	assert.Equal(1, s.Logger.CountLevel(logging.ERROR))
}
