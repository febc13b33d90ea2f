package dbaccount

import (
	"accounts/internal/core/domain/account"
	"accounts/internal/db"
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	TOKEN_1 = account.ConfirmationToken("first-token")
	TOKEN_2 = account.ConfirmationToken("second-token")
)

type testLedgerSuite struct {
	suite.Suite
	pool              *pgxpool.Pool
	accountRepository *PgxAccountRepository
	ledger            *PgxConfirmationTokenLedger
}

func (suite *testLedgerSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.accountRepository = NewPgxAccountRepository(suite.pool)
	suite.ledger = NewPgxConfirmationTokenLedger(suite.pool)
}

func (suite *testLedgerSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testLedgerSuite) SetupTest() {
	_, err := suite.accountRepository.Create(context.Background(), account.CreateAccountInput{
		Username:     USERNAME,
		Email:        EMAIL,
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	})
	suite.Require().NoError(err)
}

func (suite *testLedgerSuite) TearDownTest() {
	db.TruncateTables(suite.T(), suite.pool)
}

func TestPgxConfirmationTokenLedger(t *testing.T) {
	suite.Run(t, new(testLedgerSuite))
}

func (s *testLedgerSuite) issue(token account.ConfirmationToken) {
	s.T().Helper()
	err := s.ledger.Issue(context.Background(), account.NewConfirmationTokenRecord(USERNAME, token, NOW, time.Hour))
	s.Require().NoError(err)
}

func (s *testLedgerSuite) validate(token account.ConfirmationToken, now time.Time) bool {
	s.T().Helper()
	ok, err := s.ledger.Validate(context.Background(), USERNAME, token, now)
	s.Require().NoError(err)
	return ok
}

func (s *testLedgerSuite) TestValidate() {
	s.issue(TOKEN_1)

	assert := s.Require()
	assert.True(s.validate(TOKEN_1, NOW))
	assert.True(s.validate(TOKEN_1, NOW.Add(time.Hour-time.Second)))
	assert.False(s.validate(TOKEN_1, NOW.Add(time.Hour)))
	assert.False(s.validate(TOKEN_2, NOW))
	assert.False(s.validate("", NOW))
}

func (s *testLedgerSuite) TestIssueSupersedes() {
	s.issue(TOKEN_1)
	s.issue(TOKEN_2)

	assert := s.Require()
	assert.False(s.validate(TOKEN_1, NOW))
	assert.True(s.validate(TOKEN_2, NOW))
}

func (s *testLedgerSuite) TestConsume() {
	s.issue(TOKEN_1)
	ctx := context.Background()

	ok, err := s.ledger.Consume(ctx, USERNAME, TOKEN_2, NOW)
	s.Require().NoError(err)
	s.Require().False(ok)

	ok, err = s.ledger.Consume(ctx, USERNAME, TOKEN_1, NOW.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().False(ok)

	ok, err = s.ledger.Consume(ctx, USERNAME, TOKEN_1, NOW)
	s.Require().NoError(err)
	s.Require().True(ok)

	ok, err = s.ledger.Consume(ctx, USERNAME, TOKEN_1, NOW)
	s.Require().NoError(err)
	s.Require().False(ok)
}

func (s *testLedgerSuite) TestDelete() {
	s.issue(TOKEN_1)

	s.Require().NoError(s.ledger.Delete(context.Background(), USERNAME))
	s.Require().NoError(s.ledger.Delete(context.Background(), USERNAME))
	s.Require().False(s.validate(TOKEN_1, NOW))
}

func (s *testLedgerSuite) TestTokenRemovedWithAccount() {
	s.issue(TOKEN_1)

	s.Require().NoError(s.accountRepository.Delete(context.Background(), USERNAME))
	s.Require().False(s.validate(TOKEN_1, NOW))
}

func (s *testLedgerSuite) TestIssueForUnknownAccount() {
	err := s.ledger.Issue(
		context.Background(),
		account.NewConfirmationTokenRecord("unknown", TOKEN_1, NOW, time.Hour),
	)
	s.Require().ErrorIs(err, account.ErrAccountDoesNotExist)
}
