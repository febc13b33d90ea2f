package sendpasswordresettoken

import (
	"accounts/internal/core/domain/account"
	"accounts/internal/core/domain/logging"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var errTest = fmt.Errorf("test error")

type stubIssueService struct {
	result Result
	err    error
}

func (s *stubIssueService) Run(ctx context.Context, input Input) (Result, error) {
	return s.result, s.err
}

func issuedResult() Result {
	return Result{
		IsIssued: true,
		Notification: account.ConfirmationTokenNotification{
			Username:  USERNAME,
			Email:     EMAIL,
			Token:     TOKEN_1,
			ExpiresAt: NOW.Add(time.Hour),
		},
	}
}

type testSendingSuite struct {
	suite.Suite
	Logger *logging.FakeLogger
	Sender *account.FakeConfirmationTokenSender
}

func (s *testSendingSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.Sender = account.NewFakeConfirmationTokenSender()
}

func TestSendConfirmationTokenService(t *testing.T) {
	suite.Run(t, new(testSendingSuite))
}

func (s *testSendingSuite) TestTokenSent() {
	service := NewWithTokenSending(s.Logger, s.Sender, &stubIssueService{result: issuedResult()})

	result, err := service.Run(context.Background(), Input{Username: USERNAME})

	assert := s.Require()
	assert.NoError(err)
	assert.True(result.IsDelivered)
	assert.Equal(1, s.Sender.SentCount())
	assert.Equal(issuedResult().Notification, s.Sender.LastSent())
}

func (s *testSendingSuite) TestSenderFailureKeepsToken() {
	s.Sender.ReturnError = true
	service := NewWithTokenSending(s.Logger, s.Sender, &stubIssueService{result: issuedResult()})

	result, err := service.Run(context.Background(), Input{Username: USERNAME})

	assert := s.Require()
	assert.NoError(err)
	assert.True(result.IsIssued)
	assert.False(result.IsDelivered)
	assert.Equal(1, s.Logger.CountLevel(logging.ERROR))
}

func (s *testSendingSuite) TestInnerError() {
	service := NewWithTokenSending(s.Logger, s.Sender, &stubIssueService{err: errTest})

	_, err := service.Run(context.Background(), Input{Username: USERNAME})

	assert := s.Require()
	assert.True(errors.Is(err, errTest))
	assert.Equal(0, s.Sender.SentCount())
}

func (s *testSendingSuite) TestNothingSentWhenNotIssued() {
	service := NewWithTokenSending(s.Logger, s.Sender, &stubIssueService{})

	result, err := service.Run(context.Background(), Input{Username: "unknown"})

	assert := s.Require()
	assert.NoError(err)
	assert.False(result.IsDelivered)
	assert.Equal(0, s.Sender.SentCount())
}
