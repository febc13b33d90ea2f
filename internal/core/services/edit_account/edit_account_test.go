package editaccount

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const USERNAME = account.Username("test")

var NOW time.Time = time.Now().UTC()

type suite struct {
	log         *logging.FakeLogger
	accountRepo *account.FakeAccountRepository
	hasher      *account.FakePasswordHasher
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	s := &suite{
		log:         logging.NewFakeLogger(),
		accountRepo: account.NewFakeAccountRepository(),
		hasher:      account.NewFakePasswordHasher(),
	}
	for _, a := range []account.CreateAccountInput{
		{Username: USERNAME, Email: "test@test.test", PasswordHash: hashPassword("old", s.hasher)},
		{Username: "other", Email: "other@test.test", PasswordHash: hashPassword("other", s.hasher)},
	} {
		_, err := s.accountRepo.Create(context.Background(), a)
		require.NoError(t, err)
	}
	return s
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.accountRepo, s.hasher, func() time.Time { return NOW })
}

func (s *suite) authenticatedAccount(t *testing.T) account.Account {
	t.Helper()
	a, err := s.accountRepo.GetByUsername(context.Background(), USERNAME)
	require.NoError(t, err)
	return a
}

func TestPasswordSuccessfullyChanged(t *testing.T) {
	cases := []struct {
		id          string
		newPassword string
	}{
		{id: "1", newPassword: "new-password"},
		{id: "2", newPassword: "old"},
		{id: "3", newPassword: "x"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			suite := setupSuite(t)
			service := suite.createService()

			// Exercise ---
			input := Input{NewPassword: account.RawPassword(testcase.newPassword)}
			input.Account = suite.authenticatedAccount(t)
			result, err := service.Run(context.Background(), input)

			// Verify ---
			require.NoError(t, err)
			require.Equal(t, NOW, result.Account.UpdatedAt)
			assertPasswordValid(t, suite, testcase.newPassword)
		})
	}
}

func TestEmailChanged(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	service := suite.createService()

	// Exercise ---
	input := Input{
		NewPassword: account.RawPassword("new-password"),
		Email:       c.NewOptional(c.Email("new@test.test"), true),
	}
	input.Account = suite.authenticatedAccount(t)
	result, err := service.Run(context.Background(), input)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, c.Email("new@test.test"), result.Account.Email)
}

func TestEmptyPassword(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	service := suite.createService()

	// Exercise ---
	input := Input{NewPassword: account.RawPassword("")}
	input.Account = suite.authenticatedAccount(t)
	_, err := service.Run(context.Background(), input)

	// Verify ---
	var validationErr *e.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "password", validationErr.Field)
	assertPasswordValid(t, suite, "old")
}

func TestEmailTaken(t *testing.T) {
	// Setup ---
	suite := setupSuite(t)
	service := suite.createService()

	// Exercise ---
	input := Input{
		NewPassword: account.RawPassword("new-password"),
		Email:       c.NewOptional(c.Email("other@test.test"), true),
	}
	input.Account = suite.authenticatedAccount(t)
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, account.ErrEmailAlreadyExists)
	assertPasswordValid(t, suite, "old")
}

func hashPassword(raw string, hasher account.PasswordHasher) account.PasswordHash {
	hash, err := hasher.HashPassword(account.RawPassword(raw))
	if err != nil {
		panic(err)
	}
	return hash
}

func assertPasswordValid(t *testing.T, suite *suite, password string) {
	t.Helper()

	a, err := suite.accountRepo.GetByUsername(context.Background(), USERNAME)
	require.NoError(t, err)

	isValid := suite.hasher.ValidatePassword(account.RawPassword(password), a.PasswordHash)
	require.True(t, isValid)
}
