package credentialgenerator

import (
	"accounts/internal/core/domain/account"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	passwordPattern          = regexp.MustCompile(`^[a-zA-Z0-9]{8,12}$`)
	confirmationTokenPattern = regexp.MustCompile(`^[a-z0-9]{64}$`)
)

func TestPasswordGenerator(t *testing.T) {
	generator := NewGenerator()
	passwords := make(map[account.RawPassword]struct{})
	lengths := make(map[int]int)
	for i := 0; i < 1000; i++ {
		password := generator.GeneratePassword()
		require.Regexp(t, passwordPattern, string(password))
		if _, ok := passwords[password]; ok {
			t.Fatalf("password already generated")
		}
		passwords[password] = struct{}{}
		lengths[len(password)]++
	}
	for length := MinPasswordLength; length <= MaxPasswordLength; length++ {
		require.Positive(t, lengths[length], "length %d never generated", length)
	}
}

func TestConfirmationTokenGenerator(t *testing.T) {
	generator := NewGenerator()
	tokens := make(map[account.ConfirmationToken]struct{})
	for i := 0; i < 100; i++ {
		token := generator.GenerateConfirmationToken()
		require.Regexp(t, confirmationTokenPattern, string(token))
		if _, ok := tokens[token]; ok {
			t.Fatalf("token %v already exists", token)
		}
		tokens[token] = struct{}{}
	}
}

func TestCharacterCoverage(t *testing.T) {
	generator := NewGenerator()
	seen := make(map[rune]struct{})
	for i := 0; i < 200; i++ {
		for _, r := range generator.GenerateConfirmationToken() {
			seen[r] = struct{}{}
		}
	}
	require.Len(t, seen, len(confirmationTokenChars))
}
