package credentialgenerator

import (
	"accounts/internal/core/domain/account"
	"crypto/rand"
	"math/big"
)

const (
	passwordChars          = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	confirmationTokenChars = "abcdefghijklmnopqrstuvwxyz0123456789"

	MinPasswordLength = 8
	MaxPasswordLength = 12
)

// Generator produces passwords and confirmation tokens from crypto/rand.
// It panics if the system randomness source fails.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GeneratePassword() account.RawPassword {
	length := MinPasswordLength + randomInt(MaxPasswordLength-MinPasswordLength+1)
	return account.RawPassword(randomString(passwordChars, length))
}

func (g *Generator) GenerateConfirmationToken() account.ConfirmationToken {
	return account.ConfirmationToken(randomString(confirmationTokenChars, account.ConfirmationTokenLength))
}

func randomString(chars string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = chars[randomInt(len(chars))]
	}
	return string(b)
}

func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("Could not read from the system randomness source: " + err.Error())
	}
	return int(v.Int64())
}
