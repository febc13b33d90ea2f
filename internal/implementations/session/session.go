package session

import (
	"accounts/internal/core/domain/account"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateToken() account.SessionToken {
	return account.SessionToken(uuid.NewString())
}
