package account

import (
	c "accounts/internal/core/domain/common"
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

const ConfirmationTokenLength = 64

// ConfirmationToken is the plaintext secret mailed to the account owner.
// Only its hash is ever persisted.
type ConfirmationToken string

func (t ConfirmationToken) String() string {
	return "***"
}

type ConfirmationTokenHash string

func HashConfirmationToken(token ConfirmationToken) ConfirmationTokenHash {
	sum := sha256.Sum256([]byte(token))
	return ConfirmationTokenHash(hex.EncodeToString(sum[:]))
}

// Matches compares in constant time.
func (h ConfirmationTokenHash) Matches(token ConfirmationToken) bool {
	if h == "" || token == "" {
		return false
	}
	actual := HashConfirmationToken(token)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(h)) == 1
}

// ConfirmationTokenRecord is the single live token of an account.
type ConfirmationTokenRecord struct {
	Username  Username
	Hash      ConfirmationTokenHash
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func NewConfirmationTokenRecord(
	username Username,
	token ConfirmationToken,
	issuedAt time.Time,
	ttl time.Duration,
) ConfirmationTokenRecord {
	return ConfirmationTokenRecord{
		Username:  username,
		Hash:      HashConfirmationToken(token),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}
}

func (r ConfirmationTokenRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

func (r ConfirmationTokenRecord) Accepts(token ConfirmationToken, now time.Time) bool {
	matches := r.Hash.Matches(token)
	return matches && !r.IsExpired(now)
}

type ConfirmationTokenGenerator interface {
	GenerateConfirmationToken() ConfirmationToken
}

// ConfirmationTokenLedger keeps at most one live token per account.
type ConfirmationTokenLedger interface {
	// Issue stores the record, superseding any previous token of the account.
	Issue(ctx context.Context, record ConfirmationTokenRecord) error
	Validate(ctx context.Context, username Username, token ConfirmationToken, now time.Time) (bool, error)
	// Consume validates the token and deletes it in one step.
	// It returns false when the token is absent, mismatched or expired.
	Consume(ctx context.Context, username Username, token ConfirmationToken, now time.Time) (bool, error)
	Delete(ctx context.Context, username Username) error
}

type ConfirmationTokenNotification struct {
	Username  Username
	Email     c.Email
	Token     ConfirmationToken
	ExpiresAt time.Time
}

type ConfirmationTokenSender interface {
	SendConfirmationToken(ctx context.Context, notification ConfirmationTokenNotification) error
}
