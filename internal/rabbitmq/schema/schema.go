package schema

import (
	"accounts/internal/core/domain/account"
	c "accounts/internal/core/domain/common"
	"encoding/json"
	"time"
)

// ConfirmationToken is a queued request to deliver a password reset token.
type ConfirmationToken struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewConfirmationToken(n account.ConfirmationTokenNotification) *ConfirmationToken {
	return &ConfirmationToken{
		Username:  string(n.Username),
		Email:     string(n.Email),
		Token:     string(n.Token),
		ExpiresAt: n.ExpiresAt,
	}
}

func (t *ConfirmationToken) Notification() account.ConfirmationTokenNotification {
	return account.ConfirmationTokenNotification{
		Username:  account.Username(t.Username),
		Email:     c.Email(t.Email),
		Token:     account.ConfirmationToken(t.Token),
		ExpiresAt: t.ExpiresAt,
	}
}

func (t *ConfirmationToken) Marshal() ([]byte, error) {
	return json.Marshal(t)
}

func (t *ConfirmationToken) Unmarshal(data []byte) error {
	return json.Unmarshal(data, t)
}
