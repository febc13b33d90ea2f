package tokenledger

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

const (
	fieldHash      = "hash"
	fieldIssuedAt  = "issued_at"
	fieldExpiresAt = "expires_at"
)

// Redis keeps one hash per account under "confirmation-token::<username>".
// Keys expire at the token expiry so stale tokens vanish on their own.
type Redis struct {
	redisClient *redis.Client
}

func NewRedis(redisClient *redis.Client) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient}
}

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func key(username account.Username) string {
	return "confirmation-token::" + string(username)
}

func (r *Redis) Issue(ctx context.Context, record account.ConfirmationTokenRecord) error {
	k := key(record.Username)
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(
			ctx,
			k,
			fieldHash, string(record.Hash),
			fieldIssuedAt, record.IssuedAt.UTC().Format(time.RFC3339Nano),
			fieldExpiresAt, record.ExpiresAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.ExpireAt(ctx, k, record.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not issue confirmation token for %s: %w", record.Username, err)
	}
	return nil
}

func (r *Redis) Validate(
	ctx context.Context,
	username account.Username,
	token account.ConfirmationToken,
	now time.Time,
) (bool, error) {
	record, ok, err := r.get(ctx, r.redisClient, username)
	if err != nil || !ok {
		return false, err
	}
	return record.Accepts(token, now), nil
}

func (r *Redis) Consume(
	ctx context.Context,
	username account.Username,
	token account.ConfirmationToken,
	now time.Time,
) (bool, error) {
	k := key(username)
	isConsumed := false
	err := r.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		record, ok, err := r.get(ctx, tx, username)
		if err != nil || !ok || !record.Accepts(token, now) {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, k)
			return nil
		})
		if err == nil {
			isConsumed = true
		}
		return err
	}, k)
	if errors.Is(err, redis.TxFailedErr) {
		// Another request changed the token in between.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not consume confirmation token for %s: %w", username, err)
	}
	return isConsumed, nil
}

func (r *Redis) Delete(ctx context.Context, username account.Username) error {
	if err := r.redisClient.Del(ctx, key(username)).Err(); err != nil {
		return fmt.Errorf("could not delete confirmation token for %s: %w", username, err)
	}
	return nil
}

func (r *Redis) get(
	ctx context.Context,
	client hashReader,
	username account.Username,
) (record account.ConfirmationTokenRecord, ok bool, err error) {
	values, err := client.HGetAll(ctx, key(username)).Result()
	if err != nil {
		return record, false, fmt.Errorf("could not get confirmation token for %s: %w", username, err)
	}
	if len(values) == 0 {
		return record, false, nil
	}

	issuedAt, err := time.Parse(time.RFC3339Nano, values[fieldIssuedAt])
	if err != nil {
		return record, false, fmt.Errorf("invalid confirmation token issue time for %s: %w", username, err)
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, values[fieldExpiresAt])
	if err != nil {
		return record, false, fmt.Errorf("invalid confirmation token expiry for %s: %w", username, err)
	}
	return account.ConfirmationTokenRecord{
		Username:  username,
		Hash:      account.ConfirmationTokenHash(values[fieldHash]),
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, true, nil
}
