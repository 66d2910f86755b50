// Package security keeps the list of signed-out tokens.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"VidTube.com/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist stores revoked tokens in redis until they would have expired anyway.
type TokenBlacklist struct {
	redis *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{redis: client}
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return constants.RevokedTokenPrefix + hex.EncodeToString(sum[:])
}

// Revoke blacklists token until expiresAt. Tokens already expired are ignored.
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if token == "" || ttl <= 0 {
		return nil
	}
	return b.redis.Set(ctx, blacklistKey(token), 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.redis.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
