package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const magicSecretPrefix = "magic:"

// SecretStore keys each secret by user and value, so a wrong guess never burns a valid link.
type SecretStore struct {
	client *redis.Client
}

func NewSecretStore(client *redis.Client) *SecretStore {
	return &SecretStore{client: client}
}

func secretKey(userID, secret string) string {
	return magicSecretPrefix + userID + ":" + secret
}

func (s *SecretStore) Save(ctx context.Context, userID, secret string, ttl time.Duration) error {
	if err := s.client.Set(ctx, secretKey(userID, secret), 1, ttl).Err(); err != nil {
		return fmt.Errorf("save magic secret: %w", err)
	}
	return nil
}

// Consume deletes the secret. Only the caller that deleted it gets true.
func (s *SecretStore) Consume(ctx context.Context, userID, secret string) (bool, error) {
	n, err := s.client.Del(ctx, secretKey(userID, secret)).Result()
	if err != nil {
		return false, fmt.Errorf("consume magic secret: %w", err)
	}
	return n == 1, nil
}
