package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// SessionStore remembers revoked token ids until the tokens expire on their own.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SecretStore holds single-use magic-link secrets.
type SecretStore interface {
	Save(ctx context.Context, userID, secret string, ttl time.Duration) error
	// Consume reports whether the secret was valid, and burns it if so.
	Consume(ctx context.Context, userID, secret string) (bool, error)
}

type LinkMailer interface {
	SendMagicLink(ctx context.Context, to, link string) error
}
