package driving

import (
	"context"
	"time"
)

// AuthService gates the viewer behind a shared password.
type AuthService interface {
	// Login checks a password and issues a signed session token.
	Login(ctx context.Context, password string) (string, error)

	// Verify validates a session token.
	Verify(token string) error

	// Enabled reports whether a password is configured at all.
	Enabled() bool

	// TTL is the lifetime of issued tokens.
	TTL() time.Duration
}
