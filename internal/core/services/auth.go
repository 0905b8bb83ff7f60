package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/core/ports/driving"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// DefaultSessionTTL is how long a session token stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// HashPassword returns the hex SHA-256 digest stored in configuration.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// AuthService checks the shared viewer password and issues session tokens of
// the form "<unix-ms>:<nonce>:<hmac>".
type AuthService struct {
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthService creates an auth service. An empty passwordHash disables the
// gate: Verify accepts everything and Login accepts any non-empty password.
func NewAuthService(passwordHash, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{
		passwordHash: strings.ToLower(strings.TrimSpace(passwordHash)),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
}

// Enabled reports whether a password is configured.
func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

// TTL returns the session lifetime.
func (s *AuthService) TTL() time.Duration {
	return s.ttl
}

// Login checks password and returns a fresh session token.
func (s *AuthService) Login(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", domain.ErrPasswordRequired
	}
	if s.Enabled() {
		got := HashPassword(password)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.passwordHash)) != 1 {
			return "", domain.ErrInvalidPassword
		}
	}

	ts := strconv.FormatInt(s.now().UnixMilli(), 10)
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ts + ":" + nonce + ":" + s.sign(ts, nonce), nil
}

// Verify checks a token's signature and age.
func (s *AuthService) Verify(token string) error {
	if !s.Enabled() {
		return nil
	}

	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return domain.ErrInvalidSession
	}
	ts, nonce, sig := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(sig), []byte(s.sign(ts, nonce))) {
		return domain.ErrInvalidSession
	}

	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return domain.ErrInvalidSession
	}
	if s.now().Sub(time.UnixMilli(issued)) >= s.ttl {
		return domain.ErrSessionExpired
	}
	return nil
}

func (s *AuthService) sign(ts, nonce string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(ts + ":" + nonce))
	return hex.EncodeToString(mac.Sum(nil))
}
