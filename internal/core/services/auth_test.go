package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
)

func TestHashPassword(t *testing.T) {
	// echo -n "pondelok" | shasum -a 256
	assert.Equal(t, "da1bd623f5b674bf924b286f789b63bb417a47a263b108581fe1dc8341f5d4dd", HashPassword("pondelok"))
}

func TestAuthService_LoginAndVerify(t *testing.T) {
	svc := NewAuthService(HashPassword("secret"), "signing-key", 0)
	assert.True(t, svc.Enabled())
	assert.Equal(t, DefaultSessionTTL, svc.TTL())

	token, err := svc.Login(context.Background(), "secret")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, ":"), 3)
	assert.NoError(t, svc.Verify(token))
}

func TestAuthService_LoginErrors(t *testing.T) {
	svc := NewAuthService(HashPassword("secret"), "signing-key", time.Hour)

	_, err := svc.Login(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrPasswordRequired)

	_, err = svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestAuthService_VerifyRejectsForgery(t *testing.T) {
	svc := NewAuthService(HashPassword("secret"), "signing-key", time.Hour)
	token, err := svc.Login(context.Background(), "secret")
	require.NoError(t, err)

	parts := strings.Split(token, ":")

	assert.ErrorIs(t, svc.Verify(""), domain.ErrInvalidSession)
	assert.ErrorIs(t, svc.Verify("a:b"), domain.ErrInvalidSession)
	assert.ErrorIs(t, svc.Verify(parts[0]+":"+parts[1]+":deadbeef"), domain.ErrInvalidSession)
	assert.ErrorIs(t, svc.Verify("1:"+parts[1]+":"+parts[2]), domain.ErrInvalidSession)

	other := NewAuthService(HashPassword("secret"), "other-key", time.Hour)
	assert.ErrorIs(t, other.Verify(token), domain.ErrInvalidSession)
}

func TestAuthService_Expiry(t *testing.T) {
	svc := NewAuthService(HashPassword("secret"), "signing-key", time.Hour)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Login(context.Background(), "secret")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	assert.NoError(t, svc.Verify(token))

	svc.now = func() time.Time { return issued.Add(time.Hour) }
	assert.ErrorIs(t, svc.Verify(token), domain.ErrSessionExpired)
}

func TestAuthService_Disabled(t *testing.T) {
	svc := NewAuthService("", "key", 0)
	assert.False(t, svc.Enabled())
	assert.NoError(t, svc.Verify(""))

	token, err := svc.Login(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_HashIsCaseInsensitive(t *testing.T) {
	svc := NewAuthService(strings.ToUpper(HashPassword("secret")), "key", 0)
	_, err := svc.Login(context.Background(), "secret")
	assert.NoError(t, err)
}
