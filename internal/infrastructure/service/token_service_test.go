package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

func TestNewJWTTokenService_EmptySecret(t *testing.T) {
	_, err := NewJWTTokenService("", time.Hour)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	svc, err := NewJWTTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	token, expiresAt, err := svc.Issue("user-1", "user")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestVerify_GarbageToken(t *testing.T) {
	svc, err := NewJWTTokenService("test-secret", time.Hour)
	assert.NoError(t, err)

	_, err = svc.Verify("not.a.token")
	assert.True(t, shared.IsUnauthorized(err))
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewJWTTokenService("secret-one", time.Hour)
	assert.NoError(t, err)
	verifier, err := NewJWTTokenService("secret-two", time.Hour)
	assert.NoError(t, err)

	token, _, err := issuer.Issue("user-1", "user")
	assert.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.True(t, shared.IsUnauthorized(err))
}

func TestVerify_ExpiredToken(t *testing.T) {
	svc, err := NewJWTTokenService("test-secret", time.Hour)
	assert.NoError(t, err)
	svc.ttl = -time.Minute

	token, _, err := svc.Issue("user-1", "user")
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.True(t, shared.IsUnauthorized(err))
}
