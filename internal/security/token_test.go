package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_AccessRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, 60, 60*24*7)

	token, err := m.GenerateAccessToken(7, "anita@example.com", "Anita")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "anita@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshRoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, 60, 60*24*7)

	token, err := m.GenerateRefreshToken(7, "anita@example.com")
	assert.NoError(t, err)

	claims, err := m.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewTokenManager(testSecret, 60, 60)
	verifier := NewTokenManager("another-secret-another-secret-xx", 60, 60)

	token, err := issuer.GenerateAccessToken(7, "anita@example.com", "Anita")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager(testSecret, -1, 60)

	token, err := m.GenerateAccessToken(7, "anita@example.com", "Anita")
	assert.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
