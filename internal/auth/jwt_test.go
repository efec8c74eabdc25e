package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)

	token, err := s.GenerateToken("visitor-1")
	require.NoError(t, err)

	id, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "visitor-1", id)
}

func TestSigner_RejectsForeignSecret(t *testing.T) {
	token, err := NewSigner("other-secret", time.Hour).GenerateToken("visitor-1")
	require.NoError(t, err)

	_, err = NewSigner("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsExpired(t *testing.T) {
	s := NewSigner("test-secret", time.Minute)
	issued := time.Now()
	s.now = func() time.Time { return issued }

	token, err := s.GenerateToken("visitor-1")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_RejectsGarbageAndEmptySubject(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
