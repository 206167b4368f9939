package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, CheckPassword("secret", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("secret", "not-a-hash"))
}

func TestIssueValidate(t *testing.T) {
	iss := NewIssuer("s3cr3t", time.Hour)
	id := uuid.New()

	token, err := iss.Issue(id)
	require.NoError(t, err)

	got, err := iss.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestValidateEdgeCases(t *testing.T) {
	id := uuid.New()
	good := NewIssuer("correct-secret", time.Hour)

	expired := NewIssuer("correct-secret", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(id)
	require.NoError(t, err)

	wrongSecretToken, err := NewIssuer("other-secret", time.Hour).Issue(id)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("correct-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expiredToken, ErrExpiredToken},
		{"wrong secret", wrongSecretToken, ErrInvalidToken},
		{"alg none", noneToken, ErrInvalidToken},
		{"non-uuid subject", badSubject, ErrInvalidToken},
		{"garbage", "not.a.jwt", ErrInvalidToken},
		{"empty", "", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := good.Validate(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewIssuerDefaultTTL(t *testing.T) {
	iss := NewIssuer("s", 0)
	assert.Equal(t, DefaultTokenTTL, iss.ttl)

	token, err := iss.Issue(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := UserIDFromContext(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
