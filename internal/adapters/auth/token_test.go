package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunal2899/event-management-api/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	user := &domain.User{ID: 123, Email: "u@example.com", Name: "Ursula"}

	token, err := issuer.Issue(user, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "Ursula", claims.Name)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)
	user := &domain.User{ID: 42, Email: "a@x.com", Name: "Ann"}

	token, err := issuer.Issue(user, time.Hour)
	require.NoError(t, err)

	identity, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, "Ann", identity.Name)
}

func TestJWTVerifier_Verify_wrong_secret(t *testing.T) {
	issuer := NewJWTIssuer("secret-one")
	verifier := NewJWTVerifier("secret-two")

	token, err := issuer.Issue(&domain.User{ID: 1, Email: "a@x.com"}, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_expired(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)

	token, err := issuer.Issue(&domain.User{ID: 1, Email: "a@x.com"}, -time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_tampered(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)

	token, err := issuer.Issue(&domain.User{ID: 1, Email: "a@x.com"}, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = verifier.Verify(tampered)
	assert.Error(t, err)
}

func TestJWTVerifier_Verify_garbage(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	_, err := verifier.Verify("not-a-jwt")
	assert.Error(t, err)
}
