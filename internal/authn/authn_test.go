package authn_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatehouse/internal/authn"
	"github.com/aretw0/gatehouse/pkg/domain"
)

func TestStatic_Authenticate(t *testing.T) {
	auth := authn.NewStatic(map[string]domain.Identity{
		"tok-1001": {Subject: "usr_1001", Name: "Ada Lovelace", Email: "ada@example.com"},
	})
	ctx := context.Background()

	id, err := auth.Authenticate(ctx, "tok-1001")
	require.NoError(t, err)
	assert.Equal(t, "usr_1001", id.Subject)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "tok-1001", id.Credential, "the presented token becomes the delegated credential")

	_, err = auth.Authenticate(ctx, "tok-9999")
	assert.ErrorIs(t, err, authn.ErrUnknownToken)

	_, err = auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, authn.ErrUnknownToken, "the empty token never authenticates")
}

func TestJWT_Authenticate(t *testing.T) {
	secret := []byte("test-secret")
	auth := authn.NewJWT(secret)
	ctx := context.Background()

	signed, err := auth.Sign(domain.Identity{
		Subject: "usr_1001",
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
	}, time.Hour)
	require.NoError(t, err)

	id, err := auth.Authenticate(ctx, signed)
	require.NoError(t, err)
	assert.Equal(t, "usr_1001", id.Subject)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, signed, id.Credential, "the raw compact token is the delegated credential")
}

func TestJWT_AuthenticateExpired(t *testing.T) {
	auth := authn.NewJWT([]byte("test-secret"))

	signed, err := auth.Sign(domain.Identity{Subject: "usr_1001"}, -time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), signed)
	assert.ErrorIs(t, err, authn.ErrExpiredToken)
}

func TestJWT_AuthenticateWrongSecret(t *testing.T) {
	signed, err := authn.NewJWT([]byte("their-secret")).Sign(domain.Identity{Subject: "usr_1001"}, time.Hour)
	require.NoError(t, err)

	_, err = authn.NewJWT([]byte("our-secret")).Authenticate(context.Background(), signed)
	assert.ErrorIs(t, err, authn.ErrInvalidToken)
}

func TestJWT_AuthenticateRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "usr_1001"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = authn.NewJWT([]byte("test-secret")).Authenticate(context.Background(), signed)
	assert.ErrorIs(t, err, authn.ErrInvalidToken, "unsigned tokens must never authenticate")
}

func TestJWT_AuthenticateMissingSubject(t *testing.T) {
	secret := []byte("test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": "No Subject",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	_, err = authn.NewJWT(secret).Authenticate(context.Background(), signed)
	assert.ErrorIs(t, err, authn.ErrMissingSubject)
}

func TestJWT_AuthenticateGarbage(t *testing.T) {
	_, err := authn.NewJWT([]byte("test-secret")).Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, authn.ErrInvalidToken)
}
