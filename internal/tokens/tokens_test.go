package tokens

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skirsanov/gadgetshop/internal/models"
)

func testIssuer() *Issuer {
	return &Issuer{
		JWTSecret:     []byte("test_jwt_secret"),
		RefreshSecret: []byte("test_refresh_secret"),
	}
}

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Email: "test_user@example.com",
		Role:  "user",
	}
}

func TestSignAccessToken(t *testing.T) {
	issuer := testIssuer()
	user := testUser()

	token, err := issuer.SignAccessToken(user)
	require.NoError(t, err)
	require.True(t, IsWellFormed(token))

	claims, err := AccessClaimsFromToken(token, issuer.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.Subject)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, "user", claims.Role)
}

func TestSignRefreshToken(t *testing.T) {
	issuer := testIssuer()
	user := testUser()

	token, err := issuer.SignRefreshToken(user)
	require.NoError(t, err)
	require.True(t, IsWellFormed(token))

	claims, err := RefreshClaimsFromToken(token, issuer.RefreshSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.Subject)

	// refresh tokens are signed with a distinct secret
	_, err = RefreshClaimsFromToken(token, issuer.JWTSecret)
	require.Error(t, err)
}

func TestRefreshTokensDistinctWithinSameSecond(t *testing.T) {
	issuer := testIssuer()
	user := testUser()

	// back-to-back issues share the same second-precision exp, so only the
	// jti keeps the strings apart
	first, err := issuer.SignRefreshToken(user)
	require.NoError(t, err)
	second, err := issuer.SignRefreshToken(user)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	firstClaims, err := RefreshClaimsFromToken(first, issuer.RefreshSecret)
	require.NoError(t, err)
	secondClaims, err := RefreshClaimsFromToken(second, issuer.RefreshSecret)
	require.NoError(t, err)
	require.NotEmpty(t, firstClaims.ID)
	require.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestSignFailsWithoutSecret(t *testing.T) {
	issuer := &Issuer{}
	user := testUser()

	_, err := issuer.SignAccessToken(user)
	require.ErrorIs(t, err, ErrNoSecret)

	_, err = issuer.SignRefreshToken(user)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestAccessClaimsRejectsTampered(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.SignAccessToken(testUser())
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token+"x", issuer.JWTSecret)
	require.Error(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other_secret"))
	require.Error(t, err)
}

func TestIsWellFormed(t *testing.T) {
	require.False(t, IsWellFormed(""))
	require.False(t, IsWellFormed("a.b"))
	require.False(t, IsWellFormed("a.b.c.d"))
	require.True(t, IsWellFormed("a.b.c"))
}
