package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("s3cret", 0)
	tok, err := m.Generate("user-1")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTManager_TTLSetsExpiry(t *testing.T) {
	m := NewJWTManager("s3cret", time.Hour)
	tok, err := m.Generate("user-1")
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	tok, err := NewJWTManager("other", 0).Generate("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("s3cret", 0).Parse(tok)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("s3cret", 0)
	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	_, err := NewJWTManager("s3cret", 0).Parse("not-a-token")
	assert.Error(t, err)
}

func TestJWTManager_RejectsOtherIssuerAndAlg(t *testing.T) {
	m := NewJWTManager("s3cret", 0)

	foreign := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, foreign).SignedString(m.Secret)
	require.NoError(t, err)
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	own := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}}
	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS512, own).SignedString(m.Secret)
	require.NoError(t, err)
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTManager_ExpiryUsesClock(t *testing.T) {
	m := NewJWTManager("s3cret", time.Hour)
	base := time.Now()
	m.now = func() time.Time { return base }
	tok, err := m.Generate("user-1")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTManager_RequiresUserID(t *testing.T) {
	m := NewJWTManager("s3cret", 0)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer}}).SignedString(m.Secret)
	require.NoError(t, err)
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, errNoUserID)
}
