package jwtinfra

import (
	"testing"
	"time"

	"github.com/go-reservation-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() *domain.Customer {
	return &domain.Customer{CustomerID: "c1", Name: "Ana", Email: "ana@x.com", IsVerified: true}
}

func TestNewProvider_RequiresSecret(t *testing.T) {
	_, err := NewProvider("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestSignVerify_RoundTripClaims(t *testing.T) {
	p, err := NewProvider("test-secret", time.Hour)
	require.NoError(t, err)

	signed, err := p.Sign(testCustomer())
	require.NoError(t, err)

	claims, err := p.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "c1", claims.Subject)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerify_WrongSecret(t *testing.T) {
	a, _ := NewProvider("secret-a", time.Hour)
	b, _ := NewProvider("secret-b", time.Hour)

	signed, err := a.Sign(testCustomer())
	require.NoError(t, err)
	_, err = b.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	p, _ := NewProvider("test-secret", time.Hour)
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, err := p.Sign(testCustomer())
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.Verify(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	p, _ := NewProvider("test-secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "c1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = p.Verify(signed)
	assert.Error(t, err)
}
