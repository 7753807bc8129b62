package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-reservation-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned by NewProvider when no signing secret is configured.
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Claims holds the JWT payload fields. The customer id travels in the
// registered "sub" claim.
type Claims struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a shared secret.
type Provider struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewProvider(secret string, expiry time.Duration) (*Provider, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Provider{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

func (p *Provider) Sign(c *domain.Customer) (string, error) {
	now := p.now()
	claims := Claims{
		Name:  c.Name,
		Role:  domain.RoleCustomer,
		Email: c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.CustomerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
