// Package otp generates the numeric one-time codes mailed during registration.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	lowest  = 100000
	highest = 999999
)

// Generate returns a uniformly random 6-digit code in [100000, 999999].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(highest-lowest+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+lowest), nil
}
