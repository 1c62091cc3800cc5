// Package security implements the parent gate: a PIN unlock that issues a
// short-lived token guarding import, export and full reset.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenLifetime bounds how long an unlocked parent gate stays open
const tokenLifetime = 10 * time.Minute

// ErrWrongPIN is returned for a PIN that does not match the stored hash
var ErrWrongPIN = errors.New("incorrect PIN")

// ParentGate verifies parent PINs and issues access tokens
type ParentGate struct {
	secret []byte
}

// NewParentGate creates a gate signing tokens with the given secret
func NewParentGate(secret string) *ParentGate {
	return &ParentGate{secret: []byte(secret)}
}

// HashPIN hashes a parent PIN for storage in settings
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// Unlock checks the PIN against the stored hash and returns a signed token
// on success. An empty stored hash means no gate is configured and any PIN
// is rejected.
func (g *ParentGate) Unlock(pin, storedHash string) (string, error) {
	if storedHash == "" {
		return "", ErrWrongPIN
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pin)); err != nil {
		return "", ErrWrongPIN
	}

	claims := jwt.RegisteredClaims{
		Subject:   "parent",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a previously issued parent token
func (g *ParentGate) Verify(tokenString string) error {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	claims := &jwt.RegisteredClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid parent token: %w", err)
	}
	if claims.Subject != "parent" {
		return errors.New("invalid parent token: wrong subject")
	}
	return nil
}
