// Package token implements the signing configuration and claim codec
// for session tokens. Algorithm-family dispatch (HMAC vs RSA vs ECDSA)
// stays inside this package; callers only ever see Sign and Verify.
package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apdc/auth-api/internal/core/domain"
)

// Family selects the signing algorithm family.
type Family string

const (
	FamilyHMAC  Family = "HMAC"
	FamilyRSA   Family = "RSA"
	FamilyECDSA Family = "ECDSA"
)

const rsaKeyBits = 2048

// Config describes the signing setup chosen at process startup.
// It is immutable once a Signer has been built from it.
type Config struct {
	Family   Family
	Strength int    // 256, 384 or 512
	Secret   string // pre-shared secret, HMAC only
	TTL      time.Duration
}

// Signer holds the resolved method and key material for one process
// lifetime. Safe for concurrent use: nothing is mutated after New.
type Signer struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	ttl       time.Duration
}

// New resolves the configured family and strength into a ready
// Signer. Unknown selections and key-generation failures are startup
// errors; there is no silent fallback.
func New(cfg Config) (*Signer, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("token: expiration duration must be positive")
	}

	s := &Signer{ttl: cfg.TTL}

	switch cfg.Family {
	case FamilyHMAC:
		if cfg.Secret == "" {
			return nil, errors.New("token: HMAC requires a configured secret")
		}
		method, err := hmacMethod(cfg.Strength)
		if err != nil {
			return nil, err
		}
		s.method = method
		s.signKey = []byte(cfg.Secret)
		s.verifyKey = []byte(cfg.Secret)

	case FamilyRSA:
		method, err := rsaMethod(cfg.Strength)
		if err != nil {
			return nil, err
		}
		key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
		if err != nil {
			return nil, fmt.Errorf("token: generate RSA key: %w", err)
		}
		s.method = method
		s.signKey = key
		s.verifyKey = &key.PublicKey

	case FamilyECDSA:
		method, curve, err := ecdsaMethod(cfg.Strength)
		if err != nil {
			return nil, err
		}
		key, err := ecdsa.GenerateKey(curve, rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("token: generate ECDSA key: %w", err)
		}
		s.method = method
		s.signKey = key
		s.verifyKey = &key.PublicKey

	default:
		return nil, fmt.Errorf("token: unsupported algorithm family %q", cfg.Family)
	}

	return s, nil
}

// Asymmetric reports whether the key pair is generated per process,
// which invalidates previously issued tokens on every restart.
func (s *Signer) Asymmetric() bool {
	_, hmac := s.method.(*jwt.SigningMethodHMAC)
	return !hmac
}

// TTL returns the configured session lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Algorithm returns the JWA algorithm name in use (e.g. "HS256").
func (s *Signer) Algorithm() string { return s.method.Alg() }

// Sign serializes and signs the claim set into a compact token.
func (s *Signer) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the raw claim set.
// The signature is established before any claim is trusted, so a
// forged token cannot buy itself a future expiry. Failures map to
// domain.ErrTokenExpired or domain.ErrTokenInvalid.
func (s *Signer) Verify(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.verifyKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func hmacMethod(strength int) (jwt.SigningMethod, error) {
	switch strength {
	case 256:
		return jwt.SigningMethodHS256, nil
	case 384:
		return jwt.SigningMethodHS384, nil
	case 512:
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("token: unsupported HMAC strength %d", strength)
	}
}

func rsaMethod(strength int) (jwt.SigningMethod, error) {
	switch strength {
	case 256:
		return jwt.SigningMethodRS256, nil
	case 384:
		return jwt.SigningMethodRS384, nil
	case 512:
		return jwt.SigningMethodRS512, nil
	default:
		return nil, fmt.Errorf("token: unsupported RSA strength %d", strength)
	}
}

// ecdsaMethod pairs each strength with the curve JWA mandates for it
// (ES512 runs on P-521).
func ecdsaMethod(strength int) (jwt.SigningMethod, elliptic.Curve, error) {
	switch strength {
	case 256:
		return jwt.SigningMethodES256, elliptic.P256(), nil
	case 384:
		return jwt.SigningMethodES384, elliptic.P384(), nil
	case 512:
		return jwt.SigningMethodES512, elliptic.P521(), nil
	default:
		return nil, nil, fmt.Errorf("token: unsupported ECDSA strength %d", strength)
	}
}
