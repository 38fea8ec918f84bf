package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apdc/auth-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleBackoffice,
	}
}

func TestSigner_RoundTrip_AllFamilies(t *testing.T) {
	configs := []Config{
		{Family: FamilyHMAC, Strength: 256, Secret: "test-secret", TTL: time.Hour},
		{Family: FamilyHMAC, Strength: 512, Secret: "test-secret", TTL: time.Hour},
		{Family: FamilyRSA, Strength: 256, TTL: time.Hour},
		{Family: FamilyECDSA, Strength: 256, TTL: time.Hour},
		{Family: FamilyECDSA, Strength: 384, TTL: time.Hour},
		{Family: FamilyECDSA, Strength: 512, TTL: time.Hour},
	}

	codec := NewCodec(time.Hour)
	for _, cfg := range configs {
		signer, err := New(cfg)
		if err != nil {
			t.Fatalf("%s/%d: New: %v", cfg.Family, cfg.Strength, err)
		}

		signed, err := signer.Sign(codec.Encode(testUser(), time.Now()))
		if err != nil {
			t.Fatalf("%s/%d: Sign: %v", cfg.Family, cfg.Strength, err)
		}

		claims, err := signer.Verify(signed)
		if err != nil {
			t.Fatalf("%s/%d: Verify: %v", cfg.Family, cfg.Strength, err)
		}
		if claims["sub"] != "alice" || claims["role"] != "Backoffice" || claims["email"] != "alice@example.com" {
			t.Fatalf("%s/%d: claims mangled in round trip: %+v", cfg.Family, cfg.Strength, claims)
		}
	}
}

func TestSigner_RejectsUnknownSelections(t *testing.T) {
	bad := []Config{
		{Family: "DSA", Strength: 256, TTL: time.Hour},
		{Family: FamilyHMAC, Strength: 128, Secret: "s", TTL: time.Hour},
		{Family: FamilyRSA, Strength: 1024, TTL: time.Hour},
		{Family: FamilyECDSA, Strength: 224, TTL: time.Hour},
		{Family: FamilyHMAC, Strength: 256, TTL: time.Hour}, // no secret
		{Family: FamilyHMAC, Strength: 256, Secret: "s"},    // no TTL
	}
	for _, cfg := range bad {
		if _, err := New(cfg); err == nil {
			t.Fatalf("expected startup error for %+v", cfg)
		}
	}
}

func TestSigner_TamperedSignature(t *testing.T) {
	signer, err := New(Config{Family: FamilyHMAC, Strength: 256, Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	signed, err := signer.Sign(NewCodec(time.Hour).Encode(testUser(), time.Now()))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact three-part token, got %d parts", len(parts))
	}

	// Flip a character of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := signer.Verify(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSigner_WrongSecret(t *testing.T) {
	issuer, _ := New(Config{Family: FamilyHMAC, Strength: 256, Secret: "one", TTL: time.Hour})
	verifier, _ := New(Config{Family: FamilyHMAC, Strength: 256, Secret: "two", TTL: time.Hour})

	signed, err := issuer.Sign(NewCodec(time.Hour).Encode(testUser(), time.Now()))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := verifier.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSigner_AlgorithmConfusionRejected(t *testing.T) {
	hmacSigner, _ := New(Config{Family: FamilyHMAC, Strength: 256, Secret: "test-secret", TTL: time.Hour})
	ecdsaSigner, err := New(Config{Family: FamilyECDSA, Strength: 256, TTL: time.Hour})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	signed, err := hmacSigner.Sign(NewCodec(time.Hour).Encode(testUser(), time.Now()))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// A token from a different algorithm family must never verify,
	// regardless of its own validity.
	if _, err := ecdsaSigner.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSigner_ExpiredToken(t *testing.T) {
	signer, _ := New(Config{Family: FamilyHMAC, Strength: 256, Secret: "test-secret", TTL: time.Hour})
	codec := NewCodec(time.Hour)

	// Issue in the past so exp already elapsed; the signature itself
	// is still valid.
	signed, err := signer.Sign(codec.Encode(testUser(), time.Now().Add(-2*time.Hour)))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := signer.Verify(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSigner_MissingExpiryRejected(t *testing.T) {
	signer, _ := New(Config{Family: FamilyHMAC, Strength: 256, Secret: "test-secret", TTL: time.Hour})

	signed, err := signer.Sign(jwt.MapClaims{"sub": "alice", "role": "Admin"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := signer.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing exp, got %v", err)
	}
}

func TestSigner_GarbageInput(t *testing.T) {
	signer, _ := New(Config{Family: FamilyHMAC, Strength: 256, Secret: "test-secret", TTL: time.Hour})
	for _, raw := range []string{"not-a-token", "a.b", "a.b.c.d", "..", ""} {
		if _, err := signer.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("input %q: expected ErrTokenInvalid, got %v", raw, err)
		}
	}
}
