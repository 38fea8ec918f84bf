package token

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apdc/auth-api/internal/core/domain"
)

// Claim names carried in every session token. The schema is part of
// the wire contract: any standard JWT verifier with the same key must
// be able to consume these tokens.
const (
	claimSubject = "sub"
	claimIssued  = "iat"
	claimExpires = "exp"
	claimRole    = "role"
	claimEmail   = "email"
)

// Codec builds and parses the session claim set.
type Codec struct {
	ttl time.Duration
}

func NewCodec(ttl time.Duration) *Codec {
	return &Codec{ttl: ttl}
}

// Encode produces the claim set for a user at the given issue time.
// Deterministic for identical user and timestamp: iat and exp are
// whole Unix seconds, exp = iat + TTL.
func (c *Codec) Encode(user *domain.User, now time.Time) jwt.MapClaims {
	iat := now.UTC().Truncate(time.Second)
	return jwt.MapClaims{
		claimSubject: user.Username,
		claimIssued:  iat.Unix(),
		claimExpires: iat.Add(c.ttl).Unix(),
		claimRole:    user.Role.String(),
		claimEmail:   user.Email,
	}
}

// Decode reconstructs a Principal from an already signature-verified
// claim set. Missing sub, exp or role claims and unrecognized role
// names are structural failures; the caller never sees a Principal
// built from them.
func (c *Codec) Decode(claims jwt.MapClaims) (*domain.Principal, error) {
	sub, ok := claims[claimSubject].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: missing sub claim", domain.ErrTokenInvalid)
	}

	exp, ok := numericClaim(claims, claimExpires)
	if !ok {
		return nil, fmt.Errorf("%w: missing exp claim", domain.ErrTokenInvalid)
	}

	roleName, ok := claims[claimRole].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing role claim", domain.ErrTokenInvalid)
	}
	role, err := domain.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	p := &domain.Principal{
		Username:  sub,
		Role:      role,
		ExpiresAt: time.Unix(exp, 0).UTC(),
	}
	if iat, ok := numericClaim(claims, claimIssued); ok {
		p.IssuedAt = time.Unix(iat, 0).UTC()
	}
	if email, ok := claims[claimEmail].(string); ok {
		p.Email = email
	}
	return p, nil
}

// numericClaim reads a Unix-seconds claim whether it still holds the
// int64 written at encode time or the float64 a JSON decode leaves
// behind.
func numericClaim(claims jwt.MapClaims, name string) (int64, bool) {
	switch v := claims[name].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
