package domain

import (
	"errors"
	"time"
)

var ErrTokenInvalid = errors.New("invalid session token")
var ErrTokenExpired = errors.New("session token expired")
var ErrForbidden = errors.New("access forbidden")

// Principal is the verified identity reconstructed from a valid session
// token. It is immutable and lives for the duration of one request.
//
// A Principal exists only if the token's signature verified against the
// process signing configuration and its expiry was still in the future
// at verification time.
type Principal struct {
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Email     string    `json:"email,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
