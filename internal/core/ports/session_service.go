package ports

import (
	"context"

	"github.com/apdc/auth-api/internal/core/domain"
)

// SessionService is the surface the transport layer consumes: account
// registration, session issuance, cookie-value authentication and
// role-ordered authorization.
type SessionService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	// IssueSession verifies credentials and returns a signed session
	// token plus the user it was issued for. Bad username and bad
	// password both come back as domain.ErrInvalidCredentials.
	IssueSession(ctx context.Context, username, password string) (string, *domain.User, error)
	// Authenticate turns a raw cookie value into a Principal.
	// An absent/empty cookie returns (nil, nil); tampered, malformed
	// and expired tokens return a nil Principal with a domain error
	// kept for diagnostics only.
	Authenticate(ctx context.Context, cookieValue string) (*domain.Principal, error)
	// Authorize reports whether the principal (possibly nil) clears
	// the required role level.
	Authorize(p *domain.Principal, required domain.Role) bool
}
