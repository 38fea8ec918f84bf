package ports

import (
	"context"

	"github.com/apdc/auth-api/internal/core/domain"
)

// UserDirectory is the storage capability the auth core consumes.
// Implementations own their own concurrency discipline; the core only
// requires that a Lookup reflects a consistent snapshot for the
// duration of one request.
type UserDirectory interface {
	// Lookup returns the record for username or domain.ErrUserNotFound.
	Lookup(ctx context.Context, username string) (*domain.User, error)
	// Store persists a new record; a taken username yields
	// domain.ErrUserExists and leaves the existing record unchanged.
	Store(ctx context.Context, user *domain.User) (*domain.User, error)
}
