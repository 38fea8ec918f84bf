// Package memory provides the default in-process UserDirectory: a
// mutex-guarded map keyed by username. Concurrent registrations of the
// same username resolve first-write-wins; readers always see a
// consistent snapshot of a single record.
package memory

import (
	"context"
	"sync"

	"github.com/apdc/auth-api/internal/core/domain"
)

type Directory struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewDirectory() *Directory {
	return &Directory{users: make(map[string]domain.User)}
}

func (d *Directory) Lookup(_ context.Context, username string) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	// Copy out so callers can never mutate the stored record.
	clone := user
	return &clone, nil
}

func (d *Directory) Store(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	d.users[user.Username] = *user

	clone := *user
	return &clone, nil
}
