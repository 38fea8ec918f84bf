package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/apdc/auth-api/internal/core/domain"
)

func TestDirectory_StoreAndLookup(t *testing.T) {
	dir := NewDirectory()

	stored, err := dir.Store(context.Background(), &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleRegular,
	})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if stored.Username != "alice" {
		t.Fatalf("stored username = %q", stored.Username)
	}

	found, err := dir.Lookup(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found.Email != "alice@example.com" || found.Role != domain.RoleRegular {
		t.Fatalf("unexpected record: %+v", found)
	}
}

func TestDirectory_LookupUnknown(t *testing.T) {
	dir := NewDirectory()
	if _, err := dir.Lookup(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDirectory_DuplicateKeepsFirstRecord(t *testing.T) {
	dir := NewDirectory()

	_, err := dir.Store(context.Background(), &domain.User{Username: "bob", Email: "first@example.com"})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := dir.Store(context.Background(), &domain.User{Username: "bob", Email: "second@example.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	found, err := dir.Lookup(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found.Email != "first@example.com" {
		t.Fatalf("duplicate store replaced the original: %+v", found)
	}
}

func TestDirectory_LookupReturnsCopy(t *testing.T) {
	dir := NewDirectory()
	_, _ = dir.Store(context.Background(), &domain.User{Username: "carol", Role: domain.RoleRegular})

	first, _ := dir.Lookup(context.Background(), "carol")
	first.Role = domain.RoleAdmin

	second, _ := dir.Lookup(context.Background(), "carol")
	if second.Role != domain.RoleRegular {
		t.Fatalf("caller mutation reached the stored record")
	}
}

func TestDirectory_ConcurrentRegistrations(t *testing.T) {
	dir := NewDirectory()

	var wg sync.WaitGroup
	created := make([]error, 16)
	for i := range created {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, created[i] = dir.Store(context.Background(), &domain.User{Username: "dave"})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range created {
		if err == nil {
			wins++
		} else if !errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("exactly one concurrent registration should win, got %d", wins)
	}
}
