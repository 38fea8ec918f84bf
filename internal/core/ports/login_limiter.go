package ports

import "context"

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	// Exceeded reports whether the account has burned through its
	// allowed failures inside the current window.
	Exceeded(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
