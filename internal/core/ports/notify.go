package ports

import "context"

// Mailer dispatches transactional email. Implementations must be safe for
// concurrent use; the flows treat delivery failures as domain errors, never
// as panics.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
	SendInterviewInvitation(ctx context.Context, to, applicantName, jobTitle string) error
}

// RateLimiter gates repeatable actions keyed by an arbitrary string.
type RateLimiter interface {
	// Allow reports whether the action identified by key may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}
