package ports

import (
	"context"
	"time"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

// UserRepository defines persistence for registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail returns any user holding either identifier, so
	// callers can report which field collided.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	// UpdateProfilePicture stores the relative path of the avatar file; an
	// empty path clears it.
	UpdateProfilePicture(ctx context.Context, id, path string) error
}

// OtpRepository defines persistence for registration verification codes.
// Upsert replaces any existing record for the email (replace-if-exists):
// only the newest code for an address is ever valid.
type OtpRepository interface {
	Upsert(ctx context.Context, email, code string, createdAt time.Time) error
	Find(ctx context.Context, email, code string) (*domain.VerificationCode, error)
	Delete(ctx context.Context, email string) error
}
