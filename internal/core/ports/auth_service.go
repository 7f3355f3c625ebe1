package ports

import (
	"context"

	"github.com/greenpact/consulting-api/internal/core/domain"
)

// RegisterInput carries the fields submitted to complete a registration.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Password string
	OTP      string
}

// AuthResult is returned by flows that end in a signed session token.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	RequestOTP(ctx context.Context, email string) error
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, actorID, userID, newRole string) (*domain.User, error)
	SetProfilePicture(ctx context.Context, userID string, upload FileUpload) (string, error)
	RemoveProfilePicture(ctx context.Context, userID string) error
}
