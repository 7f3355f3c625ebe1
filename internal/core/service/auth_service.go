package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

const profilePictureDir = "profile_pictures"

// AuthService implements the OTP-gated registration flow, login, and the
// account-management operations that hang off the user store.
type AuthService struct {
	users     ports.UserRepository
	otps      ports.OtpRepository
	mailer    ports.Mailer
	files     ports.FileStore
	limiter   ports.RateLimiter
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	otps ports.OtpRepository,
	mailer ports.Mailer,
	files ports.FileStore,
	limiter ports.RateLimiter,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		users:     users,
		otps:      otps,
		mailer:    mailer,
		files:     files,
		limiter:   limiter,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// RequestOTP issues a fresh verification code for an unregistered email and
// mails it. A new request replaces any outstanding code for the address and
// restarts the expiry window.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, "otp:"+email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("otp rate-limit check failed, allowing request")
		} else if !ok {
			return domain.ErrTooManyRequests
		}
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if existing != nil {
		return domain.ErrEmailTaken
	}

	code := generateOTP()
	if err := s.otps.Upsert(ctx, email, code, time.Now().UTC()); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	if err := s.mailer.SendOTP(ctx, email, code); err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to send OTP email")
		return domain.ErrMailDelivery
	}

	s.logger.Info().Str("email", email).Msg("OTP issued")
	return nil
}

// Register verifies the submitted code and creates the account. The code is
// single-use: it is deleted before the user record is written. The elapsed
// time is re-checked here even though the store expires codes on its own,
// because the store's purge cycle may lag.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	if err := domain.CheckPassword(input.Password); err != nil {
		return nil, err
	}

	code, err := s.otps.Find(ctx, input.Email, input.OTP)
	if err != nil {
		return nil, err
	}
	if code.Expired(time.Now().UTC()) {
		_ = s.otps.Delete(ctx, input.Email)
		return nil, domain.ErrExpiredOTP
	}
	if err := s.otps.Delete(ctx, input.Email); err != nil {
		return nil, fmt.Errorf("consume verification code: %w", err)
	}

	// Best-effort race guard; the unique indexes are the final backstop.
	existing, err := s.users.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Username == input.Username {
			return nil, domain.ErrUsernameTaken
		}
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login authenticates by username and password. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateRole changes a user's role. Admins cannot demote themselves; another
// admin account has to do it.
func (s *AuthService) UpdateRole(ctx context.Context, actorID, userID, newRole string) (*domain.User, error) {
	if !domain.ValidRole(newRole) {
		return nil, domain.ErrInvalidRole
	}
	if actorID == userID && newRole != domain.RoleAdmin {
		return nil, domain.ErrSelfDemotion
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, userID, newRole); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("role", newRole).Msg("user role updated")
	user.Role = newRole
	return user, nil
}

// SetProfilePicture stores a new avatar for the user, replacing and removing
// any previous one. Returns the stored relative path.
func (s *AuthService) SetProfilePicture(ctx context.Context, userID string, upload ports.FileUpload) (string, error) {
	if err := checkUpload(upload, maxAvatarSize, imageExtensions); err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.ProfilePicture != "" {
		if err := s.files.Delete(ctx, user.ProfilePicture); err != nil {
			s.logger.Warn().Err(err).Str("path", user.ProfilePicture).Msg("failed to delete old profile picture")
		}
	}

	// One file per user: the name embeds the user id so a re-upload with the
	// same extension overwrites in place.
	name := userID + "-profile" + strings.ToLower(path.Ext(upload.Filename))
	stored, err := s.files.Save(ctx, profilePictureDir, name, upload.Reader)
	if err != nil {
		return "", fmt.Errorf("store profile picture: %w", err)
	}

	if err := s.users.UpdateProfilePicture(ctx, userID, stored); err != nil {
		return "", err
	}
	return stored, nil
}

// RemoveProfilePicture deletes the user's avatar file and clears the record.
func (s *AuthService) RemoveProfilePicture(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ProfilePicture == "" {
		return domain.ErrNoProfilePicture
	}

	if err := s.files.Delete(ctx, user.ProfilePicture); err != nil {
		s.logger.Warn().Err(err).Str("path", user.ProfilePicture).Msg("failed to delete profile picture file")
	}
	return s.users.UpdateProfilePicture(ctx, userID, "")
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateOTP returns a fixed-length numeric code from a uniform random
// source.
func generateOTP() string {
	const digits = "0123456789"
	b := make([]byte, domain.OTPLength)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from current nanoseconds
		return fmt.Sprintf("%0*d", domain.OTPLength, time.Now().UnixNano()%1_000_000)
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return string(b)
}
