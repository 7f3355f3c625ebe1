package domain

import "errors"

// Auth and registration errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password does not meet complexity requirements")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrExpiredOTP         = errors.New("expired OTP")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrMailDelivery       = errors.New("failed to send email")
	ErrInvalidRole        = errors.New(`invalid new role provided, must be "admin" or "user"`)
	ErrSelfDemotion       = errors.New("admins cannot demote themselves")
	ErrNoProfilePicture   = errors.New("no profile picture to remove")
)

// Upload errors.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Content errors.
var (
	ErrAlbumNotFound       = errors.New("album not found")
	ErrAlbumTitleTaken     = errors.New("album with this title already exists")
	ErrAlbumFull           = errors.New("album photo limit reached")
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrVacancyNotFound     = errors.New("vacancy not found")
	ErrInvalidVacancyType  = errors.New("invalid vacancy type")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInquiryNotFound     = errors.New("contact inquiry not found")
)
