package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenpact/consulting-api/internal/core/domain"
	"github.com/greenpact/consulting-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = strings.Repeat("0", 23) + string(rune('0'+r.nextID))
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) UpdateProfilePicture(_ context.Context, id, path string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ProfilePicture = path
	return nil
}

type stubOtpRepo struct {
	codes map[string]domain.VerificationCode
}

func newStubOtpRepo() *stubOtpRepo {
	return &stubOtpRepo{codes: make(map[string]domain.VerificationCode)}
}

func (r *stubOtpRepo) Upsert(_ context.Context, email, code string, createdAt time.Time) error {
	r.codes[email] = domain.VerificationCode{Email: email, Code: code, CreatedAt: createdAt}
	return nil
}

func (r *stubOtpRepo) Find(_ context.Context, email, code string) (*domain.VerificationCode, error) {
	v, ok := r.codes[email]
	if !ok || v.Code != code {
		return nil, domain.ErrInvalidOTP
	}
	copy := v
	return &copy, nil
}

func (r *stubOtpRepo) Delete(_ context.Context, email string) error {
	delete(r.codes, email)
	return nil
}

type sentInvite struct {
	To       string
	Name     string
	JobTitle string
}

type fakeMailer struct {
	otps    map[string]string
	invites []sentInvite
	fail    bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{otps: make(map[string]string)}
}

func (m *fakeMailer) SendOTP(_ context.Context, to, code string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.otps[to] = code
	return nil
}

func (m *fakeMailer) SendInterviewInvitation(_ context.Context, to, name, jobTitle string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.invites = append(m.invites, sentInvite{To: to, Name: name, JobTitle: jobTitle})
	return nil
}

type fakeFileStore struct {
	saved   map[string]string
	deleted []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: make(map[string]string)}
}

func (f *fakeFileStore) Save(_ context.Context, dir, name string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := dir + "/" + name
	f.saved[path] = string(b)
	return path, nil
}

func (f *fakeFileStore) Delete(_ context.Context, path string) error {
	delete(f.saved, path)
	f.deleted = append(f.deleted, path)
	return nil
}

type stubLimiter struct {
	allow bool
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return l.allow, nil
}

type authFixture struct {
	users  *stubUserRepo
	otps   *stubOtpRepo
	mailer *fakeMailer
	files  *fakeFileStore
	svc    *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  newStubUserRepo(),
		otps:   newStubOtpRepo(),
		mailer: newFakeMailer(),
		files:  newFakeFileStore(),
	}
	f.svc = NewAuthService(f.users, f.otps, f.mailer, f.files, nil, "secret", time.Hour, zerolog.Nop())
	return f
}

func (f *authFixture) registerUser(t *testing.T, username, email, password string) *domain.User {
	t.Helper()
	if err := f.svc.RequestOTP(context.Background(), email); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	res, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Name:     username,
		Email:    email,
		Password: password,
		OTP:      f.mailer.otps[email],
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return res.User
}

func TestAuthService_RequestOTP_Success(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("RequestOTP returned error: %v", err)
	}

	stored, ok := f.otps.codes["a@b.com"]
	if !ok {
		t.Fatalf("expected a stored verification code")
	}
	if len(stored.Code) != domain.OTPLength {
		t.Fatalf("expected %d-digit code, got %q", domain.OTPLength, stored.Code)
	}
	for _, r := range stored.Code {
		if r < '0' || r > '9' {
			t.Fatalf("code contains non-digit: %q", stored.Code)
		}
	}
	if f.mailer.otps["a@b.com"] != stored.Code {
		t.Fatalf("mailed code %q does not match stored code %q", f.mailer.otps["a@b.com"], stored.Code)
	}
}

func TestAuthService_RequestOTP_EmailAlreadyRegistered(t *testing.T) {
	f := newAuthFixture()
	f.registerUser(t, "alice", "alice@example.com", "Abcdef1!")

	if err := f.svc.RequestOTP(context.Background(), "alice@example.com"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_RequestOTP_MailFailure(t *testing.T) {
	f := newAuthFixture()
	f.mailer.fail = true

	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != domain.ErrMailDelivery {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
}

func TestAuthService_RequestOTP_ReplacesPreviousCode(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	first := f.otps.codes["a@b.com"]

	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	second := f.otps.codes["a@b.com"]

	// Only the newest code matches; codes occasionally collide so compare
	// via lookup semantics rather than inequality.
	if _, err := f.otps.Find(context.Background(), "a@b.com", second.Code); err != nil {
		t.Fatalf("newest code should be retrievable: %v", err)
	}
	if first.Code != second.Code {
		if _, err := f.otps.Find(context.Background(), "a@b.com", first.Code); err != domain.ErrInvalidOTP {
			t.Fatalf("superseded code should be invalid, got %v", err)
		}
	}
}

func TestAuthService_RequestOTP_RateLimited(t *testing.T) {
	f := newAuthFixture()
	f.svc = NewAuthService(f.users, f.otps, f.mailer, f.files, &stubLimiter{allow: false}, "secret", time.Hour, zerolog.Nop())

	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != domain.ErrTooManyRequests {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture()

	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	res, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "a",
		Name:     "A",
		Email:    "a@b.com",
		Password: "Abcdef1!",
		OTP:      f.mailer.otps["a@b.com"],
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, res.User.Role)
	}
	if res.User.PasswordHash == "Abcdef1!" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("Abcdef1!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != res.User.ID || claims["role"] != domain.RoleUser {
		t.Fatalf("unexpected claims: %v", claims)
	}

	// One-time use: the code record must be gone.
	if _, ok := f.otps.codes["a@b.com"]; ok {
		t.Fatalf("verification code should be consumed after registration")
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	f := newAuthFixture()
	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "a",
		Name:     "A",
		Email:    "a@b.com",
		Password: "Abcdefgh!", // missing digit
		OTP:      f.mailer.otps["a@b.com"],
	})
	if err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_Register_WrongCode(t *testing.T) {
	f := newAuthFixture()
	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "a",
		Name:     "A",
		Email:    "a@b.com",
		Password: "Abcdef1!",
		OTP:      "000000x", // never a valid code shape
	})
	if err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestAuthService_Register_ExpiredCode(t *testing.T) {
	f := newAuthFixture()

	// A code past the window but not yet purged by the store.
	stale := time.Now().UTC().Add(-domain.OTPTTL - time.Minute)
	if err := f.otps.Upsert(context.Background(), "a@b.com", "123456", stale); err != nil {
		t.Fatalf("seed code: %v", err)
	}

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "a",
		Name:     "A",
		Email:    "a@b.com",
		Password: "Abcdef1!",
		OTP:      "123456",
	})
	if err != domain.ErrExpiredOTP {
		t.Fatalf("expected ErrExpiredOTP, got %v", err)
	}
	if _, ok := f.otps.codes["a@b.com"]; ok {
		t.Fatalf("stale code should be purged on rejection")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	f := newAuthFixture()
	f.registerUser(t, "bob", "bob@example.com", "Abcdef1!")

	if err := f.svc.RequestOTP(context.Background(), "other@example.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Username: "bob",
		Name:     "Bob Two",
		Email:    "other@example.com",
		Password: "Abcdef1!",
		OTP:      f.mailer.otps["other@example.com"],
	})
	if err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_CodeIsSingleUse(t *testing.T) {
	f := newAuthFixture()
	if err := f.svc.RequestOTP(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	code := f.mailer.otps["a@b.com"]

	input := ports.RegisterInput{
		Username: "a",
		Name:     "A",
		Email:    "a@b.com",
		Password: "Abcdef1!",
		OTP:      code,
	}
	if _, err := f.svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	input.Username = "a2"
	if _, err := f.svc.Register(context.Background(), input); err != domain.ErrInvalidOTP {
		t.Fatalf("expected ErrInvalidOTP on replay, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	created := f.registerUser(t, "carol", "carol@example.com", "S3cret!x")

	res, err := f.svc.Login(context.Background(), "carol", "S3cret!x")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User.ID != created.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	f := newAuthFixture()
	f.registerUser(t, "dave", "dave@example.com", "G00dpas$")

	// Wrong password and unknown username must be indistinguishable.
	if _, err := f.svc.Login(context.Background(), "dave", "badpass1!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "ghost", "badpass1!"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_UpdateRole(t *testing.T) {
	f := newAuthFixture()
	admin := f.registerUser(t, "root", "root@example.com", "Abcdef1!")
	_ = f.users.UpdateRole(context.Background(), admin.ID, domain.RoleAdmin)
	target := f.registerUser(t, "eve", "eve@example.com", "Abcdef1!")

	if _, err := f.svc.UpdateRole(context.Background(), admin.ID, target.ID, "owner"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := f.svc.UpdateRole(context.Background(), admin.ID, admin.ID, domain.RoleUser); err != domain.ErrSelfDemotion {
		t.Fatalf("expected ErrSelfDemotion, got %v", err)
	}

	updated, err := f.svc.UpdateRole(context.Background(), admin.ID, target.ID, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", updated.Role)
	}
}

func TestAuthService_ProfilePicture(t *testing.T) {
	f := newAuthFixture()
	user := f.registerUser(t, "frank", "frank@example.com", "Abcdef1!")

	if _, err := f.svc.SetProfilePicture(context.Background(), user.ID, ports.FileUpload{
		Filename: "avatar.txt",
		Size:     100,
		Reader:   strings.NewReader("nope"),
	}); err != domain.ErrUnsupportedFileType {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}

	if _, err := f.svc.SetProfilePicture(context.Background(), user.ID, ports.FileUpload{
		Filename: "avatar.png",
		Size:     3 << 20,
		Reader:   strings.NewReader("too big"),
	}); err != domain.ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	stored, err := f.svc.SetProfilePicture(context.Background(), user.ID, ports.FileUpload{
		Filename: "avatar.png",
		Size:     128,
		Reader:   strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("SetProfilePicture returned error: %v", err)
	}
	if _, ok := f.files.saved[stored]; !ok {
		t.Fatalf("expected file stored at %q", stored)
	}

	fetched, err := f.svc.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if fetched.ProfilePicture != stored {
		t.Fatalf("expected profile picture %q, got %q", stored, fetched.ProfilePicture)
	}

	if err := f.svc.RemoveProfilePicture(context.Background(), user.ID); err != nil {
		t.Fatalf("RemoveProfilePicture returned error: %v", err)
	}
	if err := f.svc.RemoveProfilePicture(context.Background(), user.ID); err != domain.ErrNoProfilePicture {
		t.Fatalf("expected ErrNoProfilePicture, got %v", err)
	}
}
