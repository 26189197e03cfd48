package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashaconnect/payout-system/internal/core/domain"
)

type stubAuthRepo struct {
	users map[string]*domain.User // keyed by email
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Email] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) UpdateRole(_ context.Context, email, role string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "Abcd123!")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.ID == "" {
		t.Fatalf("expected a generated user ID")
	}
	if user.PasswordHash == "Abcd123!" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Abcd123!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleWorker {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	_, err := svc.Register(context.Background(), "bob", "bob@example.com", "abc")
	var policyErr *domain.PasswordPolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected PasswordPolicyError, got %v", err)
	}
	if len(policyErr.Missing) != 4 {
		t.Fatalf("expected 4 failed rules for %q, got %v", "abc", policyErr.Missing)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be persisted on validation failure")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	if _, err := svc.Register(context.Background(), "a", "dup@x.com", "Abcd123!"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "b", "dup@x.com", "Abcd123!"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_EnsureAdmin_CreatesWhenMissing(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	admin, err := svc.EnsureAdmin(context.Background(), "admin", "admin@example.com", "Adm1nPass!")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("Adm1nPass!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// The seeded admin can log in, and its token carries the role the
	// approval gate checks for.
	token, _, err := svc.Login(context.Background(), "admin@example.com", "Adm1nPass!")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected admin role claim, got %v", claims["role"])
	}
}

func TestAuthService_EnsureAdmin_PromotesExistingUser(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	if _, err := svc.Register(context.Background(), "priya", "priya@example.com", "Abcd123!"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	admin, err := svc.EnsureAdmin(context.Background(), "admin", "priya@example.com", "")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected promotion to admin, got %s", admin.Role)
	}
	if admin.Username != "priya" {
		t.Fatalf("promotion should keep the existing identity, got %s", admin.Username)
	}
	if len(repo.users) != 1 {
		t.Fatalf("promotion must not create a second account")
	}

	// Idempotent on restart.
	again, err := svc.EnsureAdmin(context.Background(), "admin", "priya@example.com", "")
	if err != nil {
		t.Fatalf("second EnsureAdmin returned error: %v", err)
	}
	if again.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role to stick, got %s", again.Role)
	}
}

func TestAuthService_EnsureAdmin_RejectsWeakPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	_, err := svc.EnsureAdmin(context.Background(), "admin", "admin@example.com", "weak")
	var policyErr *domain.PasswordPolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected PasswordPolicyError, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no account should be created on a weak seed password")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "S3cret!!"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "S3cret!!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "carol" {
		t.Fatalf("expected username claim, got %v", claims["username"])
	}
	if claims["user_id"] != user.ID {
		t.Fatalf("expected user_id claim %s, got %v", user.ID, claims["user_id"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 119*time.Minute || ttl > 121*time.Minute {
		t.Fatalf("expected ~2h expiry, got %v", ttl)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	_, _ = svc.Register(context.Background(), "dave", "dave@example.com", "G00dpass!")
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 2*time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
