package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gvn/lending-platform/internal/core/domain"
)

func newAuthFixture(t *testing.T, roleNames ...string) (*AuthService, *stubUserRepo, *stubCache) {
	t.Helper()
	users := newStubUserRepo()
	roles := newStubRoleRepo(roleNames...)
	cache := newStubCache()
	tokens := NewTokenService("secret", time.Hour)
	svc := NewAuthService(users, roles, tokens, cache, zerolog.Nop())
	return svc, users, cache
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newAuthFixture(t, domain.RoleAdmin, domain.RoleUser)

	result, err := svc.Register(context.Background(), "alice", "a@x.com", "pw1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.Type != "Bearer" {
		t.Fatalf("unexpected token type: %s", result.Type)
	}
	if result.Username != "alice" {
		t.Fatalf("unexpected username: %s", result.Username)
	}
	if len(result.Roles) != 1 || result.Roles[0] != domain.RoleUser {
		t.Fatalf("expected default USER role, got %v", result.Roles)
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc, users, _ := newAuthFixture(t, domain.RoleUser)

	if _, err := svc.Register(context.Background(), "bob", "", "pw1234"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored, err := users.FindByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "pw1234" {
		t.Fatalf("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !stored.Active {
		t.Fatalf("registered user should be active")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(t, domain.RoleUser)

	if _, err := svc.Register(context.Background(), "carol", "", "pw1234"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "carol", "", "pw5678"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_DefaultRoleMissing(t *testing.T) {
	// Role store seeded without USER: a deployment fault, not a user error.
	svc, _, _ := newAuthFixture(t, domain.RoleAdmin)

	if _, err := svc.Register(context.Background(), "dave", "", "pw1234"); err != domain.ErrDefaultRoleMissing {
		t.Fatalf("expected ErrDefaultRoleMissing, got %v", err)
	}
}

func TestAuthService_Register_EvictsUsersGroup(t *testing.T) {
	svc, _, cache := newAuthFixture(t, domain.RoleUser)

	cache.data["users:allUsers"] = []byte(`[]`)

	if _, err := svc.Register(context.Background(), "erin", "", "pw1234"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, ok := cache.data["users:allUsers"]; ok {
		t.Fatalf("users group not evicted after registration")
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t, domain.RoleUser)

	registered, err := svc.Register(context.Background(), "frank", "f@x.com", "pw1234")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	logged, err := svc.Login(context.Background(), "frank", "pw1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if logged.Username != registered.Username {
		t.Fatalf("username mismatch: %s vs %s", logged.Username, registered.Username)
	}
	if len(logged.Roles) != 1 || logged.Roles[0] != domain.RoleUser {
		t.Fatalf("role mismatch after login: %v", logged.Roles)
	}
}

func TestAuthService_Login_TokenCarriesStoredIdentity(t *testing.T) {
	svc, _, _ := newAuthFixture(t, domain.RoleUser)
	tokens := NewTokenService("secret", time.Hour)

	if _, err := svc.Register(context.Background(), "grace", "", "pw1234"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	result, err := svc.Login(context.Background(), "grace", "pw1234")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "grace" {
		t.Fatalf("token subject mismatch: %s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("token roles mismatch: %v", claims.Roles)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t, domain.RoleUser)

	if _, err := svc.Register(context.Background(), "henry", "", "pw1234"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "henry", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t, domain.RoleUser)

	// Unknown usernames collapse into the same error as a bad password.
	if _, err := svc.Login(context.Background(), "nobody", "pw1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, users, _ := newAuthFixture(t, domain.RoleUser)

	if _, err := svc.Register(context.Background(), "iris", "", "pw1234"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	stored, _ := users.FindByUsername(context.Background(), "iris")
	stored.Active = false
	if _, err := users.Update(context.Background(), stored); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "iris", "pw1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}
