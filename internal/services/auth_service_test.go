package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/interview-service/internal/models"
	"github.com/hirelens/interview-service/internal/validator"
)

func newAuthFixture() (*fakeRepository, AuthService) {
	repo := newFakeRepository()
	svc := NewAuthService(repo, slog.Default(), validator.New(), "test-secret", time.Hour)
	return repo, svc
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	_, svc := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "jordan@example.com",
		Password: "s3cret-password",
		FullName: "Jordan Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleCandidate, resp.User.Role)

	login, err := svc.Login(ctx, LoginRequest{Email: "Jordan@Example.com", Password: "s3cret-password"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	claims, err := svc.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleCandidate, claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture()
	ctx := context.Background()

	req := RegisterRequest{Email: "dup@example.com", Password: "s3cret-password", FullName: "First User"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		FullName: "X",
	})
	assert.Error(t, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	_, svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@example.com", Password: "s3cret-password", FullName: "A Person"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "unknown@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo, svc := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "bootstrap-pass"))

	admin, err := repo.User().GetByEmail(ctx, nil, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// Idempotent on repeat.
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "bootstrap-pass"))

	// Blank config is a no-op.
	require.NoError(t, svc.EnsureAdmin(ctx, "", ""))
}

func TestAuthService_ValidateToken_UnknownRole(t *testing.T) {
	_, svc := newAuthFixture()

	claims := &TokenClaims{
		UserID: 1,
		Email:  "jordan@example.com",
		Role:   models.UserRole("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "interview-service",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}
