package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
)

func newAuthServiceForTest(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, nil, nil, zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "practicum-track",
	})
}

func TestAuthRegisterLoginRoundTrip(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newAuthServiceForTest(repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Password: "s3cret-pass",
		Role:     "Student",
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), user.ID)

	repo.byEmail = repo.created
	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nimal@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: &models.User{ID: 1, Email: "nimal@example.com"}}
	svc := newAuthServiceForTest(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Password: "s3cret-pass",
		Role:     "Student",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicate))
}

func TestAuthRegisterInvalidRole(t *testing.T) {
	svc := newAuthServiceForTest(&fakeUserRepo{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Password: "s3cret-pass",
		Role:     "Janitor",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAuthLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newAuthServiceForTest(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Password: "s3cret-pass",
		Role:     "Student",
	})
	require.NoError(t, err)
	repo.byEmail = repo.created

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nimal@example.com",
		Password: "wrong-pass",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	svc := newAuthServiceForTest(&fakeUserRepo{})

	// Unknown email and bad password must be indistinguishable to the caller.
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthValidateTokenGarbage(t *testing.T) {
	svc := newAuthServiceForTest(&fakeUserRepo{})

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthValidateTokenExpired(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo, nil, nil, zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: -time.Minute,
		Issuer:     "practicum-track",
	})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Password: "s3cret-pass",
		Role:     "Student",
	})
	require.NoError(t, err)
	repo.byEmail = repo.created

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nimal@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), resp.Token)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthValidateTokenWrongSecret(t *testing.T) {
	other := NewAuthService(&fakeUserRepo{}, nil, nil, zap.NewNop(), AuthConfig{
		Secret:     "different-secret",
		Expiration: time.Hour,
	})
	token, err := other.generateToken(&models.User{ID: 7, Role: models.RoleTutor})
	require.NoError(t, err)

	svc := newAuthServiceForTest(&fakeUserRepo{})
	_, err = svc.ValidateToken(context.Background(), token)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthLogoutWithoutRevocationStore(t *testing.T) {
	svc := newAuthServiceForTest(&fakeUserRepo{})

	claims := &models.JWTClaims{
		UserID: 7,
		Role:   models.RoleTutor,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	// Without a revocation store logout is a no-op, not a failure.
	require.NoError(t, svc.Logout(context.Background(), claims))
}
