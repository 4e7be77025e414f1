package router

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/handler"
	"github.com/lasithahemajith/practicum-track-api/internal/models"
	"github.com/lasithahemajith/practicum-track-api/internal/service"
	"github.com/lasithahemajith/practicum-track-api/pkg/config"
)

type userRepoStub struct{}

func (userRepoStub) Create(ctx context.Context, user *models.User) error { return nil }

func (userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (userRepoStub) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (userRepoStub) ListByRole(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	return []models.User{}, nil
}

type mappingRepoStub struct{}

func (mappingRepoStub) Upsert(ctx context.Context, mentorID, studentID int64) (*models.MentorStudentMap, error) {
	return nil, nil
}

func (mappingRepoStub) Delete(ctx context.Context, mentorID, studentID int64) error { return nil }

func (mappingRepoStub) List(ctx context.Context, filter models.MappingFilter) ([]models.MappingDetail, error) {
	return nil, nil
}

func (mappingRepoStub) StudentsForMentor(ctx context.Context, mentorID int64) ([]models.UserRef, error) {
	return nil, nil
}

const routerTestSecret = "test-secret"

func newRouterForTest(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Env:       "test",
		APIPrefix: "/api/v1",
		Uploads:   config.UploadsConfig{Dir: t.TempDir()},
	}
	auth := service.NewAuthService(userRepoStub{}, nil, nil, zap.NewNop(), service.AuthConfig{
		Secret:     routerTestSecret,
		Expiration: time.Hour,
	})
	users := service.NewUserService(userRepoStub{}, mappingRepoStub{}, nil, zap.NewNop())

	return New(Deps{
		Config: cfg,
		Logger: zap.NewNop(),
		Auth:   auth,
		Users:  users,
		Handlers: Handlers{
			Auth:    handler.NewAuthHandler(auth),
			Users:   handler.NewUserHandler(users),
			Metrics: handler.NewMetricsHandler(nil, handler.StoreChecks{}),
		},
	})
}

func signedToken(t *testing.T, role models.UserRole) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: 20,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(routerTestSecret))
	require.NoError(t, err)
	return token
}

func TestUserListOpenToAnyAuthenticatedRole(t *testing.T) {
	r := newRouterForTest(t)

	for _, role := range []models.UserRole{models.RoleStudent, models.RoleMentor, models.RoleTutor} {
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/api/v1/users?role=Mentor", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, role))

		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "role %s should be able to list users", role)
	}
}

func TestUserListRequiresAuthentication(t *testing.T) {
	r := newRouterForTest(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
	require.NoError(t, err)

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserCreateStaysTutorOnly(t *testing.T) {
	r := newRouterForTest(t)

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, "/api/v1/users", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, models.RoleStudent))

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}
