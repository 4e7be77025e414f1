package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
)

type fakeUserRepo struct {
	byEmail    *models.User
	byEmailErr error
	byID       map[int64]*models.User
	created    *models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.created = user
	user.ID = 42
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmail == nil {
		if f.byEmailErr != nil {
			return nil, f.byEmailErr
		}
		return nil, sql.ErrNoRows
	}
	return f.byEmail, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) ListByRole(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	return nil, nil
}

type fakeMappingRepo struct {
	upserted  [][2]int64
	deleteErr error
}

func (f *fakeMappingRepo) Upsert(ctx context.Context, mentorID, studentID int64) (*models.MentorStudentMap, error) {
	f.upserted = append(f.upserted, [2]int64{mentorID, studentID})
	return &models.MentorStudentMap{ID: 1, MentorID: mentorID, StudentID: studentID}, nil
}

func (f *fakeMappingRepo) Delete(ctx context.Context, mentorID, studentID int64) error {
	return f.deleteErr
}

func (f *fakeMappingRepo) List(ctx context.Context, filter models.MappingFilter) ([]models.MappingDetail, error) {
	return nil, nil
}

func (f *fakeMappingRepo) StudentsForMentor(ctx context.Context, mentorID int64) ([]models.UserRef, error) {
	return nil, nil
}

func usersByID() map[int64]*models.User {
	return map[int64]*models.User{
		10: {ID: 10, Role: models.RoleMentor},
		20: {ID: 20, Role: models.RoleStudent},
	}
}

func TestUserCreateGeneratesCredential(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, &fakeMappingRepo{}, nil, zap.NewNop())

	res, err := svc.Create(context.Background(), CreateUserRequest{
		Name:  "Nimal Perera",
		Email: "nimal@example.com",
		Role:  "Student",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.GeneratedPassword)

	// The stored hash must match the returned plaintext and nothing else.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte(res.GeneratedPassword)))
	assert.NotEqual(t, res.GeneratedPassword, repo.created.PasswordHash)
}

func TestGeneratePasswordAlphabet(t *testing.T) {
	assert.Len(t, passwordAlphabet, 64)
	assert.NotContains(t, passwordAlphabet, "l")
	assert.NotContains(t, passwordAlphabet, "o")
	assert.NotContains(t, passwordAlphabet, "I")
	assert.NotContains(t, passwordAlphabet, "O")
	assert.NotContains(t, passwordAlphabet, "0")
	assert.NotContains(t, passwordAlphabet, "1")

	for i := 0; i < 32; i++ {
		password, err := generatePassword()
		require.NoError(t, err)
		require.Len(t, password, 12)
		for _, r := range password {
			assert.Contains(t, passwordAlphabet, string(r))
		}
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: &models.User{ID: 1, Email: "nimal@example.com"}}
	svc := NewUserService(repo, &fakeMappingRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Name:  "Nimal Perera",
		Email: "nimal@example.com",
		Role:  "Student",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicate))
}

func TestUserMapValidatesRoles(t *testing.T) {
	repo := &fakeUserRepo{byID: usersByID()}
	mappings := &fakeMappingRepo{}
	svc := NewUserService(repo, mappings, nil, zap.NewNop())

	_, err := svc.Map(context.Background(), MapRequest{MentorID: 10, StudentID: 20})
	require.NoError(t, err)
	require.Len(t, mappings.upserted, 1)

	// Swapped roles must be rejected before touching the mapping table.
	_, err = svc.Map(context.Background(), MapRequest{MentorID: 20, StudentID: 10})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	require.Len(t, mappings.upserted, 1)
}

func TestUserMapUnknownUser(t *testing.T) {
	repo := &fakeUserRepo{byID: usersByID()}
	svc := NewUserService(repo, &fakeMappingRepo{}, nil, zap.NewNop())

	_, err := svc.Map(context.Background(), MapRequest{MentorID: 99, StudentID: 20})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestUserUnmapMissingPair(t *testing.T) {
	repo := &fakeUserRepo{byID: usersByID()}
	svc := NewUserService(repo, &fakeMappingRepo{deleteErr: sql.ErrNoRows}, nil, zap.NewNop())

	err := svc.Unmap(context.Background(), MapRequest{MentorID: 10, StudentID: 20})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestUserListByRoleInvalid(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, &fakeMappingRepo{}, nil, zap.NewNop())

	_, err := svc.ListByRole(context.Background(), "Janitor")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
