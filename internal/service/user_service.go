package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
)

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ListByRole(ctx context.Context, role *models.UserRole) ([]models.User, error)
}

type mappingRepository interface {
	Upsert(ctx context.Context, mentorID, studentID int64) (*models.MentorStudentMap, error)
	Delete(ctx context.Context, mentorID, studentID int64) error
	List(ctx context.Context, filter models.MappingFilter) ([]models.MappingDetail, error)
	StudentsForMentor(ctx context.Context, mentorID int64) ([]models.UserRef, error)
}

// UserService handles identity and mentor-student mapping workflows.
type UserService struct {
	users     userRepository
	mappings  mappingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(users userRepository, mappings mappingRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{users: users, mappings: mappings, validator: validate, logger: logger}
}

// CreateUserRequest is the tutor-only user creation payload. No password is
// accepted: a credential is generated and returned exactly once.
type CreateUserRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Role         string  `json:"role" validate:"required,oneof=Student Mentor Tutor"`
	Phone        *string `json:"phone"`
	StudentIndex *string `json:"studentIndex"`
	Organization *string `json:"organization"`
}

// CreatedUserResponse carries the new user and the one-time credential.
type CreatedUserResponse struct {
	User              *models.User `json:"user"`
	GeneratedPassword string       `json:"generatedPassword"`
}

// MapRequest identifies a mentor-student pair.
type MapRequest struct {
	MentorID  int64 `json:"mentorId" validate:"required"`
	StudentID int64 `json:"studentId" validate:"required"`
}

// Create provisions a user with a generated credential. The plaintext is
// returned in the response and never stored or re-derivable afterwards.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*CreatedUserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to check existing user")
	}

	password, err := generatePassword()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate credential")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash credential")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.UserRole(req.Role),
		Phone:        req.Phone,
		StudentIndex: req.StudentIndex,
		Organization: req.Organization,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return &CreatedUserResponse{User: user, GeneratedPassword: password}, nil
}

// ListByRole lists users, optionally narrowed to a single role.
func (s *UserService) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	var roleFilter *models.UserRole
	if role != "" {
		r := models.UserRole(role)
		if !r.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid role")
		}
		roleFilter = &r
	}
	users, err := s.users.ListByRole(ctx, roleFilter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list users")
	}
	return users, nil
}

// Map pairs a mentor with a student after validating both references. The
// check happens in application logic because no foreign key can span the
// two stores; re-mapping an existing pair succeeds without modification.
func (s *UserService) Map(ctx context.Context, req MapRequest) (*models.MentorStudentMap, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "mentorId and studentId are required")
	}

	if err := s.requireRole(ctx, req.MentorID, models.RoleMentor, "mentorId must refer to a Mentor"); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, req.StudentID, models.RoleStudent, "studentId must refer to a Student"); err != nil {
		return nil, err
	}

	mapping, err := s.mappings.Upsert(ctx, req.MentorID, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to map mentor and student")
	}
	return mapping, nil
}

// Unmap removes a pair; a missing pair is an error, unlike Map.
func (s *UserService) Unmap(ctx context.Context, req MapRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "mentorId and studentId are required")
	}
	if err := s.mappings.Delete(ctx, req.MentorID, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "mapping not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unmap mentor and student")
	}
	return nil
}

// ListMappings returns mappings with both users resolved.
func (s *UserService) ListMappings(ctx context.Context, filter models.MappingFilter) ([]models.MappingDetail, error) {
	mappings, err := s.mappings.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list mappings")
	}
	return mappings, nil
}

// AssignedStudents lists the students mapped to the calling mentor.
func (s *UserService) AssignedStudents(ctx context.Context, mentorID int64) ([]models.UserRef, error) {
	students, err := s.mappings.StudentsForMentor(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to list assigned students")
	}
	return students, nil
}

func (s *UserService) requireRole(ctx context.Context, id int64, role models.UserRole, message string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, message)
		}
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to resolve user")
	}
	if user.Role != role {
		return appErrors.Clone(appErrors.ErrValidation, message)
	}
	return nil
}

// passwordAlphabet holds exactly 64 symbols so a masked random byte indexes
// it without modulo bias. Visually ambiguous characters (l, o, I, O, 0, 1)
// are excluded because the credential is read back to the user once.
const passwordAlphabet = "abcdefghijkmnpqrstuvwxyz" +
	"ABCDEFGHJKLMNPQRSTUVWXYZ" +
	"23456789" +
	"!#$%&*+="

func generatePassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = passwordAlphabet[b&0x3f]
	}
	return string(out), nil
}
