package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
)

type attendanceRepository interface {
	ExistsForWindow(ctx context.Context, studentID int64, from, to time.Time) (bool, error)
	Insert(ctx context.Context, record *models.AttendanceRecord) error
	ListForStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error)
	ListForStudents(ctx context.Context, studentIDs []int64, attType *models.AttendanceType) ([]models.AttendanceWithStudent, error)
	ListAll(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithStudent, error)
}

type mentorStudentResolver interface {
	StudentIDsForMentor(ctx context.Context, mentorID int64) ([]int64, error)
}

// AttendanceService coordinates daily attendance submissions and views.
type AttendanceService struct {
	repo      attendanceRepository
	mappings  mentorStudentResolver
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, mappings mentorStudentResolver, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, mappings: mappings, validator: validate, logger: logger, now: time.Now}
}

// SubmitAttendanceRequest is the student submission payload.
type SubmitAttendanceRequest struct {
	Type     string `json:"type" validate:"required,oneof=Class Practicum"`
	Attended string `json:"attended" validate:"required,oneof=Yes No"`
	Reason   string `json:"reason"`
}

// Submit records attendance for the calling student, rejecting a second
// submission inside the same calendar day. The read-then-write window is a
// fast path only; two racing submissions are fenced by the store-level
// uniqueness constraint.
func (s *AttendanceService) Submit(ctx context.Context, studentID int64, req SubmitAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	attended := models.AttendedFlag(req.Attended)
	if attended == models.AttendedNo && req.Reason == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "reason is required when attendance is missed")
	}

	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())

	exists, err := s.repo.ExistsForWindow(ctx, studentID, dayStart, dayEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to check existing attendance")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicate, "attendance already submitted for today")
	}

	record := &models.AttendanceRecord{
		StudentID: studentID,
		Type:      models.AttendanceType(req.Type),
		Attended:  attended,
		CreatedAt: now.UTC(),
	}
	// Reason is kept only for missed days, even when the client sends one.
	if attended == models.AttendedNo {
		reason := req.Reason
		record.Reason = &reason
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}

	s.logger.Info("attendance recorded", zap.Int64("student_id", studentID), zap.String("type", req.Type))
	return record, nil
}

// ListMine returns the calling student's history, newest first.
func (s *AttendanceService) ListMine(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	records, err := s.repo.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch attendance history")
	}
	return records, nil
}

// ListForMentor returns practicum attendance for the mentor's assigned
// students. The mapping resolves first; an empty set short-circuits.
func (s *AttendanceService) ListForMentor(ctx context.Context, mentorID int64) ([]models.AttendanceWithStudent, error) {
	studentIDs, err := s.mappings.StudentIDsForMentor(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to resolve assigned students")
	}
	if len(studentIDs) == 0 {
		return []models.AttendanceWithStudent{}, nil
	}
	practicum := models.AttendancePracticum
	records, err := s.repo.ListForStudents(ctx, studentIDs, &practicum)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch mapped attendance")
	}
	return records, nil
}

// ListAll returns every attendance record for tutors.
func (s *AttendanceService) ListAll(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithStudent, error) {
	records, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch attendance records")
	}
	return records, nil
}
