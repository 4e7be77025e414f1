package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
)

type logPaperRepository interface {
	Create(ctx context.Context, log *models.LogPaper) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LogPaper, error)
	List(ctx context.Context, filter models.LogFilter) ([]models.LogPaper, error)
	Verify(ctx context.Context, id primitive.ObjectID, mentorID int64, comment string, at time.Time) (*models.LogPaper, error)
	MarkReviewed(ctx context.Context, id primitive.ObjectID, tutorID int64, at time.Time) (*models.LogPaper, error)
}

// LogPaperService enforces the Pending -> Verified -> Reviewed workflow on
// practicum log papers.
type LogPaperService struct {
	repo      logPaperRepository
	mappings  mentorStudentResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLogPaperService constructs the log paper service.
func NewLogPaperService(repo logPaperRepository, mappings mentorStudentResolver, validate *validator.Validate, logger *zap.Logger) *LogPaperService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPaperService{repo: repo, mappings: mappings, validator: validate, logger: logger}
}

// CreateLogRequest is the student submission payload; attachment metadata is
// resolved by the handler before the service sees it.
type CreateLogRequest struct {
	Date        string  `json:"date" validate:"required"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	TotalHours  float64 `json:"totalHours"`
	Activity    string  `json:"activity" validate:"required"`
	Description string  `json:"description" validate:"required"`
}

// VerifyLogRequest carries the mentor's comment.
type VerifyLogRequest struct {
	MentorComment string `json:"mentorComment" validate:"required"`
}

// Create stores a new log paper in Pending status.
func (s *LogPaperService) Create(ctx context.Context, studentID int64, req CreateLogRequest, attachments []models.Attachment) (*models.LogPaper, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date, activity and description are required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}

	log := &models.LogPaper{
		StudentID:   studentID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TotalHours:  req.TotalHours,
		Activity:    req.Activity,
		Description: req.Description,
		Attachments: attachments,
		Status:      models.StatusPending,
	}
	if err := s.repo.Create(ctx, log); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to create log paper")
	}

	s.logger.Info("log paper created", zap.Int64("student_id", studentID), zap.String("log_id", log.ID.Hex()))
	return log, nil
}

// ListMine returns the calling student's log papers.
func (s *LogPaperService) ListMine(ctx context.Context, studentID int64) ([]models.LogPaper, error) {
	logs, err := s.repo.List(ctx, models.LogFilter{StudentIDs: []int64{studentID}})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch log papers")
	}
	return logs, nil
}

// ListForMentor returns log papers of the mentor's assigned students. The
// mapping id set resolves first and an empty set returns without touching
// the document store.
func (s *LogPaperService) ListForMentor(ctx context.Context, mentorID int64) ([]models.LogPaper, error) {
	studentIDs, err := s.mappings.StudentIDsForMentor(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to resolve assigned students")
	}
	if len(studentIDs) == 0 {
		return []models.LogPaper{}, nil
	}
	logs, err := s.repo.List(ctx, models.LogFilter{StudentIDs: studentIDs})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch mapped log papers")
	}
	return logs, nil
}

// ListAll returns every log paper for tutors.
func (s *LogPaperService) ListAll(ctx context.Context) ([]models.LogPaper, error) {
	logs, err := s.repo.List(ctx, models.LogFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch log papers")
	}
	return logs, nil
}

// Get returns one log paper after an ownership check: the owning student,
// a mentor mapped to that student, or any tutor.
func (s *LogPaperService) Get(ctx context.Context, rawID string, claims *models.JWTClaims) (*models.LogPaper, error) {
	id, err := parseLogID(rawID)
	if err != nil {
		return nil, err
	}
	log, err := s.findLog(ctx, id)
	if err != nil {
		return nil, err
	}

	switch claims.Role {
	case models.RoleTutor:
		return log, nil
	case models.RoleStudent:
		if log.StudentID == claims.UserID {
			return log, nil
		}
	case models.RoleMentor:
		studentIDs, err := s.mappings.StudentIDsForMentor(ctx, claims.UserID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to resolve assigned students")
		}
		for _, sid := range studentIDs {
			if sid == log.StudentID {
				return log, nil
			}
		}
	}
	return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to view this log paper")
}

// Verify moves a Pending log paper to Verified with the mentor's comment.
// Verification of an already Verified or Reviewed record fails closed
// rather than silently re-applying the transition.
func (s *LogPaperService) Verify(ctx context.Context, rawID string, mentorID int64, req VerifyLogRequest) (*models.LogPaper, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mentorComment is required")
	}
	id, err := parseLogID(rawID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Verify(ctx, id, mentorID, req.MentorComment, time.Now().UTC())
	if err == nil {
		s.logger.Info("log paper verified", zap.String("log_id", rawID), zap.Int64("mentor_id", mentorID))
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to verify log paper")
	}

	// The conditional update matched nothing: unknown id or wrong state.
	log, err := s.findLog(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "log paper is already "+string(log.Status))
}

// MarkReviewed moves a Verified log paper to Reviewed. Reviewing an already
// Reviewed record is a no-op success; reviewing a Pending one fails.
func (s *LogPaperService) MarkReviewed(ctx context.Context, rawID string, tutorID int64) (*models.LogPaper, error) {
	id, err := parseLogID(rawID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.MarkReviewed(ctx, id, tutorID, time.Now().UTC())
	if err == nil {
		s.logger.Info("log paper reviewed", zap.String("log_id", rawID), zap.Int64("tutor_id", tutorID))
		return updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to mark log paper reviewed")
	}

	log, err := s.findLog(ctx, id)
	if err != nil {
		return nil, err
	}
	if log.Status == models.StatusReviewed {
		return log, nil
	}
	return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "log paper must be Verified before review")
}

func (s *LogPaperService) findLog(ctx context.Context, id primitive.ObjectID) (*models.LogPaper, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "log paper not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch log paper")
	}
	return log, nil
}

func parseLogID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, appErrors.Clone(appErrors.ErrValidation, "invalid log paper id")
	}
	return id, nil
}
