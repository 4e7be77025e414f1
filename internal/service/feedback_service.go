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

type mentorFeedbackRepository interface {
	Create(ctx context.Context, feedback *models.MentorFeedback) error
	FindByLogID(ctx context.Context, logPaperID primitive.ObjectID) (*models.MentorFeedback, error)
}

type tutorFeedbackRepository interface {
	Create(ctx context.Context, feedback *models.TutorFeedback) error
	ListByLogID(ctx context.Context, logPaperID primitive.ObjectID) ([]models.TutorFeedback, error)
	ListAll(ctx context.Context) ([]models.TutorFeedback, error)
}

type logPaperResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LogPaper, error)
	SetTutorFeedbackMirror(ctx context.Context, id primitive.ObjectID, tutorID int64, text string, at time.Time) (*models.LogPaper, error)
}

// FeedbackService manages the two feedback relations attached to log papers:
// the single mentor verdict and the append-only tutor thread.
type FeedbackService struct {
	mentorRepo mentorFeedbackRepository
	tutorRepo  tutorFeedbackRepository
	logs       logPaperResolver
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewFeedbackService constructs the feedback service.
func NewFeedbackService(mentorRepo mentorFeedbackRepository, tutorRepo tutorFeedbackRepository, logs logPaperResolver, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{mentorRepo: mentorRepo, tutorRepo: tutorRepo, logs: logs, validator: validate, logger: logger}
}

// AddMentorFeedbackRequest is the mentor verdict payload.
type AddMentorFeedbackRequest struct {
	LogPaperID string `json:"logPaperId" validate:"required"`
	Comment    string `json:"comment" validate:"required"`
	Approved   bool   `json:"approved"`
}

// AddTutorFeedbackRequest is the thread entry payload.
type AddTutorFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// AddMentorFeedback stores the mentor verdict for a log paper. The log must
// exist; the student reference is copied from it.
func (s *FeedbackService) AddMentorFeedback(ctx context.Context, mentorID int64, req AddMentorFeedbackRequest) (*models.MentorFeedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "logPaperId and comment are required")
	}
	logID, err := parseLogID(req.LogPaperID)
	if err != nil {
		return nil, err
	}
	log, err := s.findLog(ctx, logID)
	if err != nil {
		return nil, err
	}

	feedback := &models.MentorFeedback{
		LogPaperID: logID,
		MentorID:   mentorID,
		StudentID:  log.StudentID,
		Comment:    req.Comment,
		Approved:   req.Approved,
	}
	if err := s.mentorRepo.Create(ctx, feedback); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to save mentor feedback")
	}

	s.logger.Info("mentor feedback saved", zap.String("log_id", req.LogPaperID), zap.Int64("mentor_id", mentorID))
	return feedback, nil
}

// GetMentorFeedback returns the mentor verdict for a log paper.
func (s *FeedbackService) GetMentorFeedback(ctx context.Context, rawLogID string) (*models.MentorFeedback, error) {
	logID, err := parseLogID(rawLogID)
	if err != nil {
		return nil, err
	}
	feedback, err := s.mentorRepo.FindByLogID(ctx, logID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no feedback yet")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch mentor feedback")
	}
	return feedback, nil
}

// AddTutorFeedback appends a thread entry and mirrors the latest text onto
// the log paper's single-value field for backward-compatible reads. The
// thread is the source of truth; the mirror is a best-effort cache. The
// log paper's status is never touched here.
func (s *FeedbackService) AddTutorFeedback(ctx context.Context, rawLogID string, tutorID int64, req AddTutorFeedbackRequest) (*models.TutorFeedback, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "feedback is required")
	}
	logID, err := parseLogID(rawLogID)
	if err != nil {
		return nil, err
	}
	log, err := s.findLog(ctx, logID)
	if err != nil {
		return nil, err
	}

	feedback := &models.TutorFeedback{
		LogPaperID: logID,
		TutorID:    tutorID,
		StudentID:  log.StudentID,
		Feedback:   req.Feedback,
	}
	if err := s.tutorRepo.Create(ctx, feedback); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to save tutor feedback")
	}

	if _, err := s.logs.SetTutorFeedbackMirror(ctx, logID, tutorID, req.Feedback, time.Now().UTC()); err != nil {
		// The thread entry is already durable; the mirror is display-only.
		s.logger.Warn("failed to mirror tutor feedback onto log paper",
			zap.String("log_id", rawLogID), zap.Error(err))
	}

	s.logger.Info("tutor feedback appended", zap.String("log_id", rawLogID), zap.Int64("tutor_id", tutorID))
	return feedback, nil
}

// ListTutorFeedback returns the thread for a log paper, newest first.
func (s *FeedbackService) ListTutorFeedback(ctx context.Context, rawLogID string) ([]models.TutorFeedback, error) {
	logID, err := parseLogID(rawLogID)
	if err != nil {
		return nil, err
	}
	entries, err := s.tutorRepo.ListByLogID(ctx, logID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch tutor feedback")
	}
	return entries, nil
}

// ListAllTutorFeedback returns every thread entry for the tutor summary view.
func (s *FeedbackService) ListAllTutorFeedback(ctx context.Context) ([]models.TutorFeedback, error) {
	entries, err := s.tutorRepo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch tutor feedback")
	}
	return entries, nil
}

func (s *FeedbackService) findLog(ctx context.Context, id primitive.ObjectID) (*models.LogPaper, error) {
	log, err := s.logs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "log paper not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch log paper")
	}
	return log, nil
}
