package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/dto"
	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
	"github.com/lasithahemajith/practicum-track-api/pkg/export"
)

type exportLogRepository interface {
	List(ctx context.Context, filter models.LogFilter) ([]models.LogPaper, error)
}

type exportFeedbackRepository interface {
	ListAll(ctx context.Context) ([]models.TutorFeedback, error)
}

// ExportResult is a rendered report ready to stream to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService builds the flat log report projection and renders it in the
// requested format. The projection joins log papers with their tutor feedback
// threads in memory since the thread lives in its own collection.
type ExportService struct {
	logs     exportLogRepository
	feedback exportFeedbackRepository
	csv      *export.CSVExporter
	json     *export.JSONExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(logs exportLogRepository, feedback exportFeedbackRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		logs:     logs,
		feedback: feedback,
		csv:      export.NewCSVExporter(),
		json:     export.NewJSONExporter(),
		pdf:      export.NewPDFExporter("Practicum Log Report"),
		logger:   logger,
		now:      time.Now,
	}
}

// BuildRows assembles the export projection: every log paper with its tutor
// feedback thread inlined oldest first.
func (s *ExportService) BuildRows(ctx context.Context, filter models.LogFilter) ([]dto.LogExportRow, error) {
	logs, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch log papers for export")
	}
	feedback, err := s.feedback.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to fetch tutor feedback for export")
	}

	threads := map[primitive.ObjectID][]dto.TutorFeedbackEntry{}
	// ListAll returns newest first; prepend so each thread reads oldest first.
	for _, entry := range feedback {
		threads[entry.LogPaperID] = append([]dto.TutorFeedbackEntry{{
			TutorID:   entry.TutorID,
			Feedback:  entry.Feedback,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		}}, threads[entry.LogPaperID]...)
	}

	rows := make([]dto.LogExportRow, 0, len(logs))
	for _, log := range logs {
		row := dto.LogExportRow{
			LogPaperID:     log.ID.Hex(),
			StudentID:      log.StudentID,
			Activity:       log.Activity,
			Description:    log.Description,
			MentorComment:  log.MentorComment,
			TutorFeedbacks: threads[log.ID],
			Status:         string(log.Status),
			Date:           log.Date.Format("2006-01-02"),
			UpdatedAt:      log.UpdatedAt.Format(time.RFC3339),
		}
		if log.ReviewedAt != nil {
			row.ReviewedAt = log.ReviewedAt.Format(time.RFC3339)
		}
		if row.TutorFeedbacks == nil {
			row.TutorFeedbacks = []dto.TutorFeedbackEntry{}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Export renders the report in the given format: csv, json or pdf.
func (s *ExportService) Export(ctx context.Context, format string, filter models.LogFilter) (*ExportResult, error) {
	rows, err := s.BuildRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	stamp := s.now().UTC().Format("20060102-150405")
	switch strings.ToLower(format) {
	case "csv":
		body, err := s.csv.Render(tabulate(rows))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("log-report-%s.csv", stamp),
			ContentType: "text/csv",
			Body:        body,
		}, nil
	case "json":
		body, err := s.json.Render(rows)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render json report")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("log-report-%s.json", stamp),
			ContentType: "application/json",
			Body:        body,
		}, nil
	case "pdf":
		body, err := s.pdf.Render(tabulate(rows))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("log-report-%s.pdf", stamp),
			ContentType: "application/pdf",
			Body:        body,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format, expected csv, json or pdf")
	}
}

func tabulate(rows []dto.LogExportRow) export.Dataset {
	headers := []string{"Log ID", "Student ID", "Date", "Activity", "Description", "Status", "Mentor Comment", "Tutor Feedback", "Reviewed At"}
	out := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		thread := make([]string, 0, len(row.TutorFeedbacks))
		for _, entry := range row.TutorFeedbacks {
			thread = append(thread, entry.Feedback)
		}
		out.Rows = append(out.Rows, map[string]string{
			"Log ID":         row.LogPaperID,
			"Student ID":     strconv.FormatInt(row.StudentID, 10),
			"Date":           row.Date,
			"Activity":       row.Activity,
			"Description":    row.Description,
			"Status":         row.Status,
			"Mentor Comment": row.MentorComment,
			"Tutor Feedback": strings.Join(thread, " | "),
			"Reviewed At":    row.ReviewedAt,
		})
	}
	return out
}
