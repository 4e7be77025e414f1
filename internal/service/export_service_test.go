package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/dto"
	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
)

type fakeExportLogRepo struct {
	logs []models.LogPaper
	err  error
}

func (f *fakeExportLogRepo) List(ctx context.Context, filter models.LogFilter) ([]models.LogPaper, error) {
	return f.logs, f.err
}

type fakeExportFeedbackRepo struct {
	entries []models.TutorFeedback
}

func (f *fakeExportFeedbackRepo) ListAll(ctx context.Context) ([]models.TutorFeedback, error) {
	return f.entries, nil
}

func exportFixture() (*fakeExportLogRepo, *fakeExportFeedbackRepo, primitive.ObjectID) {
	logID := primitive.NewObjectID()
	reviewedAt := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	logs := &fakeExportLogRepo{logs: []models.LogPaper{{
		ID:            logID,
		StudentID:     20,
		Date:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Activity:      "Ward Rounds",
		Description:   "Observed patient intake",
		MentorComment: "good work",
		Status:        models.StatusReviewed,
		ReviewedAt:    &reviewedAt,
		UpdatedAt:     reviewedAt,
	}}}
	// Newest first, the way the collection query returns them.
	feedback := &fakeExportFeedbackRepo{entries: []models.TutorFeedback{
		{LogPaperID: logID, TutorID: 30, Feedback: "looks better now", CreatedAt: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{LogPaperID: logID, TutorID: 30, Feedback: "revise section 2", CreatedAt: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)},
	}}
	return logs, feedback, logID
}

func TestExportBuildRows(t *testing.T) {
	logs, feedback, logID := exportFixture()
	svc := NewExportService(logs, feedback, zap.NewNop())

	rows, err := svc.BuildRows(context.Background(), models.LogFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, logID.Hex(), row.LogPaperID)
	assert.Equal(t, "2026-03-02", row.Date)
	assert.Equal(t, "2026-03-10T11:00:00Z", row.ReviewedAt)

	// Thread reads oldest first regardless of fetch order.
	require.Len(t, row.TutorFeedbacks, 2)
	assert.Equal(t, "revise section 2", row.TutorFeedbacks[0].Feedback)
	assert.Equal(t, "looks better now", row.TutorFeedbacks[1].Feedback)
}

func TestExportBuildRowsNoFeedback(t *testing.T) {
	logs, _, _ := exportFixture()
	svc := NewExportService(logs, &fakeExportFeedbackRepo{}, zap.NewNop())

	rows, err := svc.BuildRows(context.Background(), models.LogFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].TutorFeedbacks)
	assert.Empty(t, rows[0].TutorFeedbacks)
}

func TestExportCSV(t *testing.T) {
	logs, feedback, logID := exportFixture()
	svc := NewExportService(logs, feedback, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 11, 9, 15, 0, 0, time.UTC)
	}

	result, err := svc.Export(context.Background(), "csv", models.LogFilter{})
	require.NoError(t, err)
	assert.Equal(t, "log-report-20260311-091500.csv", result.Filename)
	assert.Equal(t, "text/csv", result.ContentType)

	lines := strings.Split(strings.TrimSpace(string(result.Body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Log ID,Student ID,Date,Activity,Description,Status,Mentor Comment,Tutor Feedback,Reviewed At", lines[0])
	assert.Contains(t, lines[1], logID.Hex())
	assert.Contains(t, lines[1], "revise section 2 | looks better now")
}

func TestExportJSON(t *testing.T) {
	logs, feedback, _ := exportFixture()
	svc := NewExportService(logs, feedback, zap.NewNop())

	result, err := svc.Export(context.Background(), "json", models.LogFilter{})
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)

	var rows []dto.LogExportRow
	require.NoError(t, json.Unmarshal(result.Body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(20), rows[0].StudentID)
	assert.Equal(t, "Reviewed", rows[0].Status)
}

func TestExportPDF(t *testing.T) {
	logs, feedback, _ := exportFixture()
	svc := NewExportService(logs, feedback, zap.NewNop())

	result, err := svc.Export(context.Background(), "pdf", models.LogFilter{})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Body), "%PDF"))
}

func TestExportUnsupportedFormat(t *testing.T) {
	logs, feedback, _ := exportFixture()
	svc := NewExportService(logs, feedback, zap.NewNop())

	_, err := svc.Export(context.Background(), "xlsx", models.LogFilter{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportStoreUnavailable(t *testing.T) {
	svc := NewExportService(&fakeExportLogRepo{err: context.DeadlineExceeded}, &fakeExportFeedbackRepo{}, zap.NewNop())

	_, err := svc.Export(context.Background(), "csv", models.LogFilter{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrStoreUnavailable))
}
