package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

type fakeDashAttendanceRepo struct {
	records []models.AttendanceWithStudent
	err     error
}

func (f *fakeDashAttendanceRepo) ListAll(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithStudent, error) {
	return f.records, f.err
}

type fakeDashLogRepo struct {
	logs     []models.LogPaper
	listErr  error
	total    int
	byStatus map[models.LogStatus]int
	countErr error
	top      []models.UserLogCount
	topErr   error
}

func (f *fakeDashLogRepo) List(ctx context.Context, filter models.LogFilter) ([]models.LogPaper, error) {
	return f.logs, f.listErr
}

func (f *fakeDashLogRepo) CountAll(ctx context.Context) (int, error) {
	return f.total, f.countErr
}

func (f *fakeDashLogRepo) CountByStatus(ctx context.Context, status models.LogStatus) (int, error) {
	return f.byStatus[status], f.countErr
}

func (f *fakeDashLogRepo) TopStudentsByLogCount(ctx context.Context, limit int) ([]models.UserLogCount, error) {
	return f.top, f.topErr
}

func (f *fakeDashLogRepo) TopMentorsByPendingCount(ctx context.Context, limit int) ([]models.UserLogCount, error) {
	return f.top, f.topErr
}

type fakeDashUserRepo struct {
	counts   map[models.UserRole]int
	names    map[int64]string
	namesErr error
}

func (f *fakeDashUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	return f.counts[role], nil
}

func (f *fakeDashUserRepo) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	out := map[int64]string{}
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeFeedbackCounters struct {
	mentor int
	tutor  int
	err    error
}

func (f *fakeFeedbackCounters) CountMentorFeedback(ctx context.Context) (int, error) {
	return f.mentor, f.err
}

func (f *fakeFeedbackCounters) CountTutorFeedback(ctx context.Context) (int, error) {
	return f.tutor, f.err
}

func attendanceRow(studentID int64, name string, attended models.AttendedFlag) models.AttendanceWithStudent {
	return models.AttendanceWithStudent{
		AttendanceRecord: models.AttendanceRecord{
			StudentID: studentID,
			Type:      models.AttendancePracticum,
			Attended:  attended,
			CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
		StudentName: name,
	}
}

func newDashboardForTest(att *fakeDashAttendanceRepo, logs *fakeDashLogRepo, users *fakeDashUserRepo, fb *fakeFeedbackCounters) *DashboardService {
	return NewDashboardService(att, logs, users, fb, zap.NewNop())
}

func TestAttendanceOverviewRate(t *testing.T) {
	att := &fakeDashAttendanceRepo{records: []models.AttendanceWithStudent{
		attendanceRow(20, "Nimal Perera", models.AttendedYes),
		attendanceRow(20, "Nimal Perera", models.AttendedYes),
		attendanceRow(20, "Nimal Perera", models.AttendedNo),
		attendanceRow(21, "Kamala Silva", models.AttendedNo),
	}}
	svc := newDashboardForTest(att, &fakeDashLogRepo{}, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	rows, degraded, err := svc.AttendanceOverview(context.Background(), models.AttendanceFilter{})
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, rows, 2)
	assert.Equal(t, "Nimal Perera", rows[0].Name)
	assert.Equal(t, 2, rows[0].Attended)
	assert.Equal(t, 1, rows[0].Missed)
	assert.Equal(t, 3, rows[0].Total)
	assert.InDelta(t, 66.7, rows[0].AttendanceRate, 0.001)
	assert.InDelta(t, 0.0, rows[1].AttendanceRate, 0.001)
}

func TestAttendanceOverviewDegraded(t *testing.T) {
	att := &fakeDashAttendanceRepo{err: errors.New("connection refused")}
	svc := newDashboardForTest(att, &fakeDashLogRepo{}, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	rows, degraded, err := svc.AttendanceOverview(context.Background(), models.AttendanceFilter{})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestLogSummaryGrouping(t *testing.T) {
	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	logs := &fakeDashLogRepo{logs: []models.LogPaper{
		{Activity: "Ward Rounds", Status: models.StatusPending, CreatedAt: march},
		{Activity: "Ward Rounds", Status: models.StatusVerified, CreatedAt: march},
		{Activity: "Clinic Duty", Status: models.StatusReviewed, CreatedAt: april},
	}}
	svc := newDashboardForTest(&fakeDashAttendanceRepo{}, logs, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	summary, degraded, err := svc.LogSummary(context.Background(), models.LogFilter{})
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, 3, summary.TotalLogs)
	assert.Equal(t, 1, summary.ByStatus["Pending"])
	assert.Equal(t, 1, summary.ByStatus["Verified"])
	assert.Equal(t, 1, summary.ByStatus["Reviewed"])

	require.Len(t, summary.ByActivity, 2)
	assert.Equal(t, "Ward Rounds", summary.ByActivity[0].Name)
	assert.Equal(t, 2, summary.ByActivity[0].Count)

	require.Len(t, summary.ByMonth, 2)
	assert.Equal(t, "Mar 2026", summary.ByMonth[0].Name)
	assert.Equal(t, "Apr 2026", summary.ByMonth[1].Name)
}

func TestLogSummaryDegraded(t *testing.T) {
	logs := &fakeDashLogRepo{listErr: errors.New("server selection timeout")}
	svc := newDashboardForTest(&fakeDashAttendanceRepo{}, logs, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	summary, degraded, err := svc.LogSummary(context.Background(), models.LogFilter{})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, 0, summary.TotalLogs)
	assert.NotNil(t, summary.ByStatus)
	assert.NotNil(t, summary.ByActivity)
	assert.NotNil(t, summary.ByMonth)
}

func TestStudentProgressMerge(t *testing.T) {
	att := &fakeDashAttendanceRepo{records: []models.AttendanceWithStudent{
		attendanceRow(20, "Nimal Perera", models.AttendedYes),
		attendanceRow(20, "Nimal Perera", models.AttendedYes),
	}}
	logs := &fakeDashLogRepo{logs: []models.LogPaper{
		{StudentID: 20, TotalHours: 4},
		{StudentID: 20, TotalHours: 3.5},
		{StudentID: 99, TotalHours: 8},
		{StudentID: 77, TotalHours: 1},
	}}
	users := &fakeDashUserRepo{names: map[int64]string{99: "Kamala Silva"}}
	svc := newDashboardForTest(att, logs, users, &fakeFeedbackCounters{})

	resp, degraded, err := svc.StudentProgress(context.Background(), ProgressRequest{})
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, resp.Data, 3)

	// Sorted by total hours descending.
	assert.Equal(t, "Kamala Silva", resp.Data[0].Name)
	assert.InDelta(t, 8, resp.Data[0].TotalHours, 0.001)

	assert.Equal(t, "Nimal Perera", resp.Data[1].Name)
	assert.Equal(t, 2, resp.Data[1].AttendanceDays)
	assert.Equal(t, 2, resp.Data[1].LogsSubmitted)
	assert.InDelta(t, 7.5, resp.Data[1].TotalHours, 0.001)

	// No relational record resolves student 77; the synthetic key stands in.
	assert.Equal(t, "Student #77", resp.Data[2].Name)

	assert.Equal(t, 3, resp.Summary.TotalStudents)
	assert.Equal(t, 4, resp.Summary.TotalLogs)
	assert.InDelta(t, 16.5, resp.Summary.TotalHours, 0.001)
	assert.InDelta(t, 5.5, resp.Summary.AvgHours, 0.001)
}

func TestStudentProgressFilters(t *testing.T) {
	att := &fakeDashAttendanceRepo{records: []models.AttendanceWithStudent{
		attendanceRow(20, "Nimal Perera", models.AttendedYes),
		attendanceRow(21, "Kamala Silva", models.AttendedYes),
	}}
	logs := &fakeDashLogRepo{logs: []models.LogPaper{
		{StudentID: 20, TotalHours: 10},
		{StudentID: 21, TotalHours: 2},
	}}
	svc := newDashboardForTest(att, logs, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	minHours := 5.0
	resp, _, err := svc.StudentProgress(context.Background(), ProgressRequest{MinHours: &minHours})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Nimal Perera", resp.Data[0].Name)
	assert.Equal(t, 1, resp.Summary.TotalStudents)
}

func TestStudentProgressDegradedRelationalDown(t *testing.T) {
	att := &fakeDashAttendanceRepo{err: errors.New("connection refused")}
	logs := &fakeDashLogRepo{logs: []models.LogPaper{
		{StudentID: 20, TotalHours: 4},
	}}
	svc := newDashboardForTest(att, logs, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	resp, degraded, err := svc.StudentProgress(context.Background(), ProgressRequest{})
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Student #20", resp.Data[0].Name)
	assert.Equal(t, 0, resp.Data[0].AttendanceDays)
}

func TestStudentProgressDegradedDocumentDown(t *testing.T) {
	att := &fakeDashAttendanceRepo{records: []models.AttendanceWithStudent{
		attendanceRow(20, "Nimal Perera", models.AttendedYes),
	}}
	logs := &fakeDashLogRepo{listErr: errors.New("server selection timeout")}
	svc := newDashboardForTest(att, logs, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	resp, degraded, err := svc.StudentProgress(context.Background(), ProgressRequest{})
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Data[0].AttendanceDays)
	assert.Equal(t, 0, resp.Data[0].LogsSubmitted)
}

func TestStatsAcrossStores(t *testing.T) {
	users := &fakeDashUserRepo{counts: map[models.UserRole]int{
		models.RoleStudent: 12,
		models.RoleMentor:  4,
	}}
	logs := &fakeDashLogRepo{
		total: 30,
		byStatus: map[models.LogStatus]int{
			models.StatusPending:  5,
			models.StatusVerified: 10,
			models.StatusReviewed: 15,
		},
	}
	svc := newDashboardForTest(&fakeDashAttendanceRepo{}, logs, users, &fakeFeedbackCounters{mentor: 7, tutor: 9})

	stats, degraded, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, 12, stats.TotalStudents)
	assert.Equal(t, 4, stats.TotalMentors)
	assert.Equal(t, 30, stats.TotalLogs)
	assert.Equal(t, 5, stats.PendingLogs)
	assert.Equal(t, 15, stats.ReviewedLogs)
	assert.Equal(t, 7, stats.MentorFeedbacks)
	assert.Equal(t, 9, stats.TutorFeedbacks)
}

func TestStatsDegradedOnCountFailure(t *testing.T) {
	logs := &fakeDashLogRepo{countErr: errors.New("server selection timeout")}
	svc := newDashboardForTest(&fakeDashAttendanceRepo{}, logs, &fakeDashUserRepo{counts: map[models.UserRole]int{models.RoleStudent: 12}}, &fakeFeedbackCounters{})

	stats, degraded, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, 12, stats.TotalStudents)
	assert.Equal(t, 0, stats.TotalLogs)
}

func TestInsights(t *testing.T) {
	logs := &fakeDashLogRepo{top: []models.UserLogCount{{UserID: 20, Count: 9}}}
	svc := newDashboardForTest(&fakeDashAttendanceRepo{}, logs, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	insights, degraded, err := svc.Insights(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, insights.ActiveStudents, 1)
	assert.Equal(t, int64(20), insights.ActiveStudents[0].UserID)
	assert.Equal(t, 9, insights.ActiveStudents[0].Count)
}

func TestInsightsDegraded(t *testing.T) {
	logs := &fakeDashLogRepo{topErr: errors.New("server selection timeout")}
	svc := newDashboardForTest(&fakeDashAttendanceRepo{}, logs, &fakeDashUserRepo{}, &fakeFeedbackCounters{})

	insights, degraded, err := svc.Insights(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Empty(t, insights.ActiveStudents)
	assert.Empty(t, insights.PendingMentors)
}
