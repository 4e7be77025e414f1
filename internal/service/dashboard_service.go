package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/dto"
	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

type dashboardAttendanceRepository interface {
	ListAll(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithStudent, error)
}

type dashboardLogRepository interface {
	List(ctx context.Context, filter models.LogFilter) ([]models.LogPaper, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.LogStatus) (int, error)
	TopStudentsByLogCount(ctx context.Context, limit int) ([]models.UserLogCount, error)
	TopMentorsByPendingCount(ctx context.Context, limit int) ([]models.UserLogCount, error)
}

type dashboardUserRepository interface {
	CountByRole(ctx context.Context, role models.UserRole) (int, error)
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type feedbackCounters interface {
	CountMentorFeedback(ctx context.Context) (int, error)
	CountTutorFeedback(ctx context.Context) (int, error)
}

// DashboardService merges the relational and document stores in application
// memory. The two stores share no query plane, so every joined view here is
// an explicit indexed merge over independently fetched result sets.
type DashboardService struct {
	attendance dashboardAttendanceRepository
	logs       dashboardLogRepository
	users      dashboardUserRepository
	feedback   feedbackCounters
	logger     *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(attendance dashboardAttendanceRepository, logs dashboardLogRepository, users dashboardUserRepository, feedback feedbackCounters, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{attendance: attendance, logs: logs, users: users, feedback: feedback, logger: logger}
}

// ProgressRequest filters the student progress dashboard.
type ProgressRequest struct {
	From     *time.Time
	To       *time.Time
	MinHours *float64
	MinLogs  *int
}

// AttendanceOverview groups attendance by resolved student name and derives
// the attendance rate, one decimal place. An unreachable store yields an
// empty overview flagged degraded rather than an error.
func (s *DashboardService) AttendanceOverview(ctx context.Context, filter models.AttendanceFilter) ([]dto.AttendanceOverviewRow, bool, error) {
	records, err := s.attendance.ListAll(ctx, filter)
	if err != nil {
		s.logger.Warn("attendance overview: relational store unreachable", zap.Error(err))
		return []dto.AttendanceOverviewRow{}, true, nil
	}

	type bucket struct {
		attended int
		missed   int
		attType  models.AttendanceType
	}
	grouped := map[string]*bucket{}
	order := []string{}
	for _, record := range records {
		name := record.StudentName
		if name == "" {
			name = "Unknown"
		}
		b, ok := grouped[name]
		if !ok {
			b = &bucket{attType: record.Type}
			grouped[name] = b
			order = append(order, name)
		}
		if record.Attended == models.AttendedYes {
			b.attended++
		} else {
			b.missed++
		}
	}

	rows := make([]dto.AttendanceOverviewRow, 0, len(order))
	for _, name := range order {
		b := grouped[name]
		total := b.attended + b.missed
		rate := 0.0
		if total > 0 {
			rate = round1(float64(b.attended) / float64(total) * 100)
		}
		rows = append(rows, dto.AttendanceOverviewRow{
			Name:           name,
			Type:           string(b.attType),
			Attended:       b.attended,
			Missed:         b.missed,
			Total:          total,
			AttendanceRate: rate,
		})
	}
	return rows, false, nil
}

// LogSummary aggregates log papers by status, activity and calendar month.
// An unreachable store yields zeroed aggregates flagged degraded.
func (s *DashboardService) LogSummary(ctx context.Context, filter models.LogFilter) (*dto.LogSummaryResponse, bool, error) {
	logs, err := s.logs.List(ctx, filter)
	if err != nil {
		s.logger.Warn("log summary: document store unreachable", zap.Error(err))
		return &dto.LogSummaryResponse{
			ByStatus:   map[string]int{},
			ByActivity: []dto.NamedCount{},
			ByMonth:    []dto.NamedCount{},
		}, true, nil
	}

	byStatus := map[string]int{}
	byActivity := map[string]int{}
	byMonth := map[string]int{}
	monthKeys := map[string]time.Time{}
	for _, log := range logs {
		byStatus[string(log.Status)]++
		byActivity[log.Activity]++
		month := log.CreatedAt.Format("Jan 2006")
		byMonth[month]++
		if _, ok := monthKeys[month]; !ok {
			monthKeys[month] = time.Date(log.CreatedAt.Year(), log.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}

	activities := make([]dto.NamedCount, 0, len(byActivity))
	for name, count := range byActivity {
		activities = append(activities, dto.NamedCount{Name: name, Count: count})
	}
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Count != activities[j].Count {
			return activities[i].Count > activities[j].Count
		}
		return activities[i].Name < activities[j].Name
	})

	months := make([]dto.NamedCount, 0, len(byMonth))
	for name, count := range byMonth {
		months = append(months, dto.NamedCount{Name: name, Count: count})
	}
	sort.Slice(months, func(i, j int) bool {
		return monthKeys[months[i].Name].Before(monthKeys[months[j].Name])
	})

	return &dto.LogSummaryResponse{
		TotalLogs:  len(logs),
		ByStatus:   byStatus,
		ByActivity: activities,
		ByMonth:    months,
	}, false, nil
}

// StudentProgress is the cross-store merge: attendance days from the
// relational store, log counts and hours from the document store, keyed by
// resolved student display name. Either store being unreachable degrades the
// result to the other side instead of failing; the returned flag marks that.
func (s *DashboardService) StudentProgress(ctx context.Context, req ProgressRequest) (*dto.ProgressResponse, bool, error) {
	degraded := false

	attendance, err := s.attendance.ListAll(ctx, models.AttendanceFilter{})
	if err != nil {
		s.logger.Warn("progress: relational store unreachable", zap.Error(err))
		degraded = true
		attendance = nil
	}

	logs, err := s.logs.List(ctx, models.LogFilter{From: req.From, To: req.To})
	if err != nil {
		s.logger.Warn("progress: document store unreachable", zap.Error(err))
		degraded = true
		logs = nil
	}

	// Index the smaller relational side once so the merge stays linear.
	nameByStudent := map[int64]string{}
	for _, record := range attendance {
		if record.StudentName != "" {
			nameByStudent[record.StudentID] = record.StudentName
		}
	}

	unresolved := []int64{}
	seen := map[int64]struct{}{}
	for _, log := range logs {
		if _, ok := nameByStudent[log.StudentID]; ok {
			continue
		}
		if _, ok := seen[log.StudentID]; ok {
			continue
		}
		seen[log.StudentID] = struct{}{}
		unresolved = append(unresolved, log.StudentID)
	}
	if len(unresolved) > 0 && !degraded {
		names, err := s.users.NamesByIDs(ctx, unresolved)
		if err != nil {
			s.logger.Warn("progress: name resolution failed", zap.Error(err))
			degraded = true
		} else {
			for id, name := range names {
				nameByStudent[id] = name
			}
		}
	}

	progress := map[string]*dto.ProgressRow{}
	order := []string{}
	row := func(name string) *dto.ProgressRow {
		if r, ok := progress[name]; ok {
			return r
		}
		r := &dto.ProgressRow{Name: name}
		progress[name] = r
		order = append(order, name)
		return r
	}

	for _, record := range attendance {
		name := record.StudentName
		if name == "" {
			name = fmt.Sprintf("Student #%d", record.StudentID)
		}
		r := row(name)
		if record.Attended == models.AttendedYes {
			r.AttendanceDays++
		}
	}

	for _, log := range logs {
		name, ok := nameByStudent[log.StudentID]
		if !ok {
			name = fmt.Sprintf("Student #%d", log.StudentID)
		}
		r := row(name)
		r.LogsSubmitted++
		r.TotalHours += log.TotalHours
	}

	data := make([]dto.ProgressRow, 0, len(order))
	for _, name := range order {
		r := progress[name]
		if req.MinHours != nil && r.TotalHours < *req.MinHours {
			continue
		}
		if req.MinLogs != nil && r.LogsSubmitted < *req.MinLogs {
			continue
		}
		data = append(data, *r)
	}
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].TotalHours > data[j].TotalHours
	})

	summary := dto.ProgressSummary{TotalStudents: len(data)}
	for _, r := range data {
		summary.TotalHours += r.TotalHours
		summary.TotalLogs += r.LogsSubmitted
	}
	if summary.TotalStudents > 0 {
		summary.AvgHours = round1(summary.TotalHours / float64(summary.TotalStudents))
	}

	return &dto.ProgressResponse{Summary: summary, Data: data}, degraded, nil
}

// Stats counts entities across both stores for the tutor dashboard. A
// transiently unreachable store leaves its counters at zero and flags the
// response as degraded.
func (s *DashboardService) Stats(ctx context.Context) (*dto.StatsResponse, bool, error) {
	resp := &dto.StatsResponse{}
	degraded := false

	count := func(label string, fn func() (int, error), dst *int) {
		value, err := fn()
		if err != nil {
			s.logger.Warn("stats: count failed", zap.String("counter", label), zap.Error(err))
			degraded = true
			return
		}
		*dst = value
	}

	count("students", func() (int, error) { return s.users.CountByRole(ctx, models.RoleStudent) }, &resp.TotalStudents)
	count("mentors", func() (int, error) { return s.users.CountByRole(ctx, models.RoleMentor) }, &resp.TotalMentors)
	count("logs", func() (int, error) { return s.logs.CountAll(ctx) }, &resp.TotalLogs)
	count("pending", func() (int, error) { return s.logs.CountByStatus(ctx, models.StatusPending) }, &resp.PendingLogs)
	count("verified", func() (int, error) { return s.logs.CountByStatus(ctx, models.StatusVerified) }, &resp.VerifiedLogs)
	count("reviewed", func() (int, error) { return s.logs.CountByStatus(ctx, models.StatusReviewed) }, &resp.ReviewedLogs)
	count("tutor_feedback", func() (int, error) { return s.feedback.CountTutorFeedback(ctx) }, &resp.TutorFeedbacks)
	count("mentor_feedback", func() (int, error) { return s.feedback.CountMentorFeedback(ctx) }, &resp.MentorFeedbacks)

	return resp, degraded, nil
}

// Insights ranks the most active students and the mentors with the deepest
// pending backlog, five each. Each ranking degrades to empty on store
// failure independently of the other.
func (s *DashboardService) Insights(ctx context.Context) (*dto.InsightsResponse, bool, error) {
	degraded := false

	students, err := s.logs.TopStudentsByLogCount(ctx, 5)
	if err != nil {
		s.logger.Warn("insights: failed to rank active students", zap.Error(err))
		degraded = true
		students = nil
	}
	mentors, err := s.logs.TopMentorsByPendingCount(ctx, 5)
	if err != nil {
		s.logger.Warn("insights: failed to rank pending mentors", zap.Error(err))
		degraded = true
		mentors = nil
	}

	resp := &dto.InsightsResponse{
		ActiveStudents: make([]dto.IDCount, 0, len(students)),
		PendingMentors: make([]dto.IDCount, 0, len(mentors)),
	}
	for _, s := range students {
		resp.ActiveStudents = append(resp.ActiveStudents, dto.IDCount{UserID: s.UserID, Count: s.Count})
	}
	for _, m := range mentors {
		resp.PendingMentors = append(resp.PendingMentors, dto.IDCount{UserID: m.UserID, Count: m.Count})
	}
	return resp, degraded, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
