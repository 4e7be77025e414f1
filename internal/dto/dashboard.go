package dto

// AttendanceOverviewRow is one student's attendance aggregate, grouped in
// application memory by resolved display name.
type AttendanceOverviewRow struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Attended       int     `json:"attended"`
	Missed         int     `json:"missed"`
	Total          int     `json:"total"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// NamedCount pairs a grouping key with a count.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LogSummaryResponse aggregates log papers by status, activity and month.
type LogSummaryResponse struct {
	TotalLogs  int            `json:"totalLogs"`
	ByStatus   map[string]int `json:"byStatus"`
	ByActivity []NamedCount   `json:"byActivity"`
	ByMonth    []NamedCount   `json:"byMonth"`
}

// ProgressRow is one student's merged attendance/log totals.
type ProgressRow struct {
	Name           string  `json:"name"`
	AttendanceDays int     `json:"attendanceDays"`
	LogsSubmitted  int     `json:"logsSubmitted"`
	TotalHours     float64 `json:"totalHours"`
}

// ProgressSummary carries the derived totals over all matched students.
type ProgressSummary struct {
	TotalStudents int     `json:"totalStudents"`
	TotalLogs     int     `json:"totalLogs"`
	TotalHours    float64 `json:"totalHours"`
	AvgHours      float64 `json:"avgHours"`
}

// ProgressResponse is the student progress dashboard payload.
type ProgressResponse struct {
	Summary ProgressSummary `json:"summary"`
	Data    []ProgressRow   `json:"data"`
}

// StatsResponse counts entities across both stores for the tutor dashboard.
type StatsResponse struct {
	TotalStudents   int `json:"totalStudents"`
	TotalMentors    int `json:"totalMentors"`
	TotalLogs       int `json:"totalLogs"`
	PendingLogs     int `json:"pendingLogs"`
	VerifiedLogs    int `json:"verifiedLogs"`
	ReviewedLogs    int `json:"reviewedLogs"`
	TutorFeedbacks  int `json:"tutorFeedbacks"`
	MentorFeedbacks int `json:"mentorFeedbacks"`
}

// IDCount pairs a numeric user id with a count.
type IDCount struct {
	UserID int64 `json:"userId"`
	Count  int   `json:"count"`
}

// InsightsResponse lists the most active students and the mentors with the
// largest pending backlog.
type InsightsResponse struct {
	ActiveStudents []IDCount `json:"activeStudents"`
	PendingMentors []IDCount `json:"pendingMentors"`
}
