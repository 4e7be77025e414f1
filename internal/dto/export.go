package dto

// TutorFeedbackEntry is a single thread entry in the export projection.
type TutorFeedbackEntry struct {
	TutorID   int64  `json:"tutorId"`
	Feedback  string `json:"feedback"`
	CreatedAt string `json:"createdAt"`
}

// LogExportRow is the flat projection consumed by the report renderers:
// one row per log paper with its ordered tutor feedback thread inlined.
type LogExportRow struct {
	LogPaperID     string               `json:"logPaperId"`
	StudentID      int64                `json:"studentId"`
	Activity       string               `json:"activity"`
	Description    string               `json:"description"`
	MentorComment  string               `json:"mentorComment"`
	TutorFeedbacks []TutorFeedbackEntry `json:"tutorFeedbacks"`
	Status         string               `json:"status"`
	Date           string               `json:"date"`
	ReviewedAt     string               `json:"reviewedAt"`
	UpdatedAt      string               `json:"updatedAt"`
}
