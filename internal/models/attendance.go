package models

import "time"

// AttendanceType distinguishes class days from practicum days.
type AttendanceType string

const (
	AttendanceClass     AttendanceType = "Class"
	AttendancePracticum AttendanceType = "Practicum"
)

// Valid reports whether the type is a known value.
func (t AttendanceType) Valid() bool {
	return t == AttendanceClass || t == AttendancePracticum
}

// AttendedFlag records whether the student was present.
type AttendedFlag string

const (
	AttendedYes AttendedFlag = "Yes"
	AttendedNo  AttendedFlag = "No"
)

// Valid reports whether the flag is a known value.
func (f AttendedFlag) Valid() bool {
	return f == AttendedYes || f == AttendedNo
}

// AttendanceRecord is an immutable per-student, per-day entry in the
// relational store. At most one record exists per student per calendar day.
type AttendanceRecord struct {
	ID        int64          `db:"id" json:"id"`
	StudentID int64          `db:"student_id" json:"studentId"`
	Type      AttendanceType `db:"type" json:"type"`
	Attended  AttendedFlag   `db:"attended" json:"attended"`
	Reason    *string        `db:"reason" json:"reason,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// AttendanceWithStudent joins the record with the owning student's name for
// tutor-facing listings and overview grouping.
type AttendanceWithStudent struct {
	AttendanceRecord
	StudentName string `db:"student_name" json:"studentName"`
}

// AttendanceFilter narrows tutor-facing attendance queries.
type AttendanceFilter struct {
	From *time.Time
	To   *time.Time
	Type *AttendanceType
}
