package models

import "time"

// MentorStudentMap pairs a mentor with a student. The pair is unique; both
// sides reference users in the relational store by numeric id.
type MentorStudentMap struct {
	ID        int64     `db:"id" json:"id"`
	MentorID  int64     `db:"mentor_id" json:"mentorId"`
	StudentID int64     `db:"student_id" json:"studentId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// MappingDetail carries the pair together with resolved user projections.
type MappingDetail struct {
	ID           int64     `db:"id" json:"id"`
	MentorID     int64     `db:"mentor_id" json:"mentorId"`
	StudentID    int64     `db:"student_id" json:"studentId"`
	MentorName   string    `db:"mentor_name" json:"mentorName"`
	MentorEmail  string    `db:"mentor_email" json:"mentorEmail"`
	StudentName  string    `db:"student_name" json:"studentName"`
	StudentEmail string    `db:"student_email" json:"studentEmail"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// MappingFilter narrows mapping listings by either side of the pair.
type MappingFilter struct {
	MentorID  *int64
	StudentID *int64
}
