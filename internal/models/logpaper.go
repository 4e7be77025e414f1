package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogStatus is the forward-only workflow state of a log paper.
type LogStatus string

const (
	StatusPending  LogStatus = "Pending"
	StatusVerified LogStatus = "Verified"
	StatusReviewed LogStatus = "Reviewed"
)

// Valid reports whether the status is a known value.
func (s LogStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusReviewed:
		return true
	}
	return false
}

// Attachment holds metadata for an uploaded file. The bytes themselves live
// on disk; only this projection is persisted with the log paper.
type Attachment struct {
	Filename string `bson:"filename" json:"filename"`
	Path     string `bson:"path" json:"path"`
	MimeType string `bson:"mimetype" json:"mimetype"`
	Size     int64  `bson:"size" json:"size"`
	URL      string `bson:"url" json:"url"`
}

// LogPaper is a practicum activity record in the document store. StudentID,
// MentorID and TutorID reference users in the relational store by numeric id;
// the reference is validated at write time and soft thereafter.
type LogPaper struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID     int64              `bson:"studentId" json:"studentId"`
	MentorID      *int64             `bson:"mentorId,omitempty" json:"mentorId,omitempty"`
	TutorID       *int64             `bson:"tutorId,omitempty" json:"tutorId,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	StartTime     string             `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime       string             `bson:"endTime,omitempty" json:"endTime,omitempty"`
	TotalHours    float64            `bson:"totalHours" json:"totalHours"`
	Activity      string             `bson:"activity" json:"activity"`
	Description   string             `bson:"description" json:"description"`
	Attachments   []Attachment       `bson:"attachments" json:"attachments"`
	MentorComment string             `bson:"mentorComment,omitempty" json:"mentorComment,omitempty"`
	TutorFeedback string             `bson:"tutorFeedback,omitempty" json:"tutorFeedback,omitempty"`
	Status        LogStatus          `bson:"status" json:"status"`
	VerifiedAt    *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	ReviewedAt    *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserLogCount pairs a referenced user id with a document count, as produced
// by the ranking aggregations.
type UserLogCount struct {
	UserID int64 `bson:"_id" json:"userId"`
	Count  int   `bson:"count" json:"count"`
}

// LogFilter narrows document-store queries. StudentIDs implements the
// in-set restriction used for mentor-scoped views; nil means unrestricted
// while an empty, non-nil slice matches nothing.
type LogFilter struct {
	StudentIDs []int64
	Status     *LogStatus
	Activity   *string
	From       *time.Time
	To         *time.Time
}
