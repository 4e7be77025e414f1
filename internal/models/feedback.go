package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MentorFeedback is the authoritative per-log mentor verdict, stored
// separately from the mentorComment mirrored on the log paper itself.
type MentorFeedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LogPaperID primitive.ObjectID `bson:"logPaperId" json:"logPaperId"`
	MentorID   int64              `bson:"mentorId" json:"mentorId"`
	StudentID  int64              `bson:"studentId" json:"studentId"`
	Comment    string             `bson:"comment" json:"comment"`
	Approved   bool               `bson:"approved" json:"approved"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TutorFeedback is one entry in an append-only thread attached to a log
// paper. Entries are never mutated; new feedback appends instead.
type TutorFeedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LogPaperID primitive.ObjectID `bson:"logPaperId" json:"logPaperId"`
	TutorID    int64              `bson:"tutorId" json:"tutorId"`
	StudentID  int64              `bson:"studentId" json:"studentId"`
	Feedback   string             `bson:"feedback" json:"feedback"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
