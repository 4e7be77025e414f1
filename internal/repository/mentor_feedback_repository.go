package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

// MentorFeedbackRepository stores the authoritative mentor verdict per log.
type MentorFeedbackRepository struct {
	coll *mongo.Collection
}

// NewMentorFeedbackRepository constructs the repository.
func NewMentorFeedbackRepository(db *mongo.Database) *MentorFeedbackRepository {
	return &MentorFeedbackRepository{coll: db.Collection("mentor_feedback")}
}

// Create inserts a mentor feedback entry.
func (r *MentorFeedbackRepository) Create(ctx context.Context, feedback *models.MentorFeedback) error {
	now := time.Now().UTC()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now
	result, err := r.coll.InsertOne(ctx, feedback)
	if err != nil {
		return fmt.Errorf("insert mentor feedback: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		feedback.ID = oid
	}
	return nil
}

// FindByLogID returns the entry for a log paper; mongo.ErrNoDocuments when
// no feedback has been given yet.
func (r *MentorFeedbackRepository) FindByLogID(ctx context.Context, logPaperID primitive.ObjectID) (*models.MentorFeedback, error) {
	var feedback models.MentorFeedback
	if err := r.coll.FindOne(ctx, bson.M{"logPaperId": logPaperID}).Decode(&feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// Count returns the total number of mentor feedback entries.
func (r *MentorFeedbackRepository) Count(ctx context.Context) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count mentor feedback: %w", err)
	}
	return int(count), nil
}
