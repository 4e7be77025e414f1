package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

// TutorFeedbackRepository stores the append-only tutor feedback thread.
type TutorFeedbackRepository struct {
	coll *mongo.Collection
}

// NewTutorFeedbackRepository constructs the repository.
func NewTutorFeedbackRepository(db *mongo.Database) *TutorFeedbackRepository {
	return &TutorFeedbackRepository{coll: db.Collection("tutor_feedback")}
}

// Create appends a thread entry. Entries are never updated or removed.
func (r *TutorFeedbackRepository) Create(ctx context.Context, feedback *models.TutorFeedback) error {
	feedback.CreatedAt = time.Now().UTC()
	result, err := r.coll.InsertOne(ctx, feedback)
	if err != nil {
		return fmt.Errorf("insert tutor feedback: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		feedback.ID = oid
	}
	return nil
}

// ListByLogID returns the thread for a log paper, newest first.
func (r *TutorFeedbackRepository) ListByLogID(ctx context.Context, logPaperID primitive.ObjectID) ([]models.TutorFeedback, error) {
	return r.list(ctx, bson.M{"logPaperId": logPaperID})
}

// ListAll returns every thread entry, newest first.
func (r *TutorFeedbackRepository) ListAll(ctx context.Context) ([]models.TutorFeedback, error) {
	return r.list(ctx, bson.M{})
}

// Count returns the total number of thread entries.
func (r *TutorFeedbackRepository) Count(ctx context.Context) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count tutor feedback: %w", err)
	}
	return int(count), nil
}

func (r *TutorFeedbackRepository) list(ctx context.Context, filter bson.M) ([]models.TutorFeedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find tutor feedback: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	entries := []models.TutorFeedback{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode tutor feedback: %w", err)
	}
	return entries, nil
}
