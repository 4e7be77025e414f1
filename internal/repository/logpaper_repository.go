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

// LogPaperRepository handles persistence for log papers in the document store.
type LogPaperRepository struct {
	coll *mongo.Collection
}

// NewLogPaperRepository constructs the repository.
func NewLogPaperRepository(db *mongo.Database) *LogPaperRepository {
	return &LogPaperRepository{coll: db.Collection("log_papers")}
}

// Create inserts a log paper and fills in the generated object id.
func (r *LogPaperRepository) Create(ctx context.Context, log *models.LogPaper) error {
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	if log.Attachments == nil {
		log.Attachments = []models.Attachment{}
	}
	result, err := r.coll.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("insert log paper: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		log.ID = oid
	}
	return nil
}

// FindByID returns the log paper with the given id; mongo.ErrNoDocuments
// when absent.
func (r *LogPaperRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LogPaper, error) {
	var log models.LogPaper
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&log); err != nil {
		return nil, err
	}
	return &log, nil
}

// List returns log papers matching the filter, ordered by date descending.
// A non-nil empty StudentIDs set matches nothing without querying.
func (r *LogPaperRepository) List(ctx context.Context, filter models.LogFilter) ([]models.LogPaper, error) {
	if filter.StudentIDs != nil && len(filter.StudentIDs) == 0 {
		return []models.LogPaper{}, nil
	}

	query := bson.M{}
	if filter.StudentIDs != nil {
		query["studentId"] = bson.M{"$in": filter.StudentIDs}
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	if filter.Activity != nil {
		query["activity"] = *filter.Activity
	}
	if filter.From != nil || filter.To != nil {
		window := bson.M{}
		if filter.From != nil {
			window["$gte"] = *filter.From
		}
		if filter.To != nil {
			window["$lte"] = *filter.To
		}
		query["createdAt"] = window
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find log papers: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	logs := []models.LogPaper{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode log papers: %w", err)
	}
	return logs, nil
}

// Verify transitions a Pending log paper to Verified in one document update.
// The status precondition is part of the update filter, so a concurrent or
// repeated verify cannot move the record twice; mongo.ErrNoDocuments means
// the id is unknown or the record is no longer Pending.
func (r *LogPaperRepository) Verify(ctx context.Context, id primitive.ObjectID, mentorID int64, comment string, at time.Time) (*models.LogPaper, error) {
	filter := bson.M{"_id": id, "status": models.StatusPending}
	update := bson.M{"$set": bson.M{
		"mentorId":      mentorID,
		"mentorComment": comment,
		"status":        models.StatusVerified,
		"verifiedAt":    at,
		"updatedAt":     at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.LogPaper
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkReviewed transitions a Verified log paper to Reviewed. Same filter
// technique as Verify; mongo.ErrNoDocuments when the record is not Verified.
func (r *LogPaperRepository) MarkReviewed(ctx context.Context, id primitive.ObjectID, tutorID int64, at time.Time) (*models.LogPaper, error) {
	filter := bson.M{"_id": id, "status": models.StatusVerified}
	update := bson.M{"$set": bson.M{
		"tutorId":    tutorID,
		"status":     models.StatusReviewed,
		"reviewedAt": at,
		"updatedAt":  at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.LogPaper
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetTutorFeedbackMirror updates the single-value feedback field kept for
// backward-compatible reads. Status is deliberately untouched.
func (r *LogPaperRepository) SetTutorFeedbackMirror(ctx context.Context, id primitive.ObjectID, tutorID int64, text string, at time.Time) (*models.LogPaper, error) {
	update := bson.M{"$set": bson.M{
		"tutorFeedback": text,
		"tutorId":       tutorID,
		"updatedAt":     at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.LogPaper
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CountAll returns the total number of log papers.
func (r *LogPaperRepository) CountAll(ctx context.Context) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count log papers: %w", err)
	}
	return int(count), nil
}

// CountByStatus returns the number of log papers in the given status.
func (r *LogPaperRepository) CountByStatus(ctx context.Context, status models.LogStatus) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("count log papers by status: %w", err)
	}
	return int(count), nil
}

// TopStudentsByLogCount returns the students with the most log papers.
func (r *LogPaperRepository) TopStudentsByLogCount(ctx context.Context, limit int) ([]models.UserLogCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$studentId", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	return r.aggregateCounts(ctx, pipeline)
}

// TopMentorsByPendingCount returns mentors ranked by pending log backlog.
func (r *LogPaperRepository) TopMentorsByPendingCount(ctx context.Context, limit int) ([]models.UserLogCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusPending, "mentorId": bson.M{"$exists": true}}}},
		{{Key: "$group", Value: bson.M{"_id": "$mentorId", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}
	return r.aggregateCounts(ctx, pipeline)
}

func (r *LogPaperRepository) aggregateCounts(ctx context.Context, pipeline mongo.Pipeline) ([]models.UserLogCount, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate log counts: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	counts := []models.UserLogCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode log counts: %w", err)
	}
	return counts, nil
}
