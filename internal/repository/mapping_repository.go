package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

// MappingRepository handles mentor-student pairings in the relational store.
type MappingRepository struct {
	db *sqlx.DB
}

// NewMappingRepository constructs the repository.
func NewMappingRepository(db *sqlx.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// Upsert stores the pair if absent and returns the stored row either way.
// Re-mapping an existing pair is a no-op, not an error.
func (r *MappingRepository) Upsert(ctx context.Context, mentorID, studentID int64) (*models.MentorStudentMap, error) {
	query := `INSERT INTO mentor_student_map (mentor_id, student_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (mentor_id, student_id)
DO UPDATE SET mentor_id = EXCLUDED.mentor_id
RETURNING id, mentor_id, student_id, created_at`
	var mapping models.MentorStudentMap
	if err := r.db.GetContext(ctx, &mapping, query, mentorID, studentID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("upsert mapping: %w", err)
	}
	return &mapping, nil
}

// Delete removes the pair; sql.ErrNoRows when the pair does not exist.
func (r *MappingRepository) Delete(ctx context.Context, mentorID, studentID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM mentor_student_map WHERE mentor_id = $1 AND student_id = $2",
		mentorID, studentID,
	)
	if err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete mapping rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns mappings with both users resolved, newest first.
func (r *MappingRepository) List(ctx context.Context, filter models.MappingFilter) ([]models.MappingDetail, error) {
	base := `SELECT m.id, m.mentor_id, m.student_id, m.created_at,
        mu.name AS mentor_name, mu.email AS mentor_email,
        su.name AS student_name, su.email AS student_email
        FROM mentor_student_map m
        JOIN users mu ON mu.id = m.mentor_id
        JOIN users su ON su.id = m.student_id`
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.MentorID != nil {
		where = append(where, fmt.Sprintf("m.mentor_id = $%d", len(args)+1))
		args = append(args, *filter.MentorID)
	}
	if filter.StudentID != nil {
		where = append(where, fmt.Sprintf("m.student_id = $%d", len(args)+1))
		args = append(args, *filter.StudentID)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY m.created_at DESC", base, strings.Join(where, " AND "))

	var mappings []models.MappingDetail
	if err := r.db.SelectContext(ctx, &mappings, query, args...); err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	return mappings, nil
}

// StudentIDsForMentor returns the id set of students assigned to a mentor.
func (r *MappingRepository) StudentIDsForMentor(ctx context.Context, mentorID int64) ([]int64, error) {
	var ids []int64
	query := "SELECT student_id FROM mentor_student_map WHERE mentor_id = $1 ORDER BY student_id"
	if err := r.db.SelectContext(ctx, &ids, query, mentorID); err != nil {
		return nil, fmt.Errorf("student ids for mentor: %w", err)
	}
	return ids, nil
}

// StudentsForMentor resolves the assigned students themselves.
func (r *MappingRepository) StudentsForMentor(ctx context.Context, mentorID int64) ([]models.UserRef, error) {
	query := `SELECT u.id, u.name, u.email
        FROM mentor_student_map m
        JOIN users u ON u.id = m.student_id
        WHERE m.mentor_id = $1
        ORDER BY u.name`
	var students []models.UserRef
	if err := r.db.SelectContext(ctx, &students, query, mentorID); err != nil {
		return nil, fmt.Errorf("students for mentor: %w", err)
	}
	return students, nil
}
