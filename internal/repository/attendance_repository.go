package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ExistsForWindow reports whether the student already has a record inside
// the given time window. Used as the same-day duplicate fast path; the
// unique index on (student_id, day) remains the authoritative guard.
func (r *AttendanceRepository) ExistsForWindow(ctx context.Context, studentID int64, from, to time.Time) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM attendance WHERE student_id = $1 AND created_at >= $2 AND created_at <= $3"
	if err := r.db.GetContext(ctx, &count, query, studentID, from, to); err != nil {
		return false, fmt.Errorf("check attendance window: %w", err)
	}
	return count > 0, nil
}

// Insert stores a new attendance record and fills in id and created_at.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO attendance (student_id, type, attended, reason, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	if err := r.db.GetContext(ctx, &record.ID, query,
		record.StudentID, record.Type, record.Attended, record.Reason, record.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// ListForStudent returns a student's records, newest first.
func (r *AttendanceRepository) ListForStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	query := `SELECT id, student_id, type, attended, reason, created_at
        FROM attendance WHERE student_id = $1 ORDER BY created_at DESC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance for student: %w", err)
	}
	return records, nil
}

// ListForStudents returns records for an id set, optionally restricted by
// type. An empty id set short-circuits without touching the store.
func (r *AttendanceRepository) ListForStudents(ctx context.Context, studentIDs []int64, attType *models.AttendanceType) ([]models.AttendanceWithStudent, error) {
	if len(studentIDs) == 0 {
		return []models.AttendanceWithStudent{}, nil
	}
	base := `SELECT a.id, a.student_id, a.type, a.attended, a.reason, a.created_at, u.name AS student_name
        FROM attendance a
        JOIN users u ON u.id = a.student_id
        WHERE a.student_id IN (?)`
	args := []interface{}{studentIDs}
	if attType != nil {
		base += " AND a.type = ?"
		args = append(args, *attType)
	}
	base += " ORDER BY a.created_at DESC"

	query, inArgs, err := sqlx.In(base, args...)
	if err != nil {
		return nil, fmt.Errorf("build attendance in-set query: %w", err)
	}
	query = r.db.Rebind(query)

	var records []models.AttendanceWithStudent
	if err := r.db.SelectContext(ctx, &records, query, inArgs...); err != nil {
		return nil, fmt.Errorf("list attendance for students: %w", err)
	}
	return records, nil
}

// ListAll returns every record with the student name resolved, filtered by
// optional date range and type, newest first.
func (r *AttendanceRepository) ListAll(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithStudent, error) {
	base := `SELECT a.id, a.student_id, a.type, a.attended, a.reason, a.created_at, u.name AS student_name
        FROM attendance a
        JOIN users u ON u.id = a.student_id`
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("a.created_at >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("a.created_at <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if filter.Type != nil {
		where = append(where, fmt.Sprintf("a.type = $%d", len(args)+1))
		args = append(args, *filter.Type)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY a.created_at DESC", base, strings.Join(where, " AND "))

	var records []models.AttendanceWithStudent
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list all attendance: %w", err)
	}
	return records, nil
}
