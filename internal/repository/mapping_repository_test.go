package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
)

func TestMappingRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMappingRepository(db)
	rows := sqlmock.NewRows([]string{"id", "mentor_id", "student_id", "created_at"}).
		AddRow(int64(1), int64(10), int64(20), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO mentor_student_map")).
		WithArgs(int64(10), int64(20), sqlmock.AnyArg()).
		WillReturnRows(rows)

	mapping, err := repo.Upsert(context.Background(), 10, 20)
	require.NoError(t, err)
	require.Equal(t, int64(10), mapping.MentorID)
	require.Equal(t, int64(20), mapping.StudentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingRepositoryDeleteMissingPair(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMappingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mentor_student_map")).
		WithArgs(int64(10), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 10, 99)
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMappingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM mentor_student_map")).
		WithArgs(int64(10), int64(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 10, 20))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingRepositoryListFiltered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMappingRepository(db)
	rows := sqlmock.NewRows([]string{"id", "mentor_id", "student_id", "created_at", "mentor_name", "mentor_email", "student_name", "student_email"}).
		AddRow(int64(1), int64(10), int64(20), time.Now(), "Sunil Fernando", "sunil@example.com", "Nimal Perera", "nimal@example.com")
	mock.ExpectQuery(regexp.QuoteMeta("FROM mentor_student_map m")).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	mentorID := int64(10)
	mappings, err := repo.List(context.Background(), models.MappingFilter{MentorID: &mentorID})
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	require.Equal(t, "Nimal Perera", mappings[0].StudentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMappingRepositoryStudentIDsForMentor(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMappingRepository(db)
	rows := sqlmock.NewRows([]string{"student_id"}).AddRow(int64(20)).AddRow(int64(21))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id FROM mentor_student_map")).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	ids, err := repo.StudentIDsForMentor(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, []int64{20, 21}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
