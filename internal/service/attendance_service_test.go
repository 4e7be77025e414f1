package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	exists        bool
	existsErr     error
	inserted      *models.AttendanceRecord
	lastFrom      time.Time
	lastTo        time.Time
	listForCalled bool
	records       []models.AttendanceWithStudent
}

func (f *fakeAttendanceRepo) ExistsForWindow(ctx context.Context, studentID int64, from, to time.Time) (bool, error) {
	f.lastFrom = from
	f.lastTo = to
	return f.exists, f.existsErr
}

func (f *fakeAttendanceRepo) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	f.inserted = record
	record.ID = 1
	return nil
}

func (f *fakeAttendanceRepo) ListForStudent(ctx context.Context, studentID int64) ([]models.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListForStudents(ctx context.Context, studentIDs []int64, attType *models.AttendanceType) ([]models.AttendanceWithStudent, error) {
	f.listForCalled = true
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListAll(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithStudent, error) {
	return f.records, nil
}

type fakeMappingResolver struct {
	studentIDs []int64
	err        error
}

func (f *fakeMappingResolver) StudentIDsForMentor(ctx context.Context, mentorID int64) ([]int64, error) {
	return f.studentIDs, f.err
}

func newAttendanceServiceForTest(repo *fakeAttendanceRepo, resolver *fakeMappingResolver) *AttendanceService {
	svc := NewAttendanceService(repo, resolver, nil, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestAttendanceSubmit(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newAttendanceServiceForTest(repo, &fakeMappingResolver{})

	record, err := svc.Submit(context.Background(), 20, SubmitAttendanceRequest{
		Type:     "Practicum",
		Attended: "Yes",
	})
	require.NoError(t, err)
	require.Equal(t, models.AttendedYes, record.Attended)
	assert.Nil(t, record.Reason)

	// Dedup window must cover the whole calendar day.
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, 2, repo.lastTo.Day())
	assert.Equal(t, 23, repo.lastTo.Hour())
}

func TestAttendanceSubmitSecondSameDay(t *testing.T) {
	repo := &fakeAttendanceRepo{exists: true}
	svc := newAttendanceServiceForTest(repo, &fakeMappingResolver{})

	_, err := svc.Submit(context.Background(), 20, SubmitAttendanceRequest{
		Type:     "Class",
		Attended: "Yes",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicate))
	assert.Nil(t, repo.inserted)
}

func TestAttendanceSubmitMissedRequiresReason(t *testing.T) {
	svc := newAttendanceServiceForTest(&fakeAttendanceRepo{}, &fakeMappingResolver{})

	_, err := svc.Submit(context.Background(), 20, SubmitAttendanceRequest{
		Type:     "Class",
		Attended: "No",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAttendanceSubmitReasonKeptOnlyWhenMissed(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newAttendanceServiceForTest(repo, &fakeMappingResolver{})

	_, err := svc.Submit(context.Background(), 20, SubmitAttendanceRequest{
		Type:     "Practicum",
		Attended: "Yes",
		Reason:   "should be dropped",
	})
	require.NoError(t, err)
	assert.Nil(t, repo.inserted.Reason)

	repo2 := &fakeAttendanceRepo{}
	svc2 := newAttendanceServiceForTest(repo2, &fakeMappingResolver{})
	_, err = svc2.Submit(context.Background(), 20, SubmitAttendanceRequest{
		Type:     "Practicum",
		Attended: "No",
		Reason:   "hospital visit",
	})
	require.NoError(t, err)
	require.NotNil(t, repo2.inserted.Reason)
	assert.Equal(t, "hospital visit", *repo2.inserted.Reason)
}

func TestAttendanceSubmitInvalidType(t *testing.T) {
	svc := newAttendanceServiceForTest(&fakeAttendanceRepo{}, &fakeMappingResolver{})

	_, err := svc.Submit(context.Background(), 20, SubmitAttendanceRequest{
		Type:     "Weekend",
		Attended: "Yes",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAttendanceListForMentorNoStudents(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newAttendanceServiceForTest(repo, &fakeMappingResolver{studentIDs: []int64{}})

	records, err := svc.ListForMentor(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records)
	// The document store side must not be queried for an empty mapping set.
	assert.False(t, repo.listForCalled)
}

func TestAttendanceListForMentor(t *testing.T) {
	repo := &fakeAttendanceRepo{records: []models.AttendanceWithStudent{{StudentName: "Nimal Perera"}}}
	svc := newAttendanceServiceForTest(repo, &fakeMappingResolver{studentIDs: []int64{20}})

	records, err := svc.ListForMentor(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, repo.listForCalled)
}
