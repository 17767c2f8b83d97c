package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cexutoire/wibiz-attendance-bot/internal/hours"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/clock"
)

// fakeRepo keeps rows in memory so the state machine can be exercised
// without a database. The sqlmock connection only answers the
// transaction begin/commit traffic.
type fakeRepo struct {
	rows   []Record
	nextID uint
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, rec *Record) error {
	f.nextID++
	rec.ID = f.nextID
	f.rows = append(f.rows, *rec)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, rec *Record) error {
	for i := range f.rows {
		if f.rows[i].ID == rec.ID {
			f.rows[i] = *rec
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByUserAndDate(ctx context.Context, userID, date string) (*Record, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].Date == date {
			rec := f.rows[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) FindByStatus(ctx context.Context, userID, date string, status Status) (*Record, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].Date == date && f.rows[i].Status == status {
			rec := f.rows[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) LatestBreakDuration(ctx context.Context, userID, date string) (float64, error) {
	var best *Record
	for i := range f.rows {
		r := &f.rows[i]
		if r.UserID == userID && r.Date == date && r.BreakDuration > 0 {
			if best == nil || r.CreatedAt.After(best.CreatedAt) {
				best = r
			}
		}
	}
	if best == nil {
		return 0, nil
	}
	return best.BreakDuration, nil
}

func (f *fakeRepo) DeleteInProgress(ctx context.Context, userID, date string) error {
	kept := f.rows[:0]
	for _, r := range f.rows {
		drop := r.UserID == userID && r.Date == date &&
			(r.Status == StatusClockedIn || r.Status == StatusOnBreak)
		if !drop {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeRepo) rowsFor(userID, date string) []Record {
	var out []Record
	for _, r := range f.rows {
		if r.UserID == userID && r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func testClock() clock.Clock {
	return clock.NewFixed(time.Date(2026, 2, 17, 13, 0, 0, 0, time.UTC))
}

const (
	testUser = "user-123"
	testDate = "2026-02-17"
)

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestService_TimeInThenTimeOut(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &fakeRepo{}
	svc := NewService(db, repo, testClock())
	ctx := context.Background()

	expectTx(mock, true)
	rec, err := svc.TimeIn(ctx, testUser, "Juan", testDate, "9:00 AM")
	assert.NoError(t, err)
	assert.Equal(t, StatusClockedIn, rec.Status)

	timeIn := "9:00 AM"
	expectTx(mock, true)
	rec, err = svc.TimeOut(ctx, testUser, "Juan", testDate, &timeIn, "5:30 PM")
	assert.NoError(t, err)

	assert.Equal(t, StatusComplete, rec.Status)
	assert.Equal(t, 0.0, rec.BreakDuration)
	assert.Equal(t, hours.Elapsed("9:00 AM", "5:30 PM"), rec.HoursWorked)
	assert.Len(t, repo.rowsFor(testUser, testDate), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_FullDayWithBreak(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &fakeRepo{}
	svc := NewService(db, repo, testClock())
	ctx := context.Background()

	expectTx(mock, true)
	_, err := svc.TimeIn(ctx, testUser, "Juan", testDate, "9:00 AM")
	assert.NoError(t, err)
	assert.Len(t, repo.rowsFor(testUser, testDate), 1)

	expectTx(mock, true)
	rec, err := svc.BreakStart(ctx, testUser, "Juan", testDate, "12:00 PM")
	assert.NoError(t, err)
	assert.Equal(t, StatusOnBreak, rec.Status)
	assert.Len(t, repo.rowsFor(testUser, testDate), 1)

	expectTx(mock, true)
	rec, err = svc.BreakEnd(ctx, testUser, "Juan", testDate, "12:45 PM")
	assert.NoError(t, err)
	assert.Equal(t, StatusClockedIn, rec.Status)
	assert.Equal(t, 0.75, rec.BreakDuration)
	assert.Len(t, repo.rowsFor(testUser, testDate), 1)

	timeIn := "9:00 AM"
	expectTx(mock, true)
	rec, err = svc.TimeOut(ctx, testUser, "Juan", testDate, &timeIn, "5:30 PM")
	assert.NoError(t, err)

	want := hours.Round(hours.Elapsed("9:00 AM", "5:30 PM") - hours.Elapsed("12:00 PM", "12:45 PM"))
	assert.Equal(t, StatusComplete, rec.Status)
	assert.Equal(t, want, rec.HoursWorked)
	assert.Equal(t, 0.75, rec.BreakDuration)
	assert.Len(t, repo.rowsFor(testUser, testDate), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_TimeInAfterCompleteIsRejected(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &fakeRepo{}
	svc := NewService(db, repo, testClock())
	ctx := context.Background()

	timeIn := "9:00 AM"
	expectTx(mock, true)
	done, err := svc.TimeOut(ctx, testUser, "Juan", testDate, &timeIn, "5:00 PM")
	assert.NoError(t, err)

	expectTx(mock, false)
	_, err = svc.TimeIn(ctx, testUser, "Juan", testDate, "6:00 PM")
	assert.True(t, errors.Is(err, ErrDayComplete))

	rows := repo.rowsFor(testUser, testDate)
	assert.Len(t, rows, 1)
	assert.Equal(t, done.HoursWorked, rows[0].HoursWorked)
	assert.Equal(t, "9:00 AM", *rows[0].TimeIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RepeatedTimeInOverwrites(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &fakeRepo{}
	svc := NewService(db, repo, testClock())
	ctx := context.Background()

	expectTx(mock, true)
	_, err := svc.TimeIn(ctx, testUser, "Juan", testDate, "9:00 AM")
	assert.NoError(t, err)

	expectTx(mock, true)
	rec, err := svc.TimeIn(ctx, testUser, "Juan", testDate, "9:30 AM")
	assert.NoError(t, err)

	assert.Equal(t, StatusClockedIn, rec.Status)
	assert.Equal(t, "9:30 AM", *rec.TimeIn)
	assert.Len(t, repo.rowsFor(testUser, testDate), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_BreakEndWithoutBreakStart(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &fakeRepo{}
	svc := NewService(db, repo, testClock())
	ctx := context.Background()

	expectTx(mock, false)
	_, err := svc.BreakEnd(ctx, testUser, "Juan", testDate, "12:45 PM")
	assert.True(t, errors.Is(err, ErrNoOpenBreak))
	assert.Empty(t, repo.rowsFor(testUser, testDate))

	expectTx(mock, false)
	_, err = svc.BreakStart(ctx, testUser, "Juan", testDate, "12:00 PM")
	assert.True(t, errors.Is(err, ErrNoOpenClockIn))
	assert.Empty(t, repo.rowsFor(testUser, testDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_TimeOutWithoutTimeIn(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &fakeRepo{}
	svc := NewService(db, repo, testClock())
	ctx := context.Background()

	expectTx(mock, true)
	rec, err := svc.TimeOut(ctx, testUser, "Juan", testDate, nil, "5:00 PM")
	assert.NoError(t, err)

	assert.Equal(t, StatusComplete, rec.Status)
	assert.Equal(t, 0.0, rec.HoursWorked)
	assert.Nil(t, rec.TimeIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SecondTimeOutOverwritesInPlace(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &fakeRepo{}
	svc := NewService(db, repo, testClock())
	ctx := context.Background()

	timeIn := "9:00 AM"
	expectTx(mock, true)
	first, err := svc.TimeOut(ctx, testUser, "Juan", testDate, &timeIn, "5:00 PM")
	assert.NoError(t, err)

	expectTx(mock, true)
	second, err := svc.TimeOut(ctx, testUser, "Juan", testDate, &timeIn, "6:00 PM")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "6:00 PM", *second.TimeOut)
	assert.Equal(t, hours.Elapsed("9:00 AM", "6:00 PM"), second.HoursWorked)
	assert.Len(t, repo.rowsFor(testUser, testDate), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
