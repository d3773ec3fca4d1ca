package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_MarkAbsentees_SkipsWeekend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewRunner(db)
	// Sunday, so yesterday is Saturday.
	r.now = func() time.Time { return time.Date(2026, 3, 8, 2, 0, 0, 0, time.UTC) }

	n, err := r.MarkAbsentees(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_MarkAbsentees(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewRunner(db)
	// Wednesday, yesterday Tuesday.
	r.now = func() time.Time { return time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC) }

	mock.ExpectExec("INSERT INTO hr.attendance").
		WithArgs("2026-03-03").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := r.MarkAbsentees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_MarkAbsentees_RerunIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewRunner(db)
	r.now = func() time.Time { return time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC) }

	// Conflict target swallows every row the first run already wrote.
	mock.ExpectExec("INSERT INTO hr.attendance").
		WithArgs("2026-03-03").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := r.MarkAbsentees(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_AutoCheckout(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewRunner(db)
	r.now = func() time.Time { return time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC) }

	mock.ExpectExec("UPDATE hr.attendance").
		WithArgs("2026-03-03").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := r.AutoCheckout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_MarkHolidayAttendance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := NewRunner(db)
	r.now = func() time.Time { return time.Date(2026, 3, 4, 2, 0, 0, 0, time.UTC) }

	mock.ExpectExec("INSERT INTO hr.attendance").
		WithArgs("2026-03-04").
		WillReturnResult(sqlmock.NewResult(0, 10))

	n, err := r.MarkHolidayAttendance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
