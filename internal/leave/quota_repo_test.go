package leave

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaRepository_TryConsume(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewQuotaRepository(db)
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	mock.ExpectExec("UPDATE hr.leave_quotas").
		WithArgs(employeeID, leaveTypeID, 2026, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.TryConsume(context.Background(), employeeID, leaveTypeID, 2026, 5)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaRepository_TryConsume_InsufficientBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewQuotaRepository(db)
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	// The balance guard in the WHERE clause filters the row out.
	mock.ExpectExec("UPDATE hr.leave_quotas").
		WithArgs(employeeID, leaveTypeID, 2026, 30).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.TryConsume(context.Background(), employeeID, leaveTypeID, 2026, 30)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaRepository_EnsureRow_ConflictIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewQuotaRepository(db)
	employeeID := uuid.New().String()
	leaveTypeID := uuid.New().String()

	mock.ExpectExec("INSERT INTO hr.leave_quotas").
		WithArgs(employeeID, leaveTypeID, 2026, 12).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.EnsureRow(context.Background(), employeeID, leaveTypeID, 2026, 12)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaRepository_TryConsume_InsideTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE hr.leave_quotas").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	repo := NewQuotaRepository(db).WithTx(tx)
	ok, err := repo.TryConsume(context.Background(), uuid.New().String(), uuid.New().String(), 2026, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
