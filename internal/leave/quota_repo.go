package leave

import (
	"context"
	"database/sql"
)

// QuotaRepository is the write side of the quota ledger. The ledger is
// only an admission gate for concurrent approvals; reads recompute usage
// from approved requests (see Repository.SumApprovedDays).
type QuotaRepository interface {
	WithTx(tx *sql.Tx) QuotaRepository
	EnsureRow(ctx context.Context, employeeID, leaveTypeID string, year, defaultDays int) error
	TryConsume(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error)
	GetTotalDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, bool, error)
	UpsertTotalDays(ctx context.Context, employeeID, leaveTypeID string, year, totalDays int) error
}

type quotaRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewQuotaRepository(db *sql.DB) QuotaRepository {
	return &quotaRepository{db: db}
}

func (r *quotaRepository) WithTx(tx *sql.Tx) QuotaRepository {
	return &quotaRepository{db: r.db, tx: tx}
}

// EnsureRow lazily seeds the ledger row from the type's default. The
// conflict target makes concurrent seeding a no-op, so an existing
// admin-set total is never overwritten.
func (r *quotaRepository) EnsureRow(ctx context.Context, employeeID, leaveTypeID string, year, defaultDays int) error {
	query := `
INSERT INTO hr.leave_quotas (employee_id, leave_type_id, year, total_days, used_days)
VALUES ($1, $2, $3, $4, 0)
ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
`

	exec := r.execer()
	_, err := exec.ExecContext(ctx, query, employeeID, leaveTypeID, year, defaultDays)
	return err
}

// TryConsume atomically reserves days against the ledger. The balance
// check lives in the WHERE clause, so two overlapping approvals can never
// both succeed past the cap: the second sees the incremented used_days
// and affects zero rows.
func (r *quotaRepository) TryConsume(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
	query := `
UPDATE hr.leave_quotas
SET
	used_days = used_days + $4,
	updated_at = NOW()
WHERE employee_id = $1
	AND leave_type_id = $2
	AND year = $3
	AND used_days + $4 <= total_days
`

	exec := r.execer()
	res, err := exec.ExecContext(ctx, query, employeeID, leaveTypeID, year, days)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *quotaRepository) GetTotalDays(ctx context.Context, employeeID, leaveTypeID string, year int) (int, bool, error) {
	query := `
SELECT total_days
FROM hr.leave_quotas
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
`

	var total int
	err := r.db.QueryRowContext(ctx, query, employeeID, leaveTypeID, year).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return total, true, nil
}

func (r *quotaRepository) UpsertTotalDays(ctx context.Context, employeeID, leaveTypeID string, year, totalDays int) error {
	query := `
INSERT INTO hr.leave_quotas (employee_id, leave_type_id, year, total_days, used_days)
VALUES ($1, $2, $3, $4, 0)
ON CONFLICT (employee_id, leave_type_id, year)
DO UPDATE SET total_days = EXCLUDED.total_days, updated_at = NOW()
`

	exec := r.execer()
	_, err := exec.ExecContext(ctx, query, employeeID, leaveTypeID, year, totalDays)
	return err
}

func (r *quotaRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
