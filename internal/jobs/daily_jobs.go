package jobs

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// Runner executes the daily attendance sweeps. Every statement is a
// single conditional bulk write keyed on (employee, date), so reruns and
// overlapping instances are harmless.
type Runner struct {
	db     *sql.DB
	now    func() time.Time
	logger *zap.Logger
}

func NewRunner(db *sql.DB, logger ...*zap.Logger) *Runner {
	l := zap.L().Named("jobs")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs")
	}
	return &Runner{db: db, now: time.Now, logger: l}
}

// MarkAbsentees inserts an absent row for every active employee without
// an attendance record yesterday, skipping weekends, holidays, and
// employees on approved leave covering that day.
func (r *Runner) MarkAbsentees(ctx context.Context) (int64, error) {
	day := r.now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 0, nil
	}

	query := `
INSERT INTO hr.attendance (attendance_id, employee_id, attendance_date, status)
SELECT gen_random_uuid(), e.employee_id, $1::date, 'absent'
FROM hr.employees e
WHERE e.status = 'active'
	AND NOT EXISTS (
		SELECT 1 FROM hr.attendance a
		WHERE a.employee_id = e.employee_id AND a.attendance_date = $1::date
	)
	AND NOT EXISTS (
		SELECT 1 FROM hr.public_holidays h
		WHERE h.holiday_date = $1::date
	)
	AND NOT EXISTS (
		SELECT 1 FROM hr.leave_requests lr
		WHERE lr.employee_id = e.employee_id
			AND lr.status = 'approved'
			AND $1::date BETWEEN lr.start_date AND lr.end_date
	)
ON CONFLICT (employee_id, attendance_date) DO NOTHING
`

	res, err := r.db.ExecContext(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		r.logger.Error("mark absentees failed", zap.Error(err))
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.logger.Info("absentees marked", zap.String("date", day.Format("2006-01-02")), zap.Int64("rows", n))
	}
	return n, nil
}

// MarkHolidayAttendance writes a holiday row for every active employee
// when today is a public holiday.
func (r *Runner) MarkHolidayAttendance(ctx context.Context) (int64, error) {
	day := r.now().UTC().Truncate(24 * time.Hour)

	query := `
INSERT INTO hr.attendance (attendance_id, employee_id, attendance_date, status)
SELECT gen_random_uuid(), e.employee_id, $1::date, 'holiday'
FROM hr.employees e
WHERE e.status = 'active'
	AND EXISTS (
		SELECT 1 FROM hr.public_holidays h
		WHERE h.holiday_date = $1::date
	)
ON CONFLICT (employee_id, attendance_date) DO NOTHING
`

	res, err := r.db.ExecContext(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		r.logger.Error("mark holiday attendance failed", zap.Error(err))
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.logger.Info("holiday attendance marked", zap.String("date", day.Format("2006-01-02")), zap.Int64("rows", n))
	}
	return n, nil
}

// AutoCheckout closes yesterday's open attendance rows at end of day.
// The check_out_time IS NULL guard makes the sweep idempotent.
func (r *Runner) AutoCheckout(ctx context.Context) (int64, error) {
	day := r.now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	query := `
UPDATE hr.attendance
SET
	check_out_time = attendance_date + INTERVAL '18 hours',
	notes = COALESCE(notes || ' ', '') || '[auto checkout]',
	updated_at = NOW()
WHERE attendance_date = $1::date
	AND check_in_time IS NOT NULL
	AND check_out_time IS NULL
`

	res, err := r.db.ExecContext(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		r.logger.Error("auto checkout failed", zap.Error(err))
		return 0, err
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		r.logger.Info("open attendance auto-closed", zap.String("date", day.Format("2006-01-02")), zap.Int64("rows", n))
	}
	return n, nil
}

// RunDaily runs all sweeps once immediately, then on every tick until
// the context is cancelled.
func (r *Runner) RunDaily(ctx context.Context, interval time.Duration) {
	r.logger.Info("daily jobs runner started", zap.Duration("interval", interval))

	r.runAll(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("daily jobs runner stopped")
			return
		case <-ticker.C:
			r.runAll(ctx)
		}
	}
}

func (r *Runner) runAll(ctx context.Context) {
	if _, err := r.MarkHolidayAttendance(ctx); err != nil {
		return
	}
	if _, err := r.MarkAbsentees(ctx); err != nil {
		return
	}
	_, _ = r.AutoCheckout(ctx)
}
