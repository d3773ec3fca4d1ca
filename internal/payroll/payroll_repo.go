package payroll

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type RowWithEmployee struct {
	Payroll
	EmployeeName string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Payroll, error)
	FindPage(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]RowWithEmployee, int64, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	MarkPaid(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).First(&p, "payroll_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Payroll, error) {
	var rows []Payroll
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("period_year DESC, period_month DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPage(ctx context.Context, page, limit int, filter PayrollFilterRequest) ([]RowWithEmployee, int64, error) {
	base := r.db.WithContext(ctx).Model(&Payroll{})
	if filter.PeriodMonth > 0 {
		base = base.Where("period_month = ?", filter.PeriodMonth)
	}
	if filter.PeriodYear > 0 {
		base = base.Where("period_year = ?", filter.PeriodYear)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	p.payroll_id::text AS id,
	p.employee_id,
	p.period_month,
	p.period_year,
	p.base_salary,
	p.bonus,
	p.deductions,
	p.net_salary,
	p.status,
	p.paid_at,
	p.notes,
	e.first_name || ' ' || e.last_name AS employee_name
FROM hr.payroll p
JOIN hr.employees e ON e.employee_id = p.employee_id
WHERE (? = 0 OR p.period_month = ?)
	AND (? = 0 OR p.period_year = ?)
ORDER BY p.period_year DESC, p.period_month DESC, e.last_name
LIMIT ? OFFSET ?
`

	offset := (page - 1) * limit
	var rows []RowWithEmployee
	err := r.db.WithContext(ctx).
		Raw(query,
			filter.PeriodMonth, filter.PeriodMonth,
			filter.PeriodYear, filter.PeriodYear,
			limit, offset).
		Scan(&rows).Error
	return rows, total, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ? AND period_month = ? AND period_year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

// MarkPaid flips a created record to paid exactly once.
func (r *repository) MarkPaid(ctx context.Context, id string) (int64, error) {
	query := `
UPDATE hr.payroll
SET
	status = 'paid',
	paid_at = NOW(),
	updated_at = NOW()
WHERE payroll_id = $1 AND status = 'created'
`

	exec := r.execer()
	res, err := exec.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
