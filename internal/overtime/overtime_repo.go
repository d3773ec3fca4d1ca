package overtime

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type RowWithEmployee struct {
	Overtime
	EmployeeName string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *Overtime) error
	FindByID(ctx context.Context, id string) (*Overtime, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Overtime, error)
	FindPage(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error)
	TransitionStatus(ctx context.Context, id, newStatus, approverID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, o *Overtime) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Overtime, error) {
	var o Overtime
	err := r.db.WithContext(ctx).First(&o, "overtime_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Overtime, error) {
	var rows []Overtime
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("overtime_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Overtime{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	o.overtime_id::text AS id,
	o.employee_id,
	o.overtime_date,
	o.hours,
	o.reason,
	o.status,
	o.approved_by,
	e.first_name || ' ' || e.last_name AS employee_name
FROM hr.overtime o
JOIN hr.employees e ON e.employee_id = o.employee_id
ORDER BY o.overtime_date DESC, o.created_at DESC
LIMIT ? OFFSET ?
`

	offset := (page - 1) * limit
	var rows []RowWithEmployee
	err := r.db.WithContext(ctx).Raw(query, limit, offset).Scan(&rows).Error
	return rows, total, err
}

// TransitionStatus finalizes a pending request; zero rows affected means
// it was already decided.
func (r *repository) TransitionStatus(ctx context.Context, id, newStatus, approverID string) (int64, error) {
	query := `
UPDATE hr.overtime
SET
	status = $2,
	approved_by = $3,
	updated_at = NOW()
WHERE overtime_id = $1 AND status = 'pending'
`

	exec := r.execer()
	res, err := exec.ExecContext(ctx, query, id, newStatus, approverID)
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
