package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// RowWithEmployee joins an attendance row with the employee's name for
// the admin listing.
type RowWithEmployee struct {
	Attendance
	EmployeeName string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	FindPage(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND attendance_date = ?", employeeID, date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	a.attendance_id::text AS id,
	a.employee_id,
	a.attendance_date,
	a.check_in_time,
	a.check_out_time,
	a.status,
	a.notes,
	e.first_name || ' ' || e.last_name AS employee_name
FROM hr.attendance a
JOIN hr.employees e ON e.employee_id = a.employee_id
ORDER BY a.attendance_date DESC, e.last_name, e.first_name
LIMIT ? OFFSET ?
`

	offset := (page - 1) * limit
	var rows []RowWithEmployee
	err := r.db.WithContext(ctx).Raw(query, limit, offset).Scan(&rows).Error
	return rows, total, err
}
