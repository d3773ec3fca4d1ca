package incentive

import (
	"context"

	"gorm.io/gorm"
)

type RowWithEmployee struct {
	Incentive
	EmployeeName string
}

type Repository interface {
	Create(ctx context.Context, i *Incentive) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Incentive, error)
	FindPage(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, i *Incentive) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Incentive, error) {
	var rows []Incentive
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("awarded_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]RowWithEmployee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Incentive{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	i.incentive_id::text AS id,
	i.employee_id,
	i.amount,
	i.description,
	i.awarded_date,
	e.first_name || ' ' || e.last_name AS employee_name
FROM hr.incentives i
JOIN hr.employees e ON e.employee_id = i.employee_id
ORDER BY i.awarded_date DESC, i.created_at DESC
LIMIT ? OFFSET ?
`

	offset := (page - 1) * limit
	var rows []RowWithEmployee
	err := r.db.WithContext(ctx).Raw(query, limit, offset).Scan(&rows).Error
	return rows, total, err
}
