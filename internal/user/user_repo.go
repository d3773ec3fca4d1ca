package user

import (
	"context"

	"gorm.io/gorm"
)

// Row is the read model for account administration: the account joined
// with its linked employee, when one exists.
type Row struct {
	UserID       string
	Username     string
	Role         string
	EmployeeID   *string
	EmployeeName *string
}

type Repository interface {
	FindPage(ctx context.Context, page, limit int) ([]Row, int64, error)
	FindByID(ctx context.Context, id string) (*Row, error)
	UpdateRole(ctx context.Context, id, role string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]Row, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Table("hr.users").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	u.user_id::text AS user_id,
	u.username,
	u.role,
	u.employee_id::text AS employee_id,
	e.first_name || ' ' || e.last_name AS employee_name
FROM hr.users u
LEFT JOIN hr.employees e ON e.employee_id = u.employee_id
ORDER BY u.username
LIMIT ? OFFSET ?
`

	offset := (page - 1) * limit
	var rows []Row
	err := r.db.WithContext(ctx).Raw(query, limit, offset).Scan(&rows).Error
	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Row, error) {
	query := `
SELECT
	u.user_id::text AS user_id,
	u.username,
	u.role,
	u.employee_id::text AS employee_id,
	e.first_name || ' ' || e.last_name AS employee_name
FROM hr.users u
LEFT JOIN hr.employees e ON e.employee_id = u.employee_id
WHERE u.user_id = ?
`

	var row Row
	res := r.db.WithContext(ctx).Raw(query, id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	res := r.db.WithContext(ctx).
		Table("hr.users").
		Where("user_id = ?", id).
		Update("role", role)
	return res.RowsAffected, res.Error
}
