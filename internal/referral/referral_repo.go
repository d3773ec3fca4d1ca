package referral

import (
	"context"

	"gorm.io/gorm"
)

type RowWithReferrer struct {
	Referral
	ReferrerName string
}

type Repository interface {
	Create(ctx context.Context, r *Referral) error
	FindByID(ctx context.Context, id string) (*Referral, error)
	FindAllByReferrer(ctx context.Context, referrerID string) ([]Referral, error)
	FindPage(ctx context.Context, page, limit int) ([]RowWithReferrer, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, row *Referral) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Referral, error) {
	var row Referral
	err := r.db.WithContext(ctx).First(&row, "referral_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindAllByReferrer(ctx context.Context, referrerID string) ([]Referral, error) {
	var rows []Referral
	err := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPage(ctx context.Context, page, limit int) ([]RowWithReferrer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&Referral{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
SELECT
	r.referral_id::text AS id,
	r.referrer_id,
	r.candidate_name,
	r.candidate_email,
	r.position,
	r.notes,
	r.status,
	e.first_name || ' ' || e.last_name AS referrer_name
FROM hr.referrals r
JOIN hr.employees e ON e.employee_id = r.referrer_id
ORDER BY r.created_at DESC
LIMIT ? OFFSET ?
`

	offset := (page - 1) * limit
	var rows []RowWithReferrer
	err := r.db.WithContext(ctx).Raw(query, limit, offset).Scan(&rows).Error
	return rows, total, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&Referral{}).
		Where("referral_id = ?", id).
		Update("status", status).Error
}
