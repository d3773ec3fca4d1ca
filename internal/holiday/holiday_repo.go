package holiday

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Holiday, error)
	Upsert(ctx context.Context, h *Holiday) error
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	DatesBetween(ctx context.Context, start, end time.Time) (map[string]struct{}, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Order("holiday_date").
		Find(&holidays).Error
	return holidays, err
}

// Upsert keeps repeated imports of the same date harmless.
func (r *repository) Upsert(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "holiday_date"}},
			DoNothing: true,
		}).
		Create(h).Error
}

func (r *repository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Where("holiday_date = ?", date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

// DatesBetween returns the holiday dates inside the inclusive range as a
// set keyed by YYYY-MM-DD, the shape the duration calculation wants.
func (r *repository) DatesBetween(ctx context.Context, start, end time.Time) (map[string]struct{}, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}

	dates := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		dates[h.HolidayDate.Format("2006-01-02")] = struct{}{}
	}
	return dates, nil
}
