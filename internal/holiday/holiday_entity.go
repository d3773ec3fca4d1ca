package holiday

import "time"

type Holiday struct {
	HolidayDate time.Time `gorm:"column:holiday_date;type:date;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	CountryCode string    `gorm:"type:varchar(2);not null;default:'ID'"`
	CreatedAt   time.Time
}

func (Holiday) TableName() string {
	return "hr.public_holidays"
}
