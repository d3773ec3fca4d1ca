package incentive

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Incentive struct {
	ID          uuid.UUID       `gorm:"column:incentive_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description *string         `gorm:"type:text"`
	AwardedDate time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Incentive) TableName() string {
	return "hr.incentives"
}
