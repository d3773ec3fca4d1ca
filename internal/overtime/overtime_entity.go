package overtime

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Overtime struct {
	ID           uuid.UUID  `gorm:"column:overtime_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OvertimeDate time.Time  `gorm:"type:date;not null"`
	Hours        float64    `gorm:"type:numeric(4,2);not null"`
	Reason       *string    `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedBy   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Overtime) TableName() string {
	return "hr.overtime"
}
