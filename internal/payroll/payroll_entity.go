package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusCreated = "created"
	StatusPaid    = "paid"
)

type Payroll struct {
	ID          uuid.UUID       `gorm:"column:payroll_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_period"`
	PeriodMonth int             `gorm:"not null;uniqueIndex:uq_payroll_period"`
	PeriodYear  int             `gorm:"not null;uniqueIndex:uq_payroll_period"`
	BaseSalary  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Bonus       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Deductions  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'created'"`
	PaidAt      *time.Time      `gorm:"type:timestamptz"`
	Notes       *string         `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Payroll) TableName() string {
	return "hr.payroll"
}
