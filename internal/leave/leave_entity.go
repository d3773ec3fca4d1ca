package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LeaveType is static reference data. Quota-limited types cap annual
// usage at total_days; unlimited types (e.g. unpaid leave) bypass the
// ledger entirely.
type LeaveType struct {
	ID             uuid.UUID `gorm:"column:leave_type_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TypeName       string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	IsQuotaLimited bool      `gorm:"not null;default:true"`
	DefaultDays    int       `gorm:"not null;default:0"`
}

func (LeaveType) TableName() string {
	return "hr.leave_types"
}

// LeaveQuota is the ledger row for one (employee, type, year). used_days
// only ever grows, and only through the approval transition.
type LeaveQuota struct {
	EmployeeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Year        int       `gorm:"primaryKey"`
	TotalDays   int       `gorm:"not null"`
	UsedDays    int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (LeaveQuota) TableName() string {
	return "hr.leave_quotas"
}

type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"column:request_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_leave_request_span;index"`
	LeaveTypeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_leave_request_span"`
	StartDate   time.Time  `gorm:"type:date;not null;uniqueIndex:uq_leave_request_span"`
	EndDate     time.Time  `gorm:"type:date;not null;uniqueIndex:uq_leave_request_span"`
	TotalDays   int        `gorm:"not null;default:1"` // inclusive calendar span, display only
	Status      string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes       *string    `gorm:"type:text"`
	RequestDate time.Time  `gorm:"type:date;not null"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LeaveRequest) TableName() string {
	return "hr.leave_requests"
}
