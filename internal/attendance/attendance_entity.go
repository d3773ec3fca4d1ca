package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusHoliday = "holiday"
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"column:attendance_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_day"`
	AttendanceDate time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendance_day"`
	CheckInTime    *time.Time `gorm:"type:timestamptz"`
	CheckOutTime   *time.Time `gorm:"type:timestamptz"`
	Status         string     `gorm:"type:varchar(20);not null;default:'present'"`
	Notes          *string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Attendance) TableName() string {
	return "hr.attendance"
}
