package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"column:employee_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string     `gorm:"type:varchar(30);uniqueIndex;not null"`
	FirstName      string     `gorm:"type:varchar(100);not null"`
	LastName       string     `gorm:"type:varchar(100);not null;index"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone          string     `gorm:"type:varchar(30);not null"`
	Department     string     `gorm:"type:varchar(100)"`
	Position       string     `gorm:"type:varchar(100)"`
	SupervisorID   *uuid.UUID `gorm:"type:uuid;index"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active'"`
	HireDate       *time.Time `gorm:"type:date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Employee) TableName() string {
	return "hr.employees"
}
