package referral

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusSubmitted    = "submitted"
	StatusInterviewing = "interviewing"
	StatusHired        = "hired"
	StatusRejected     = "rejected"
)

type Referral struct {
	ID             uuid.UUID `gorm:"column:referral_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ReferrerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CandidateName  string    `gorm:"type:varchar(200);not null"`
	CandidateEmail string    `gorm:"type:varchar(255);not null"`
	Position       string    `gorm:"type:varchar(100);not null"`
	Notes          *string   `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null;default:'submitted'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Referral) TableName() string {
	return "hr.referrals"
}
