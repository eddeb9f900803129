package models

import (
	"time"
)

// Application statuses.
const (
	ApplicationStatusReceived  = "received"
	ApplicationStatusWithdrawn = "withdrawn"
)

// Application links a candidate to a job posting. Submitting one also creates
// the candidate's pipeline entry in the company's first stage.
type Application struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	JobPostingID uint64 `gorm:"not null;uniqueIndex:idx_application_job_candidate" json:"job_posting_id"`
	CandidateID  uint64 `gorm:"not null;uniqueIndex:idx_application_job_candidate" json:"candidate_id"`
	CompanyID    uint64 `gorm:"not null;index" json:"company_id"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	Status      string `gorm:"type:varchar(20);not null;default:'received'" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (Application) TableName() string {
	return "applications"
}
