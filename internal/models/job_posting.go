package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job posting statuses.
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type JobPosting struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyID uint64 `gorm:"not null;index" json:"company_id"`

	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"type:varchar(120)" json:"location"`

	SalaryMin *decimal.Decimal `gorm:"type:numeric(14,2)" json:"salary_min,omitempty"`
	SalaryMax *decimal.Decimal `gorm:"type:numeric(14,2)" json:"salary_max,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}
