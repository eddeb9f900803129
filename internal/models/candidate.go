package models

import (
	"time"
)

// Candidate holds the profile data companies browse. Email and Phone are the
// contact fields gated behind an unlock; redaction of those is decided at the
// handler layer, not here.
type Candidate struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	FullName string `gorm:"type:varchar(200);not null" json:"full_name"`
	Headline string `gorm:"type:varchar(300)" json:"headline"`
	Location string `gorm:"type:varchar(120)" json:"location"`

	Email string `gorm:"type:varchar(200)" json:"email,omitempty"`
	Phone string `gorm:"type:varchar(40)" json:"phone,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
