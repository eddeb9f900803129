package models

import (
	"time"
)

// CandidateNote is append-only; no edit or delete is exposed anywhere.
type CandidateNote struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyID   uint64 `gorm:"not null;index:idx_note_company_candidate" json:"company_id"`
	CandidateID uint64 `gorm:"not null;index:idx_note_company_candidate" json:"candidate_id"`

	Body      string `gorm:"type:text;not null" json:"body"`
	CreatedBy string `gorm:"type:varchar(120);not null" json:"created_by"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (CandidateNote) TableName() string {
	return "candidate_notes"
}
