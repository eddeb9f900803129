package models

import (
	"time"
)

// PipelineEntry is one row per (company, candidate) pair. UnlockedAt is set
// exactly once by the unlock transaction and never reset.
type PipelineEntry struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyID   uint64 `gorm:"not null;uniqueIndex:idx_entry_company_candidate" json:"company_id"`
	CandidateID uint64 `gorm:"not null;uniqueIndex:idx_entry_company_candidate" json:"candidate_id"`

	CurrentStageKey string     `gorm:"type:varchar(80);not null;index" json:"current_stage_key"`
	UnlockedAt      *time.Time `gorm:"type:timestamptz" json:"unlocked_at,omitempty"`
	LastTouchedAt   time.Time  `gorm:"type:timestamptz;not null" json:"last_touched_at"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (PipelineEntry) TableName() string {
	return "pipeline_entries"
}
