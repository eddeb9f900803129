package models

import (
	"time"
)

// PipelineStage is a named board column. Keys are free-form strings scoped per
// company; Ordinal drives left-to-right order, ties broken by insertion order.
type PipelineStage struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyID uint64 `gorm:"not null;uniqueIndex:idx_stage_company_key" json:"company_id"`
	Key       string `gorm:"type:varchar(80);not null;uniqueIndex:idx_stage_company_key" json:"key"`
	Name      string `gorm:"type:varchar(120);not null" json:"name"`
	Ordinal   int    `gorm:"not null;index" json:"ordinal"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

func (PipelineStage) TableName() string {
	return "pipeline_stages"
}
