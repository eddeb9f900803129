package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity record types. Each type has a matching typed payload struct in the
// service package; the JSON column only ever holds one of those shapes.
const (
	ActivityPipelineMove        = "pipeline_move"
	ActivityCandidateNoteAdded  = "candidate_note_added"
	ActivityCandidateUnlocked   = "candidate_unlocked"
	ActivityApplicationReceived = "application_received"
	ActivityCandidateAdded      = "candidate_added"
)

// ActivityRecord is the append-only audit trail shown in a candidate's
// history. Display-only: nothing reads it for control flow, so retention
// pruning is safe.
type ActivityRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyID   uint64 `gorm:"not null;index:idx_activity_company_candidate" json:"company_id"`
	CandidateID uint64 `gorm:"not null;index:idx_activity_company_candidate" json:"candidate_id"`

	Type    string         `gorm:"type:varchar(40);not null;index" json:"type"`
	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (ActivityRecord) TableName() string {
	return "activity_records"
}
