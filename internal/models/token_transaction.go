package models

import (
	"time"
)

// Token transaction entry types.
const (
	TokenEntryUnlockDebit = "unlock_debit"
	TokenEntryPlanCredit  = "plan_credit"
)

// TokenTransaction is the append-only ledger history. Amount is always
// positive; EntryType says which direction it moved. BalanceAfter snapshots
// the balance at commit time so the history is auditable without replay.
type TokenTransaction struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyID   uint64  `gorm:"not null;index" json:"company_id"`
	CandidateID *uint64 `gorm:"index" json:"candidate_id,omitempty"`

	EntryType    string `gorm:"type:varchar(30);not null;index" json:"entry_type"`
	Amount       int64  `gorm:"not null" json:"amount"`
	BalanceAfter int64  `gorm:"not null" json:"balance_after"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (TokenTransaction) TableName() string {
	return "token_transactions"
}
