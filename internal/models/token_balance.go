package models

import (
	"time"
)

// TokenBalance is one row per company. Balance is only mutated through the
// ledger service: unlock debits and plan credits, both of which also write a
// TokenTransaction in the same database transaction.
type TokenBalance struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyID       uint64 `gorm:"not null;uniqueIndex" json:"company_id"`
	Balance         int64  `gorm:"not null;default:0" json:"balance"`
	TokensPerUnlock int64  `gorm:"not null" json:"tokens_per_unlock"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (TokenBalance) TableName() string {
	return "token_balances"
}
