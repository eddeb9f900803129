package models

import (
	"time"
)

// Company is the tenant owning stages, pipeline entries, and the token balance.
type Company struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name string `gorm:"type:varchar(200);not null" json:"name"`
	Plan string `gorm:"type:varchar(40);not null;default:'starter'" json:"plan"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
