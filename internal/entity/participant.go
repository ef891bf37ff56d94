package entity

import (
	"time"

	"gorm.io/gorm"
)

// Participant is a wallet that interacted with the platform at least once.
// Points and Quests are denormalized totals kept in sync with the claimed
// quest ledger.
type Participant struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	WalletAddress string `gorm:"primaryKey"`
	Name          string

	Points uint64
	Quests uint64
}
