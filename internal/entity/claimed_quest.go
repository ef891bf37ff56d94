package entity

type ClaimedQuest struct {
	Base

	WalletAddress string `gorm:"uniqueIndex:idx_wallet_quest"`
	QuestID       string `gorm:"uniqueIndex:idx_wallet_quest"`

	Platform Platform
	Points   uint64
}
