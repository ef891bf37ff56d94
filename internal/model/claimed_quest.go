package model

type VerifyQuestRequest struct {
	QuestID       string `json:"questId"`
	Platform      string `json:"platform"`
	WalletAddress string `json:"walletAddress"`

	// Platform-specific verification proof.
	DiscordUserID   string `json:"discordUserId,omitempty"`
	DiscordUsername string `json:"discordUsername,omitempty"`
	TwitterHandle   string `json:"twitterHandle,omitempty"`
	TelegramUserID  string `json:"telegramUserId,omitempty"`
	Signature       string `json:"signature,omitempty"`
}

type VerifyQuestResponse struct {
	Success       bool   `json:"success"`
	PointsAwarded uint64 `json:"pointsAwarded"`
	TotalPoints   uint64 `json:"totalPoints"`
	Message       string `json:"message"`
}

type GetCompletedQuestsRequest struct {
	Wallet string `form:"wallet" json:"wallet"`
}

type GetCompletedQuestsResponse struct {
	QuestIDs []string `json:"questIds"`
}
