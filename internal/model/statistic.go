package model

type GetUserPointsRequest struct {
	Wallet string `form:"wallet" json:"wallet"`
}

type GetUserPointsResponse struct {
	WalletAddress string `json:"walletAddress"`
	TotalPoints   uint64 `json:"totalPoints"`
	Rank          uint64 `json:"rank,omitempty"`
}

type GetLeaderboardRequest struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name,omitempty"`
	TotalPoints   uint64 `json:"totalPoints"`
}

type GetLeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}
