package model

type GetListQuestRequest struct{}

type Quest struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Title    string `json:"title"`
	Points   uint64 `json:"points"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests"`
}
