package model

type AccessToken struct {
	ID            string `json:"id"`
	WalletAddress string `json:"wallet_address"`
	Name          string `json:"name"`
}

type WalletLoginRequest struct {
	Address string `form:"address" json:"address"`
}

type WalletLoginResponse struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

func (r WalletLoginResponse) SessionInfo() map[string]any {
	return map[string]any{
		"address": r.Address,
		"nonce":   r.Nonce,
	}
}

type WalletVerifyRequest struct {
	WalletAddress   string `json:"walletAddress"`
	OriginalMessage string `json:"originalMessage"`
	SignedMessage   string `json:"signedMessage"`
}

type WalletVerifyResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type User struct {
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name,omitempty"`
	TotalPoints   uint64 `json:"totalPoints"`
}
