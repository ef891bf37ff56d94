package model

type ExchangeTokenRequest struct {
	Code string `json:"code"`
}

type ExchangeTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type BeginHandshakeRequest struct{}

type BeginHandshakeResponse struct {
	State        string `json:"state"`
	AuthorizeURL string `json:"authorizeUrl"`
}

type AwaitHandshakeRequest struct {
	State string `form:"state" json:"state"`
}

type OAuth2CallbackRequest struct {
	Code        string `form:"code" json:"code"`
	State       string `form:"state" json:"state"`
	Error       string `form:"error" json:"error"`
	Description string `form:"error_description" json:"error_description"`
}

type OAuth2CallbackResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	User     DiscordUser `json:"user,omitempty"`
	IsMember bool        `json:"isMember"`
}

type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
