package discord

type User struct {
	ID       string
	Username string
}

type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
}
