package discord

import "context"

type IEndpoint interface {
	ExchangeCode(ctx context.Context, code string) (Token, error)
	GetMe(ctx context.Context, token string) (User, error)
	CheckMember(ctx context.Context, guildID, userID string) (bool, error)
}
