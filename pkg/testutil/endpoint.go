package testutil

import (
	"context"
	"errors"

	"github.com/questdrop/backend/pkg/api/discord"
	"github.com/questdrop/backend/pkg/api/telegram"
	"github.com/questdrop/backend/pkg/api/twitter"
)

type MockDiscordEndpoint struct {
	ExchangeCodeFunc func(ctx context.Context, code string) (discord.Token, error)
	GetMeFunc        func(ctx context.Context, token string) (discord.User, error)
	CheckMemberFunc  func(ctx context.Context, guildID, userID string) (bool, error)
}

func (e *MockDiscordEndpoint) ExchangeCode(ctx context.Context, code string) (discord.Token, error) {
	if e.ExchangeCodeFunc != nil {
		return e.ExchangeCodeFunc(ctx, code)
	}

	return discord.Token{}, errors.New("not implemented")
}

func (e *MockDiscordEndpoint) GetMe(ctx context.Context, token string) (discord.User, error) {
	if e.GetMeFunc != nil {
		return e.GetMeFunc(ctx, token)
	}

	return discord.User{}, errors.New("not implemented")
}

func (e *MockDiscordEndpoint) CheckMember(ctx context.Context, guildID, userID string) (bool, error) {
	if e.CheckMemberFunc != nil {
		return e.CheckMemberFunc(ctx, guildID, userID)
	}

	return false, errors.New("not implemented")
}

type MockTelegramEndpoint struct {
	GetMemberFunc func(ctx context.Context, chatID, userID string) (telegram.Member, error)
}

func (e *MockTelegramEndpoint) GetMember(ctx context.Context, chatID, userID string) (telegram.Member, error) {
	if e.GetMemberFunc != nil {
		return e.GetMemberFunc(ctx, chatID, userID)
	}

	return telegram.Member{}, errors.New("not implemented")
}

type MockTwitterEndpoint struct {
	GetUserFunc        func(ctx context.Context, handle string) (twitter.User, error)
	CheckFollowingFunc func(ctx context.Context, sourceHandle, targetHandle string) (bool, error)
}

func (e *MockTwitterEndpoint) GetUser(ctx context.Context, handle string) (twitter.User, error) {
	if e.GetUserFunc != nil {
		return e.GetUserFunc(ctx, handle)
	}

	return twitter.User{}, errors.New("not implemented")
}

func (e *MockTwitterEndpoint) CheckFollowing(
	ctx context.Context, sourceHandle, targetHandle string,
) (bool, error) {
	if e.CheckFollowingFunc != nil {
		return e.CheckFollowingFunc(ctx, sourceHandle, targetHandle)
	}

	return false, errors.New("not implemented")
}
