package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/pkg/api"
)

const apiURL = "https://api.telegram.org"

type IEndpoint interface {
	GetMember(ctx context.Context, chatID, userID string) (Member, error)
}

type Endpoint struct {
	BotToken string

	apiGenerator api.Generator
}

func New(cfg config.TelegramConfigs) *Endpoint {
	return &Endpoint{
		BotToken:     cfg.BotToken,
		apiGenerator: api.NewGenerator(apiURL),
	}
}

// GetMember returns the chat membership of a user. A user who left or was
// never in the chat comes back with a non-member status.
func (e *Endpoint) GetMember(ctx context.Context, chatID, userID string) (Member, error) {
	resp, err := e.apiGenerator.New("/bot%s/getChatMember", e.BotToken).
		Query(api.Parameter{
			"chat_id": chatID,
			"user_id": userID,
		}).
		GET(ctx)
	if err != nil {
		return Member{}, err
	}

	if resp.Code != http.StatusOK {
		return Member{}, fmt.Errorf("telegram responded with status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Member{}, errors.New("invalid response")
	}

	result, err := body.GetJSON("result")
	if err != nil {
		return Member{}, err
	}

	status, err := result.GetString("status")
	if err != nil {
		return Member{}, err
	}

	user, err := result.GetJSON("user")
	if err != nil {
		return Member{}, err
	}

	id, err := user.GetInt("id")
	if err != nil {
		return Member{}, err
	}

	return Member{ID: fmt.Sprintf("%d", id), Status: status}, nil
}
