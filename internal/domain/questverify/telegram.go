package questverify

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

type telegramVerifier struct {
	factory Factory

	UserID string `mapstructure:"telegramUserId"`
}

func newTelegramVerifier(factory Factory, proof map[string]any) (*telegramVerifier, error) {
	verifier := telegramVerifier{factory: factory}
	if err := mapstructure.Decode(proof, &verifier); err != nil {
		return nil, errorx.Unknown
	}

	if verifier.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Telegram verification data missing")
	}

	return &verifier, nil
}

func (v *telegramVerifier) Verify(ctx context.Context, walletAddress string) error {
	chatID := xcontext.Configs(ctx).Quest.Telegram.ChatID
	member, err := v.factory.telegramEndpoint.GetMember(ctx, chatID, v.UserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get the chat member %s: %v", v.UserID, err)
		return errorx.New(errorx.Unavailable, "Verification failed")
	}

	switch member.Status {
	case "creator", "administrator", "member":
		return nil
	default:
		return errorx.New(errorx.Unavailable, "Verification failed")
	}
}
