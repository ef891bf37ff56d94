package questverify

import (
	"context"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/api/discord"
	"github.com/questdrop/backend/pkg/api/telegram"
	"github.com/questdrop/backend/pkg/api/twitter"
	"github.com/questdrop/backend/pkg/errorx"
)

// Verifier checks one quest claim against the platform it belongs to. A nil
// return means the claim is proven. Verification that cannot be completed
// fails the claim, it is never waved through.
type Verifier interface {
	Verify(ctx context.Context, walletAddress string) error
}

type Factory struct {
	discordEndpoint  discord.IEndpoint
	telegramEndpoint telegram.IEndpoint
	twitterEndpoint  twitter.IEndpoint
}

func NewFactory(
	discordEndpoint discord.IEndpoint,
	telegramEndpoint telegram.IEndpoint,
	twitterEndpoint twitter.IEndpoint,
) Factory {
	return Factory{
		discordEndpoint:  discordEndpoint,
		telegramEndpoint: telegramEndpoint,
		twitterEndpoint:  twitterEndpoint,
	}
}

// NewVerifier builds the verifier for a platform from the untyped proof the
// client submitted.
func (f Factory) NewVerifier(
	ctx context.Context, platform entity.Platform, proof map[string]any,
) (Verifier, error) {
	switch platform {
	case entity.PlatformDiscord:
		return newDiscordVerifier(f, proof)
	case entity.PlatformTelegram:
		return newTelegramVerifier(f, proof)
	case entity.PlatformTwitter:
		return newTwitterVerifier(f, proof)
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid platform")
	}
}
