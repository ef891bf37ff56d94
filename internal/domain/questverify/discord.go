package questverify

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

type discordVerifier struct {
	factory Factory

	UserID   string `mapstructure:"discordUserId"`
	Username string `mapstructure:"discordUsername"`
}

func newDiscordVerifier(factory Factory, proof map[string]any) (*discordVerifier, error) {
	verifier := discordVerifier{factory: factory}
	if err := mapstructure.Decode(proof, &verifier); err != nil {
		return nil, errorx.Unknown
	}

	if verifier.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Discord verification data missing")
	}

	return &verifier, nil
}

func (v *discordVerifier) Verify(ctx context.Context, walletAddress string) error {
	guildID := xcontext.Configs(ctx).Quest.Discord.GuildID
	isMember, err := v.factory.discordEndpoint.CheckMember(ctx, guildID, v.UserID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check the guild member %s: %v", v.UserID, err)
		return errorx.New(errorx.Unavailable, "Verification failed")
	}

	if !isMember {
		return errorx.New(errorx.Unavailable, "Verification failed")
	}

	return nil
}
