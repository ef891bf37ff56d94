package questverify

import (
	"context"
	"errors"
	"testing"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/api/telegram"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_Factory_NewVerifier_InvalidPlatform(t *testing.T) {
	factory := NewFactory(
		&testutil.MockDiscordEndpoint{},
		&testutil.MockTelegramEndpoint{},
		&testutil.MockTwitterEndpoint{},
	)

	_, err := factory.NewVerifier(context.Background(), entity.Platform("facebook"), nil)
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid platform"), err)
}

func Test_telegramVerifier_Verify(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{name: "member", status: "member"},
		{name: "administrator", status: "administrator"},
		{name: "creator", status: "creator"},
		{
			name:    "left",
			status:  "left",
			wantErr: errorx.New(errorx.Unavailable, "Verification failed"),
		},
		{
			name:    "kicked",
			status:  "kicked",
			wantErr: errorx.New(errorx.Unavailable, "Verification failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			factory := NewFactory(
				&testutil.MockDiscordEndpoint{},
				&testutil.MockTelegramEndpoint{
					GetMemberFunc: func(ctx context.Context, chatID, userID string) (telegram.Member, error) {
						return telegram.Member{ID: userID, Status: tt.status}, nil
					},
				},
				&testutil.MockTwitterEndpoint{},
			)

			verifier, err := factory.NewVerifier(
				ctx, entity.PlatformTelegram, map[string]any{"telegramUserId": "555"})
			require.NoError(t, err)

			err = verifier.Verify(ctx, "0xabc")
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func Test_verifiers_FailClosedOnEndpointError(t *testing.T) {
	ctx := testutil.MockContext()
	factory := NewFactory(
		&testutil.MockDiscordEndpoint{
			CheckMemberFunc: func(ctx context.Context, guildID, userID string) (bool, error) {
				return false, errors.New("discord is down")
			},
		},
		&testutil.MockTelegramEndpoint{},
		&testutil.MockTwitterEndpoint{
			CheckFollowingFunc: func(ctx context.Context, sourceHandle, targetHandle string) (bool, error) {
				return false, errors.New("resolver is down")
			},
		},
	)

	verifier, err := factory.NewVerifier(
		ctx, entity.PlatformDiscord, map[string]any{"discordUserId": "111"})
	require.NoError(t, err)
	require.Equal(t, errorx.New(errorx.Unavailable, "Verification failed"), verifier.Verify(ctx, "0xabc"))

	verifier, err = factory.NewVerifier(
		ctx, entity.PlatformTwitter, map[string]any{"twitterHandle": "alice"})
	require.NoError(t, err)
	require.Equal(t, errorx.New(errorx.Unavailable, "Verification failed"), verifier.Verify(ctx, "0xabc"))
}
