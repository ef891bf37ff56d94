package discord

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/pkg/api"
	"github.com/stretchr/testify/require"
)

func Test_Endpoint_ExchangeCode(t *testing.T) {
	endpoint := New(config.DiscordConfigs{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:3000/discord-callback",
	})

	var gotBody api.Parameter
	endpoint.apiGenerator = &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			BodyFunc: func(body api.Body) api.Client {
				gotBody = body.(api.Parameter)
				return &api.MockAPIClient{
					POSTFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
						return &api.Response{
							Code: http.StatusOK,
							Body: api.JSON{
								"access_token": "token",
								"token_type":   "Bearer",
								"expires_in":   604800,
							},
						}, nil
					},
				}
			},
		},
	}

	token, err := endpoint.ExchangeCode(context.Background(), "valid-code")
	require.NoError(t, err)
	require.Equal(t, "token", token.AccessToken)
	require.Equal(t, "Bearer", token.TokenType)
	require.Equal(t, 604800, token.ExpiresIn)

	require.Equal(t, "client-id", gotBody["client_id"])
	require.Equal(t, "authorization_code", gotBody["grant_type"])
	require.Equal(t, "valid-code", gotBody["code"])
	require.Equal(t, "http://localhost:3000/discord-callback", gotBody["redirect_uri"])
}

func Test_Endpoint_ExchangeCode_UpstreamRejects(t *testing.T) {
	endpoint := New(config.DiscordConfigs{})
	endpoint.apiGenerator = &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			POSTFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code: http.StatusBadRequest,
					Body: api.JSON{"error": "invalid_grant"},
				}, nil
			},
		},
	}

	_, err := endpoint.ExchangeCode(context.Background(), "expired-code")
	require.Error(t, err)
}

func Test_Endpoint_CheckMember(t *testing.T) {
	endpoint := New(config.DiscordConfigs{BotToken: "bot-token"})
	endpoint.apiGenerator = &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			GETFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code: http.StatusOK,
					Body: api.JSON{"user": map[string]any{"id": "111"}},
				}, nil
			},
		},
	}

	isMember, err := endpoint.CheckMember(context.Background(), "guild-1", "user-1")
	require.NoError(t, err)
	require.True(t, isMember)
}

func Test_Endpoint_CheckMember_NotFound(t *testing.T) {
	endpoint := New(config.DiscordConfigs{BotToken: "bot-token"})
	endpoint.apiGenerator = &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			GETFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code: http.StatusNotFound,
					Body: api.JSON{"message": "Unknown Member", "code": 10007},
				}, nil
			},
		},
	}

	isMember, err := endpoint.CheckMember(context.Background(), "guild-1", "user-1")
	require.NoError(t, err)
	require.False(t, isMember)
}

func Test_Endpoint_CheckMember_TooManyRequest(t *testing.T) {
	endpoint := New(config.DiscordConfigs{})

	resetAt := time.Now().Add(time.Second)
	endpoint.apiGenerator = &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			GETFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code:   http.StatusTooManyRequests,
					Header: http.Header{"X-Ratelimit-Reset": []string{strconv.FormatInt(resetAt.Unix(), 10)}},
					Body:   api.JSON{},
				}, nil
			},
		},
	}

	// Call API with a response of TooManyRequest.
	_, err := endpoint.CheckMember(context.Background(), "guild-1", "user-1")
	gotResetAt, ok := IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt.Unix(), gotResetAt.Unix())

	// Check the resource with identifier, ensure that it is limited.
	err = endpoint.checkLimitingResource(checkMemberResource, "guild-1")
	gotResetAt, ok = IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt.Unix(), gotResetAt.Unix())

	// Check another identifier, ensure that it is NOT limited.
	err = endpoint.checkLimitingResource(checkMemberResource, "guild-2")
	require.NoError(t, err)

	// Sleep until the limiting of resource expired. Check again.
	time.Sleep(time.Second)
	err = endpoint.checkLimitingResource(checkMemberResource, "guild-1")
	require.NoError(t, err)
}
