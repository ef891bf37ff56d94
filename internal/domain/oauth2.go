package domain

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/questdrop/backend/internal/domain/handshake"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/pkg/api/discord"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

const discordAuthorizeURL = "https://discord.com/oauth2/authorize"

type OAuth2Domain interface {
	ExchangeToken(ctx context.Context, req *model.ExchangeTokenRequest) (*model.ExchangeTokenResponse, error)
	BeginHandshake(ctx context.Context, req *model.BeginHandshakeRequest) (*model.BeginHandshakeResponse, error)
	Callback(ctx context.Context, req *model.OAuth2CallbackRequest) (*model.OAuth2CallbackResponse, error)
	Await(ctx context.Context, req *model.AwaitHandshakeRequest) (*any, error)
}

type oauth2Domain struct {
	discordEndpoint discord.IEndpoint
	coordinator     *handshake.Coordinator
	wsUpgrader      websocket.Upgrader
}

func NewOAuth2Domain(
	discordEndpoint discord.IEndpoint,
	coordinator *handshake.Coordinator,
	appOrigin string,
) *oauth2Domain {
	return &oauth2Domain{
		discordEndpoint: discordEndpoint,
		coordinator:     coordinator,
		wsUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return r.Header.Get("Origin") == appOrigin
			},
		},
	}
}

// ExchangeToken trades an authorization code for a discord access token on
// behalf of the browser. The client secret never leaves the server, and
// upstream error details are never forwarded to the client.
func (d *oauth2Domain) ExchangeToken(
	ctx context.Context, req *model.ExchangeTokenRequest,
) (*model.ExchangeTokenResponse, error) {
	if req.Code == "" {
		return nil, errorx.New(errorx.BadRequest, "Authorization code is required")
	}

	cfg := xcontext.Configs(ctx).Quest.Discord
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURI == "" {
		xcontext.Logger(ctx).Errorf("Discord oauth2 credentials are not configured")
		return nil, errorx.New(errorx.Internal, "Server configuration error")
	}

	token, err := d.discordEndpoint.ExchangeCode(ctx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot exchange the authorization code: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Failed to exchange authorization code")
	}

	return &model.ExchangeTokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}

// BeginHandshake registers a popup attempt and returns the discord authorize
// url carrying its state nonce.
func (d *oauth2Domain) BeginHandshake(
	ctx context.Context, req *model.BeginHandshakeRequest,
) (*model.BeginHandshakeResponse, error) {
	cfg := xcontext.Configs(ctx).Quest.Discord
	if cfg.ClientID == "" {
		xcontext.Logger(ctx).Errorf("Discord oauth2 credentials are not configured")
		return nil, errorx.New(errorx.Internal, "Server configuration error")
	}

	state, err := d.coordinator.Begin(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot begin a handshake: %v", err)
		return nil, errorx.Unknown
	}

	query := url.Values{}
	query.Set("client_id", cfg.ClientID)
	query.Set("redirect_uri", cfg.RedirectURI)
	query.Set("response_type", "code")
	query.Set("scope", "identify guilds")
	query.Set("state", state)

	return &model.BeginHandshakeResponse{
		State:        state,
		AuthorizeURL: discordAuthorizeURL + "?" + query.Encode(),
	}, nil
}

// Callback serves the popup redirect target. It finishes the oauth2 dance
// server side and hands the outcome to the waiting opener.
func (d *oauth2Domain) Callback(
	ctx context.Context, req *model.OAuth2CallbackRequest,
) (*model.OAuth2CallbackResponse, error) {
	origin := xcontext.Configs(ctx).ApiServer.AppOrigin

	if req.Error != "" {
		d.coordinator.Deliver(ctx, req.State, origin, handshake.Message{
			Type:  handshake.MessageTypeError,
			State: req.State,
			Error: req.Error,
		})
		return &model.OAuth2CallbackResponse{Success: false, Message: "Authorization denied"}, nil
	}

	if req.Code == "" || req.State == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	user, isMember, err := d.finishExchange(ctx, req.Code)
	if err != nil {
		d.coordinator.Deliver(ctx, req.State, origin, handshake.Message{
			Type:  handshake.MessageTypeError,
			State: req.State,
			Error: "verification_failed",
		})
		return nil, err
	}

	d.coordinator.Deliver(ctx, req.State, origin, handshake.Message{
		Type:     handshake.MessageTypeSuccess,
		State:    req.State,
		UserID:   user.ID,
		Username: user.Username,
	})

	return &model.OAuth2CallbackResponse{
		Success:  true,
		Message:  "Authorization complete",
		User:     model.DiscordUser{ID: user.ID, Username: user.Username},
		IsMember: isMember,
	}, nil
}

func (d *oauth2Domain) finishExchange(ctx context.Context, code string) (discord.User, bool, error) {
	token, err := d.discordEndpoint.ExchangeCode(ctx, code)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot exchange the authorization code: %v", err)
		return discord.User{}, false, errorx.New(errorx.Unavailable, "Failed to exchange authorization code")
	}

	user, err := d.discordEndpoint.GetMe(ctx, token.AccessToken)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get the discord user: %v", err)
		return discord.User{}, false, errorx.New(errorx.Unavailable, "Verification failed")
	}

	guildID := xcontext.Configs(ctx).Quest.Discord.GuildID
	isMember, err := d.discordEndpoint.CheckMember(ctx, guildID, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check the guild member: %v", err)
		return discord.User{}, false, errorx.New(errorx.Unavailable, "Verification failed")
	}

	return user, isMember, nil
}

// Await upgrades to a websocket and blocks until the handshake attempt
// resolves. The resolved message is relayed to the client as-is. A client
// that disconnects early counts as an abandoned popup.
func (d *oauth2Domain) Await(ctx context.Context, req *model.AwaitHandshakeRequest) (*any, error) {
	if req.State == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}

	conn, err := d.wsUpgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot upgrade the connection: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Cannot establish the connection")
	}
	defer conn.Close()

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				d.coordinator.PopupClosed(req.State)
				cancel()
				return
			}
		}
	}()

	msg, err := d.coordinator.Wait(waitCtx, req.State)
	if err != nil {
		errx := errorx.Error{}
		if !errors.As(err, &errx) {
			errx = errorx.Unknown
		}

		conn.WriteJSON(handshake.Message{
			Type:  handshake.MessageTypeError,
			State: req.State,
			Error: errx.Message,
		})
		return nil, nil
	}

	if err := conn.WriteJSON(msg); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot write the handshake result: %v", err)
	}

	return nil, nil
}
