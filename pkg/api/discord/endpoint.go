package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/pkg/api"
)

const apiURL = "https://discord.com/api"
const userAgent = "DiscordBot (https://questdrop.xyz, 1.0)"

const (
	checkMemberResource = "check_member"
)

type Endpoint struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BotToken     string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		ClientID:          cfg.ClientID,
		ClientSecret:      cfg.ClientSecret,
		RedirectURI:       cfg.RedirectURI,
		BotToken:          cfg.BotToken,
		apiGenerator:      api.NewGenerator(apiURL),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

// ExchangeCode trades an authorization code for an access token. The code is
// single-use, a failed exchange is never retried.
func (e *Endpoint) ExchangeCode(ctx context.Context, code string) (Token, error) {
	resp, err := e.apiGenerator.New("/oauth2/token").
		Header("User-Agent", userAgent).
		Body(api.Parameter{
			"client_id":     e.ClientID,
			"client_secret": e.ClientSecret,
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  e.RedirectURI,
		}).
		POST(ctx)
	if err != nil {
		return Token{}, err
	}

	if resp.Code != http.StatusOK {
		return Token{}, fmt.Errorf("exchange responded with status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Token{}, errors.New("invalid response")
	}

	accessToken, err := body.GetString("access_token")
	if err != nil {
		return Token{}, err
	}

	tokenType, err := body.GetString("token_type")
	if err != nil {
		return Token{}, err
	}

	expiresIn, err := body.GetInt("expires_in")
	if err != nil {
		return Token{}, err
	}

	return Token{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresIn:   expiresIn,
	}, nil
}

// GetMe resolves the identity bound to a user access token.
func (e *Endpoint) GetMe(ctx context.Context, token string) (User, error) {
	resp, err := e.apiGenerator.New("/users/@me").
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bearer", token))
	if err != nil {
		return User{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid response")
	}

	id, err := body.GetString("id")
	if err != nil {
		return User{}, err
	}

	username, err := body.GetString("username")
	if err != nil {
		return User{}, err
	}

	return User{ID: id, Username: username}, nil
}

// CheckMember reports whether the user belongs to the guild. It asks with the
// bot credential, so it works regardless of the user token scopes.
func (e *Endpoint) CheckMember(ctx context.Context, guildID, userID string) (bool, error) {
	if err := e.checkLimitingResource(checkMemberResource, guildID); err != nil {
		return false, err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/members/%s", guildID, userID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return false, err
	}

	if err := e.checkTooManyRequest(resp, checkMemberResource, guildID); err != nil {
		return false, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return false, errors.New("invalid response")
	}

	// If response has the field of code, an error is returned.
	if _, err := body.GetInt("code"); err == nil {
		return false, nil
	}

	return true, nil
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		resetAt, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))
		if err != nil {
			return err
		}

		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, time.Unix(int64(resetAt), 0))
		return wrapRateLimit(int64(resetAt))
	}

	return nil
}
