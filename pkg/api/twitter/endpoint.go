package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/pkg/api"
)

type IEndpoint interface {
	GetUser(ctx context.Context, handle string) (User, error)
	CheckFollowing(ctx context.Context, sourceHandle, targetHandle string) (bool, error)
}

// Endpoint talks to an internal twitter resolver service, not to the public
// twitter API directly.
type Endpoint struct {
	apiGenerator api.Generator
}

func New(cfg config.TwitterConfigs) *Endpoint {
	return &Endpoint{
		apiGenerator: api.NewGenerator(cfg.APIEndpoints...),
	}
}

func (e *Endpoint) GetUser(ctx context.Context, handle string) (User, error) {
	resp, err := e.apiGenerator.New("/user/%s", sanitizeHandle(handle)).GET(ctx)
	if err != nil {
		return User{}, err
	}

	if resp.Code != http.StatusOK {
		return User{}, fmt.Errorf("resolver responded with status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid response")
	}

	id, err := body.GetString("id")
	if err != nil {
		return User{}, err
	}

	screenName, err := body.GetString("screen_name")
	if err != nil {
		return User{}, err
	}

	return User{ID: id, Handle: screenName}, nil
}

func (e *Endpoint) CheckFollowing(ctx context.Context, sourceHandle, targetHandle string) (bool, error) {
	resp, err := e.apiGenerator.New("/following/%s/%s",
		sanitizeHandle(sourceHandle), sanitizeHandle(targetHandle)).GET(ctx)
	if err != nil {
		return false, err
	}

	if resp.Code != http.StatusOK {
		return false, fmt.Errorf("resolver responded with status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return false, errors.New("invalid response")
	}

	following, err := body.GetBool("following")
	if err != nil {
		return false, err
	}

	return following, nil
}

func sanitizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
