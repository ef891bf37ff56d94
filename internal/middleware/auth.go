package middleware

import (
	"context"
	"strings"

	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/router"
	"github.com/questdrop/backend/pkg/xcontext"
)

// WithRequestUser resolves a Bearer token into the request user. Requests
// without a token pass through anonymous.
func WithRequestUser() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := accessToken(ctx)
		if token == "" {
			return ctx, nil
		}

		info, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify the access token: %v", err)
			return ctx, nil
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

// Authenticate rejects requests without a resolved user.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}
		return ctx, nil
	}
}

func accessToken(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return ""
	}

	authorization := r.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found && auth == "Bearer" {
		return token
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
