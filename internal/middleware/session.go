package middleware

import (
	"context"

	"github.com/questdrop/backend/pkg/router"
	"github.com/questdrop/backend/pkg/xcontext"
)

type SessionResponse interface {
	SessionInfo() map[string]any
}

// HandleSaveSession persists the session values a response announces via
// SessionInfo. Responses without session info are left alone.
func HandleSaveSession() router.CloserFunc {
	return func(ctx context.Context) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return
		}

		r := xcontext.HTTPRequest(ctx)
		w := xcontext.HTTPWriter(ctx)
		session, err := xcontext.SessionStore(ctx).Get(r, xcontext.Configs(ctx).Session.Name)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get the session: %v", err)
			return
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if err := session.Save(r, w); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save the session: %v", err)
		}
	}
}
