package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Authenticate(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := Authenticate()(ctx)
	require.Equal(t, errorx.New(errorx.Unauthenticated, "You need to authenticate before"), err)

	_, err = Authenticate()(xcontext.WithRequestUserID(ctx, "0xabc"))
	require.NoError(t, err)
}

func Test_WithRequestUser(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("0xabc", model.AccessToken{
		ID:            "0xabc",
		WalletAddress: "0xabc",
	})
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/user/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	userCtx, err := WithRequestUser()(xcontext.WithHTTPRequest(ctx, r))
	require.NoError(t, err)
	require.Equal(t, "0xabc", xcontext.RequestUserID(userCtx))

	// No token resolves to an anonymous request, not an error.
	anonCtx, err := WithRequestUser()(xcontext.WithHTTPRequest(ctx, httptest.NewRequest("GET", "/", nil)))
	require.NoError(t, err)
	require.Empty(t, xcontext.RequestUserID(anonCtx))

	// A garbage token does too, the private routes reject it later.
	r = httptest.NewRequest("GET", "/api/user/me", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	anonCtx, err = WithRequestUser()(xcontext.WithHTTPRequest(ctx, r))
	require.NoError(t, err)
	require.Empty(t, xcontext.RequestUserID(anonCtx))
}
