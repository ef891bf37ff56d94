package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name string `json:"name" form:"name"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required fields")
	}
	if req.Name == "unknown" {
		return nil, errorx.New(errorx.NotFound, "Not found the name")
	}

	return &echoResponse{Greeting: "hello " + req.Name}, nil
}

func Test_Router_GET(t *testing.T) {
	r := New(context.Background())
	GET(r, "/echo", echo)

	recorder := httptest.NewRecorder()
	r.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/echo?name=alice", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp echoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Equal(t, "hello alice", resp.Greeting)
}

func Test_Router_POST(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echo)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/echo", strings.NewReader(`{"name": "bob"}`))
	req.Header.Set("Content-Type", "application/json")
	r.Handler().ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp echoResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Equal(t, "hello bob", resp.Greeting)
}

func Test_Router_ErrorStatus(t *testing.T) {
	r := New(context.Background())
	GET(r, "/echo", echo)

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantError  string
	}{
		{name: "bad request", url: "/echo", wantStatus: http.StatusBadRequest, wantError: "Missing required fields"},
		{name: "not found", url: "/echo?name=unknown", wantStatus: http.StatusNotFound, wantError: "Not found the name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			r.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", tt.url, nil))

			require.Equal(t, tt.wantStatus, recorder.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			require.False(t, resp.Success)
			require.Equal(t, tt.wantError, resp.Error)
			require.Equal(t, tt.wantError, resp.Message)
		})
	}
}

func Test_Router_BeforeMiddlewareStopsRequest(t *testing.T) {
	r := New(context.Background())

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(branch, "/private", echo)
	GET(r, "/public", echo)

	recorder := httptest.NewRecorder()
	r.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/private?name=alice", nil))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	// The parent router is not affected by the branch middleware.
	recorder = httptest.NewRecorder()
	r.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/public?name=alice", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func Test_Router_CloserSeesError(t *testing.T) {
	r := New(context.Background())

	var got error
	r.AddCloser(func(ctx context.Context) {
		got = xcontext.Error(ctx)
	})
	GET(r, "/echo", echo)

	recorder := httptest.NewRecorder()
	r.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/echo?name=unknown", nil))

	require.Equal(t, errorx.New(errorx.NotFound, "Not found the name"), got)
}
