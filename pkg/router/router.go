package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context or stop
// the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler, even when it failed. The final error, if
// any, is available via xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	Inner gin.IRouter

	ctx     context.Context
	befores []MiddlewareFunc
	closers []CloserFunc
}

// New creates a root router. The given context carries the process-wide
// values (configs, logger, db, token engine) every handler will see.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{Inner: gin.New(), ctx: ctx}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Websocket registers a GET route whose handler writes the response itself
// via the hijacked connection. The wrapped response handling is skipped.
func Websocket[Request any](r *Router, pattern string, handler HandlerFunc[Request, any]) {
	r.Inner.GET(pattern, wrapWebsocket(r, handler))
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Branch clones the router including registered middlewares. Routes added to
// the branch do not affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		Inner:   r.Inner,
		ctx:     r.ctx,
		befores: r.befores[:len(r.befores):len(r.befores)],
		closers: r.closers[:len(r.closers):len(r.closers)],
	}
}

// Group branches the router under a path prefix.
func (r *Router) Group(pattern string) *Router {
	branch := r.Branch()
	branch.Inner = r.Inner.Group(pattern)
	return branch
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}
