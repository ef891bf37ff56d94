package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := requestContext(router, ginCtx)

		resp, err := func() (*Response, error) {
			var req Request
			var bindErr error
			switch method {
			case http.MethodGet:
				bindErr = ginCtx.ShouldBindQuery(&req)
			case http.MethodPost:
				bindErr = ginCtx.ShouldBindJSON(&req)
			}
			if bindErr != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", bindErr)
				return nil, errorx.New(errorx.BadRequest, "Invalid request")
			}

			for _, m := range router.befores {
				var err error
				if ctx, err = m(ctx); err != nil {
					return nil, err
				}
			}

			return handler(ctx, &req)
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		} else if resp != nil {
			ctx = xcontext.WithResponse(ctx, resp)
		}

		// Closers run before the body is written so they can still touch
		// headers, the session cookie in particular.
		for _, closer := range router.closers {
			closer(ctx)
		}

		if err != nil {
			writeError(ginCtx, err)
		} else if resp != nil {
			ginCtx.JSON(http.StatusOK, resp)
		}
	}
}

func wrapWebsocket[Request any](
	router *Router,
	handler HandlerFunc[Request, any],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := requestContext(router, ginCtx)

		_, err := func() (*any, error) {
			var req Request
			if err := ginCtx.ShouldBindQuery(&req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Invalid request")
			}

			for _, m := range router.befores {
				var err error
				if ctx, err = m(ctx); err != nil {
					return nil, err
				}
			}

			return handler(ctx, &req)
		}()

		// The connection may be hijacked already, only write the error if
		// the handler failed before upgrading.
		if err != nil && !ginCtx.Writer.Written() {
			ctx = xcontext.WithError(ctx, err)
			writeError(ginCtx, err)
		}

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func requestContext(router *Router, ginCtx *gin.Context) context.Context {
	ctx := xcontext.WithHTTPRequest(router.ctx, ginCtx.Request)
	return xcontext.WithHTTPWriter(ctx, ginCtx.Writer)
}
