package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdrop/backend/pkg/errorx"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(ginCtx *gin.Context, err error) {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	ginCtx.JSON(statusOf(errx.Code), errorResponse{
		Success: false,
		Error:   errx.Message,
		Message: errx.Message,
	})
}

func statusOf(code errorx.Code) int {
	switch code {
	case errorx.BadRequest, errorx.AlreadyExists, errorx.Unavailable:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
