package handler

import (
	"errors"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/bakery-api/internal/api/request"
	"github.com/d60-Lab/bakery-api/internal/service"
	"github.com/d60-Lab/bakery-api/pkg/logger"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

// fail 将业务错误映射为 HTTP 响应
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrUserExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		response.InternalError(c, err)
	}
}

// badBinding 区分字段校验失败与无法解析的请求体
func badBinding(c *gin.Context, err error) {
	if fields := request.FieldErrors(err); fields != nil {
		response.ValidationError(c, fields)
		return
	}
	response.BadRequest(c, err.Error())
}
