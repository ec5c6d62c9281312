package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 错误响应体；成功响应直接返回资源本身
type Response struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Message 仅包含提示信息的成功响应
type Message struct {
	Message string `json:"message"`
}

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
)

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK 200 + {message}
func OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Message{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, CodeBadRequest, message)
}

func ValidationError(c *gin.Context, fields []FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Code:    CodeValidation,
		Message: "request validation failed",
		Errors:  fields,
	})
}

func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, CodeNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, CodeConflict, message)
}

func TooManyRequests(c *gin.Context) {
	abort(c, http.StatusTooManyRequests, CodeTooManyRequests, "rate limit exceeded")
}

// InternalError 兜底 500，带上错误信息
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	abort(c, http.StatusInternalServerError, CodeInternal, err.Error())
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{Code: code, Message: message})
}
