package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bakery-api/internal/api/request"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

// Authenticate 校验用户名与密码
// @Summary 用户认证
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body request.Credentials true "用户名与密码"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth [post]
func (h *Handler) Authenticate(c *gin.Context) {
	var req request.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badBinding(c, err)
		return
	}
	if _, err := h.authService.Authenticate(c.Request.Context(), req.Name, req.Password); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Authenticated")
}

// Register 注册用户
// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body request.Credentials true "用户名与密码"
// @Success 201 {object} model.User
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req request.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badBinding(c, err)
		return
	}
	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, user)
}
