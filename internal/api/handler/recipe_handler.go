package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bakery-api/internal/api/request"
	"github.com/d60-Lab/bakery-api/internal/service"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

// CreateRecipe 创建配方
// @Summary 创建配方
// @Tags 配方
// @Accept json
// @Produce json
// @Param request body request.CreateRecipe true "配方信息；price 可为数字或字符串，支持逗号小数点"
// @Success 201 {object} model.Recipe
// @Failure 400 {object} response.Response
// @Router /recipes [post]
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req request.CreateRecipe
	if err := c.ShouldBindJSON(&req); err != nil {
		badBinding(c, err)
		return
	}
	recipe, err := h.recipeService.Create(c.Request.Context(), service.CreateRecipeInput{
		Title: req.Title,
		Price: req.Price.Decimal,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, recipe)
}

// ListRecipes 在售配方列表
// @Summary 配方列表
// @Tags 配方
// @Produce json
// @Success 200 {array} model.Recipe
// @Router /recipes [get]
func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, recipes)
}

// GetRecipe 查询配方（含已停售）
// @Summary 配方详情
// @Tags 配方
// @Produce json
// @Param id path string true "配方ID"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipe/{id} [get]
func (h *Handler) GetRecipe(c *gin.Context) {
	var uri request.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	recipe, err := h.recipeService.Get(c.Request.Context(), uri.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, recipe)
}

// UpdateRecipe 部分更新配方
// @Summary 更新配方
// @Tags 配方
// @Accept json
// @Produce json
// @Param id path string true "配方ID"
// @Param request body request.UpdateRecipe true "待更新字段"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipes/{id} [put]
func (h *Handler) UpdateRecipe(c *gin.Context) {
	var uri request.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	var req request.UpdateRecipe
	if err := c.ShouldBindJSON(&req); err != nil {
		badBinding(c, err)
		return
	}

	in := service.UpdateRecipeInput{Title: req.Title}
	if req.Price != nil {
		price := req.Price.Decimal
		in.Price = &price
	}
	recipe, err := h.recipeService.Update(c.Request.Context(), uri.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, recipe)
}

// DeleteRecipe 停售配方（软删除）
// @Summary 删除配方
// @Tags 配方
// @Produce json
// @Param id path string true "配方ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /recipes/{id} [delete]
func (h *Handler) DeleteRecipe(c *gin.Context) {
	var uri request.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	if err := h.recipeService.Delete(c.Request.Context(), uri.ID); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Recipe deleted")
}
