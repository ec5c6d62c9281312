package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bakery-api/internal/api/request"
	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/service"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

// SumResponse 销售额，固定两位小数
type SumResponse struct {
	Sum string `json:"sum" example:"125.50"`
}

// TotalSales 全部订单销售额
// @Summary 销售总额
// @Tags 统计
// @Produce json
// @Param period query string false "month 仅统计当月" Enums(month)
// @Success 200 {object} SumResponse
// @Failure 400 {object} response.Response
// @Router /orders/total [get]
func (h *Handler) TotalSales(c *gin.Context) {
	h.sales(c, nil)
}

// PaidSales 已付款销售额
// @Summary 已付款销售额
// @Tags 统计
// @Produce json
// @Param period query string false "month 仅统计当月" Enums(month)
// @Success 200 {object} SumResponse
// @Failure 400 {object} response.Response
// @Router /orders/paid [get]
func (h *Handler) PaidSales(c *gin.Context) {
	status := model.StatusPaid
	h.sales(c, &status)
}

// PendingSales 待付款销售额
// @Summary 待付款销售额
// @Tags 统计
// @Produce json
// @Param period query string false "month 仅统计当月" Enums(month)
// @Success 200 {object} SumResponse
// @Failure 400 {object} response.Response
// @Router /orders/pending [get]
func (h *Handler) PendingSales(c *gin.Context) {
	status := model.StatusPending
	h.sales(c, &status)
}

func (h *Handler) sales(c *gin.Context, status *model.Status) {
	var q request.SalesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badBinding(c, err)
		return
	}
	sum, err := h.reportService.Sales(c.Request.Context(), service.SalesQuery{
		Status: status,
		Period: service.Period(q.Period),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, SumResponse{Sum: model.Money(sum)})
}

// LastWeek 上周每日订单数
// @Summary 上周每日订单数
// @Tags 统计
// @Produce json
// @Success 200 {array} service.DayCount
// @Router /orders/lastWeek [get]
func (h *Handler) LastWeek(c *gin.Context) {
	counts, err := h.reportService.LastWeek(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, counts)
}
