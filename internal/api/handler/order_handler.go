package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bakery-api/internal/api/request"
	"github.com/d60-Lab/bakery-api/internal/model"
	"github.com/d60-Lab/bakery-api/internal/service"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

// CreateOrder 下单，总价按 单价×数量 固化
// @Summary 创建订单
// @Tags 订单
// @Accept json
// @Produce json
// @Param request body request.CreateOrder true "订单信息"
// @Success 201 {object} model.Order
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response "配方不存在或已停售"
// @Router /orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req request.CreateOrder
	if err := c.ShouldBindJSON(&req); err != nil {
		badBinding(c, err)
		return
	}

	in := service.CreateOrderInput{
		RecipeID:     req.RecipeID,
		CustomerName: req.CustomerName,
		Quantity:     int(req.Quantity),
		Status:       req.Status,
		IsDelivered:  req.IsDelivered,
	}
	if req.DeliveryDate != nil {
		d, err := h.cal.ParseDateTime(*req.DeliveryDate)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		in.DeliveryDate = &d
	}

	order, err := h.orderService.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, order)
}

// GetOrder 订单详情
// @Summary 订单详情
// @Tags 订单
// @Produce json
// @Param id path string true "订单ID"
// @Success 200 {object} model.Order
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /order/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	var uri request.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), uri.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 第一页订单
// @Summary 订单分页（第一页）
// @Tags 订单
// @Produce json
// @Success 200 {object} service.OrderPage
// @Router /orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	h.listPage(c, 1)
}

// ListOrdersPage 指定页订单
// @Summary 订单分页
// @Tags 订单
// @Produce json
// @Param page path int true "页码，从 1 开始"
// @Success 200 {object} service.OrderPage
// @Failure 400 {object} response.Response
// @Router /orders/{page} [get]
func (h *Handler) ListOrdersPage(c *gin.Context) {
	var uri request.PageParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	h.listPage(c, uri.Page)
}

func (h *Handler) listPage(c *gin.Context, page int) {
	result, err := h.orderService.List(c.Request.Context(), page)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

// SearchOrders 按客户名搜索
// @Summary 搜索订单
// @Tags 订单
// @Produce json
// @Param search query string false "客户名片段，不区分大小写"
// @Success 200 {array} model.Order
// @Router /orders/search [get]
func (h *Handler) SearchOrders(c *gin.Context) {
	var q request.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badBinding(c, err)
		return
	}
	orders, err := h.orderService.Search(c.Request.Context(), q.Search)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, orders)
}

// ListOrdersByStatus 按状态过滤
// @Summary 按状态列出订单
// @Tags 订单
// @Produce json
// @Param status path string true "订单状态" Enums(pending, paid)
// @Success 200 {array} model.Order
// @Failure 400 {object} response.Response
// @Router /orders/status/{status} [get]
func (h *Handler) ListOrdersByStatus(c *gin.Context) {
	var uri request.StatusParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	h.listStatus(c, uri.Status)
}

// ListPendingOrders 待付款订单
// @Summary 待付款订单
// @Tags 订单
// @Produce json
// @Success 200 {array} model.Order
// @Router /orders/pending-filter [get]
func (h *Handler) ListPendingOrders(c *gin.Context) {
	h.listStatus(c, model.StatusPending)
}

func (h *Handler) listStatus(c *gin.Context, status model.Status) {
	orders, err := h.orderService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, orders)
}

// ChangeOrderStatus 修改付款状态
// @Summary 修改订单状态
// @Tags 订单
// @Accept json
// @Produce json
// @Param id path string true "订单ID"
// @Param request body request.ChangeStatus true "目标状态"
// @Success 200 {object} model.Order
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /order/{id}/change-status [patch]
func (h *Handler) ChangeOrderStatus(c *gin.Context) {
	var uri request.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	var req request.ChangeStatus
	if err := c.ShouldBindJSON(&req); err != nil {
		badBinding(c, err)
		return
	}
	order, err := h.orderService.ChangeStatus(c.Request.Context(), uri.ID, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, order)
}

// MarkOrderDelivered 标记已配送
// @Summary 标记订单已配送
// @Tags 订单
// @Produce json
// @Param id path string true "订单ID"
// @Success 200 {object} model.Order
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /order/change-status/{id} [patch]
func (h *Handler) MarkOrderDelivered(c *gin.Context) {
	var uri request.IDParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badBinding(c, err)
		return
	}
	order, err := h.orderService.MarkDelivered(c.Request.Context(), uri.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrdersByDate 指定日期创建的订单
// @Summary 按创建日期列出订单
// @Tags 订单
// @Produce json
// @Param date query string true "YYYY-MM-DD（业务时区）"
// @Success 200 {object} map[string][]model.Order
// @Failure 400 {object} response.Response
// @Router /orders-by-date [get]
func (h *Handler) ListOrdersByDate(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badBinding(c, err)
		return
	}
	orders, err := h.orderService.ListCreatedOn(c.Request.Context(), q.Date)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// ListDeliveries 未配送订单
// @Summary 待配送订单
// @Tags 配送
// @Produce json
// @Success 200 {array} model.Order
// @Router /orders/delivery [get]
func (h *Handler) ListDeliveries(c *gin.Context) {
	orders, err := h.orderService.ListPendingDeliveries(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, orders)
}

// ListDeliveriesByDate 指定日期待配送订单
// @Summary 按配送日期列出待配送订单
// @Tags 配送
// @Produce json
// @Param date query string true "YYYY-MM-DD（业务时区）"
// @Success 200 {array} model.Order
// @Failure 400 {object} response.Response
// @Router /orders/delivery/by-date [get]
func (h *Handler) ListDeliveriesByDate(c *gin.Context) {
	var q request.DateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badBinding(c, err)
		return
	}
	orders, err := h.orderService.ListDeliveriesOn(c.Request.Context(), q.Date)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, orders)
}
