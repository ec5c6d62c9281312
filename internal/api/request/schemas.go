// Package request 定义各路由的请求结构及校验规则，与处理逻辑分离以便单独测试
package request

import "github.com/d60-Lab/bakery-api/internal/model"

// Credentials 登录与注册共用
type Credentials struct {
	Name     string `json:"name" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

type CreateRecipe struct {
	Title string  `json:"title" binding:"required,notblank,max=255"`
	Price *Amount `json:"price" binding:"required,gte=0,lte=99999999.99" swaggertype:"number"`
}

// UpdateRecipe 缺省字段保持不变
type UpdateRecipe struct {
	Title *string `json:"title" binding:"omitempty,notblank,max=255"`
	Price *Amount `json:"price" binding:"omitempty,gte=0,lte=99999999.99" swaggertype:"number"`
}

type CreateOrder struct {
	RecipeID     string       `json:"recipeId" binding:"required,uuid"`
	CustomerName string       `json:"customerName" binding:"required,notblank,max=255"`
	Quantity     Quantity     `json:"quantity" binding:"gte=1,lte=10000" swaggertype:"integer"`
	Status       model.Status `json:"status" binding:"omitempty,oneof=pending paid" enums:"pending,paid"`
	IsDelivered  bool         `json:"isDelivered"`
	// RFC 3339 或 YYYY-MM-DD
	DeliveryDate *string `json:"deliveryDate" binding:"omitempty,deliverydate"`
}

type ChangeStatus struct {
	Status model.Status `json:"status" binding:"required,oneof=pending paid" enums:"pending,paid"`
}

type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type PageParam struct {
	Page int `uri:"page" binding:"gte=1"`
}

type StatusParam struct {
	Status model.Status `uri:"status" binding:"required,oneof=pending paid"`
}

// DateQuery ?date=YYYY-MM-DD
type DateQuery struct {
	Date string `form:"date" binding:"required,ymd"`
}

type SearchQuery struct {
	Search string `form:"search"`
}

// SalesQuery period 为空统计全部，month 仅统计当月
type SalesQuery struct {
	Period string `form:"period" binding:"omitempty,oneof=month"`
}
