package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxOrderQuantity 单笔订单数量上限
const MaxOrderQuantity = 10000

// MaxOrderTotal 订单总额上限，对应 decimal(12,2)
var MaxOrderTotal = decimal.RequireFromString("9999999999.99")

// Status 订单状态
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Statuses 全部合法状态
var Statuses = []Status{StatusPending, StatusPaid}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid:
		return true
	}
	return false
}

// ParseStatus 校验并转换状态字符串
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// Order 订单模型；TotalAmount 在创建时按 单价×数量 固化，之后不随配方价格变化。
// CustomerKey 为小写客户名，仅用于搜索
type Order struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName string          `json:"customerName" gorm:"type:varchar(255);not null"`
	CustomerKey  string          `json:"-" gorm:"type:varchar(255);not null;default:'';index"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	TotalAmount  decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null" swaggertype:"string" example:"15.00"`
	Status       Status          `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	IsDelivered  bool            `json:"isDelivered" gorm:"not null;default:false;index:idx_orders_delivery"`
	DeliveryDate *time.Time      `json:"deliveryDate" gorm:"index:idx_orders_delivery"`
	RecipeID     string          `json:"recipeId" gorm:"type:varchar(36);not null;index"`
	Recipe       *Recipe         `json:"recipe,omitempty" gorm:"foreignKey:RecipeID"`
	CreatedAt    time.Time       `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 客户名创建后不再修改，小写键只在创建时生成
func (o *Order) BeforeCreate(*gorm.DB) error {
	o.CustomerKey = CustomerKey(o.CustomerName)
	return nil
}

// CustomerKey 客户名的搜索键；strings.ToLower 覆盖 Unicode，SQLite 的 LOWER 只处理 ASCII
func CustomerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		TotalAmount string `json:"totalAmount"`
	}{order(o), Money(o.TotalAmount)})
}

// Money 金额固定两位小数输出
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
