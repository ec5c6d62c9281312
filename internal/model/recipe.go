package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// MaxRecipePrice 单价上限，对应 decimal(10,2)
var MaxRecipePrice = decimal.RequireFromString("99999999.99")

// Recipe 可售商品；删除为软删除（IsActive=false）
type Recipe struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string          `json:"title" gorm:"type:varchar(255);not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null" swaggertype:"string" example:"5.50"`
	IsActive  bool            `json:"isActive" gorm:"not null;default:true;index"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (Recipe) TableName() string { return "recipes" }

func (r Recipe) MarshalJSON() ([]byte, error) {
	type recipe Recipe
	return json.Marshal(struct {
		recipe
		Price string `json:"price"`
	}{recipe(r), Money(r.Price)})
}
