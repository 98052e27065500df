package model

import (
	"github.com/shopspring/decimal"
)

// Category 為自我參照的樹狀結構
// 刪除時子分類與所屬商品一併刪除，由 repository 明確處理，不依賴 FK cascade
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;type:varchar(255);index:ix_categories_name" json:"name"`
	ParentID *uint  `gorm:"index:ix_categories_parent_id" json:"parent_id,omitempty"`
	BaseModel
}

type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"not null;type:varchar(255);index:ix_products_name" json:"name"`
	Quantity   int             `gorm:"not null" json:"quantity"` // 可用庫存
	Price      decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	CategoryID *uint           `gorm:"index:ix_products_category_id" json:"category_id,omitempty"`
	BaseModel
}

// HasStock 檢查可用庫存是否足夠扣除 quantity
func (p *Product) HasStock(quantity int) bool {
	return p.Quantity >= quantity
}

type Client struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null;type:varchar(255);index:ix_clients_name" json:"name"`
	Address *string `gorm:"type:varchar(1024)" json:"address,omitempty"`
	BaseModel
}
