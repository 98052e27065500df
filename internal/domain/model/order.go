package model

import (
	"github.com/shopspring/decimal"
)

const (
	OrderStatusNew = "new"
)

type Order struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	ClientID uint        `gorm:"not null;index:ix_orders_client_id" json:"client_id"`
	Status   string      `gorm:"not null;type:varchar(50)" json:"status"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 一對多，刪除由 OrderRepo 處理
	BaseModel
}

// Total 訂單所有項目小計加總
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// OrderItem 一筆訂單中單一商品的數量與單價
//
// ProductID 為弱參照: 商品被刪除後會被設為 NULL
// Price 為第一次加入時的商品價格快照，之後不再同步
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index:ix_order_items_order_id" json:"order_id"`
	ProductID *uint           `gorm:"index:ix_order_items_product_id" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	BaseModel
}

func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
