package event

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// OrderItemAddedEvent 商品加入訂單並且扣庫存成功後發出
// AggregateID 為訂單ID
type OrderItemAddedEvent struct {
	BaseEvent
	OrderItemID    uint            `json:"orderItemId"`
	OrderID        uint            `json:"orderId"`
	ProductID      uint            `json:"productId"`
	AddedQuantity  int             `json:"addedQuantity"`
	LineQuantity   int             `json:"lineQuantity"`
	Price          decimal.Decimal `json:"price"`
	RemainingStock int             `json:"remainingStock"`
}

func NewOrderItemAddedEvent(orderItemID, orderID, productID uint, added, lineQuantity int, price decimal.Decimal, remainingStock int) *OrderItemAddedEvent {
	return &OrderItemAddedEvent{
		BaseEvent:      NewBaseEvent(strconv.FormatUint(uint64(orderID), 10), OrderItemAddedEventName),
		OrderItemID:    orderItemID,
		OrderID:        orderID,
		ProductID:      productID,
		AddedQuantity:  added,
		LineQuantity:   lineQuantity,
		Price:          price,
		RemainingStock: remainingStock,
	}
}

var _ Event = (*OrderItemAddedEvent)(nil)
