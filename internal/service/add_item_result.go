package service

import (
	"errors"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
)

// AddItemOutcome 加入商品的結果分類
// 除了 OutcomeAdded 以外都是呼叫端可處理的預期結果，交易已 rollback
type AddItemOutcome int

const (
	OutcomeAdded AddItemOutcome = iota
	OutcomeOrderNotFound
	OutcomeProductNotFound
	OutcomeInsufficientStock
)

func (o AddItemOutcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeOrderNotFound:
		return "order_not_found"
	case OutcomeProductNotFound:
		return "product_not_found"
	case OutcomeInsufficientStock:
		return "insufficient_stock"
	default:
		return "unknown"
	}
}

// AddItemResult Outcome 為 OutcomeAdded 時 Item 為加入後的 order item，其餘為 nil
type AddItemResult struct {
	Outcome AddItemOutcome
	Item    *model.OrderItem
}

func (r AddItemResult) Added() bool {
	return r.Outcome == OutcomeAdded
}

// Err 將被拒絕的結果轉為對應的 sentinel error，成功時回傳 nil
func (r AddItemResult) Err() error {
	switch r.Outcome {
	case OutcomeAdded:
		return nil
	case OutcomeOrderNotFound:
		return ErrOrderNotFound
	case OutcomeProductNotFound:
		return ErrProductNotFound
	case OutcomeInsufficientStock:
		return ErrInsufficientStock
	default:
		return errors.New("unknown add item outcome")
	}
}

// rejection 讓 unit of work rollback 的內部錯誤，不會回傳給呼叫端
type rejection struct {
	outcome AddItemOutcome
}

func (r *rejection) Error() string {
	return "add item rejected: " + r.outcome.String()
}
