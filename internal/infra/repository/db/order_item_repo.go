package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
)

type OrderItemRepo struct {
	db *DbDao
}

func NewOrderItemRepo(db *DbDao) *OrderItemRepo {
	return &OrderItemRepo{db: db}
}

// FindLine 找出訂單中某商品唯一的 order item
//
// 返回值:
//   - nil, nil: 尚未有該商品的項目
//   - ErrDuplicateOrderLine: 同一對 (order, product) 有多筆資料
func (s *OrderItemRepo) FindLine(ctx context.Context, orderID, productID uint) (*model.OrderItem, error) {
	var items []model.OrderItem
	// 只需要知道是否超過一筆
	err := s.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Order("id").
		Limit(2).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	switch len(items) {
	case 0:
		return nil, nil
	case 1:
		return &items[0], nil
	default:
		return nil, fmt.Errorf("%w: order %d product %d", ErrDuplicateOrderLine, orderID, productID)
	}
}

func (s *OrderItemRepo) CreateOrderItem(ctx context.Context, item *model.OrderItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *OrderItemRepo) SaveOrderItem(ctx context.Context, item *model.OrderItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

// 取得訂單項目
func (s *OrderItemRepo) ListOrderItems(ctx context.Context, orderID uint) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}
