package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"gorm.io/gorm"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單，未指定狀態時為 new
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	if order.Status == "" {
		order.Status = model.OrderStatusNew
	}
	return s.db.WithContext(ctx).Omit("Items").Create(order).Error
}

// Read - 根據ID查詢訂單，不存在時回傳 nil, nil
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Read - 查詢訂單並帶出所有 order item
func (s *OrderRepo) GetOrderWithItems(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) ListOrdersByClientID(ctx context.Context, clientID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&orders).Error
	return orders, err
}

// Delete - 刪除訂單與其所有 order item
func (s *OrderRepo) DeleteOrder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteOrders(tx, []uint{id})
	})
}

func deleteOrders(tx *gorm.DB, orderIDs []uint) error {
	if len(orderIDs) == 0 {
		return nil
	}
	if err := tx.Where("order_id IN ?", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", orderIDs).Delete(&model.Order{}).Error
}
