package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"gorm.io/gorm"
)

type ClientRepo struct {
	db *DbDao
}

func NewClientRepo(db *DbDao) *ClientRepo {
	return &ClientRepo{db: db}
}

func (s *ClientRepo) CreateClient(ctx context.Context, client *model.Client) error {
	return s.db.WithContext(ctx).Create(client).Error
}

func (s *ClientRepo) GetClientByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	err := s.db.WithContext(ctx).First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

// Delete - 刪除客戶，連同其訂單與訂單項目
func (s *ClientRepo) DeleteClient(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&model.Order{}).Where("client_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if err := deleteOrders(tx, orderIDs); err != nil {
			return err
		}
		return tx.Delete(&model.Client{}, id).Error
	})
}
