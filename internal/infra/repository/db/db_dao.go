package db

import (
	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"gorm.io/gorm"
)

// DbDao 包裝 gorm 連線，可以是一般連線也可以是交易中的 tx
type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Client{},
		&model.Order{},
		&model.OrderItem{},
	)
}
