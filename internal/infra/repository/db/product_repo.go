package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// 不存在時回傳 nil, nil
func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	return s.getProduct(s.db.WithContext(ctx), id)
}

// GetProductByIDForUpdate 以 SELECT ... FOR UPDATE 鎖定商品列
// 需在交易中呼叫，鎖會持有到交易結束
func (s *ProductRepo) GetProductByIDForUpdate(ctx context.Context, id uint) (*model.Product, error) {
	return s.getProduct(s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (s *ProductRepo) getProduct(tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	err := tx.First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) ListProductsByCategoryID(ctx context.Context, categoryID uint) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id").Find(&products).Error
	return products, err
}

// Update - 更新商品
func (s *ProductRepo) SaveProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// DeductProductStock 條件式扣庫存，只有 quantity >= 扣除量時才會更新
// 回傳 false 表示庫存不足或商品不存在
func (s *ProductRepo) DeductProductStock(ctx context.Context, id uint, quantity int) (bool, error) {
	result := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete - 刪除商品
// order item 對商品為弱參照，先將 product_id 設為 NULL
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProducts(tx, []uint{id})
	})
}

func deleteProducts(tx *gorm.DB, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	if err := tx.Model(&model.OrderItem{}).
		Where("product_id IN ?", productIDs).
		Update("product_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", productIDs).Delete(&model.Product{}).Error
}
