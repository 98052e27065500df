package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *DbDao
}

func NewCategoryRepo(db *DbDao) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (s *CategoryRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CategoryRepo) GetCategoryByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryRepo) ListChildCategories(ctx context.Context, parentID uint) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("id").Find(&categories).Error
	return categories, err
}

// Delete - 刪除分類
// 子分類 (遞迴) 與其下所有商品一併刪除，商品刪除時 order item 的 product_id 設為 NULL
func (s *CategoryRepo) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryIDs, err := collectCategoryTree(tx, id)
		if err != nil {
			return err
		}

		var productIDs []uint
		if err := tx.Model(&model.Product{}).Where("category_id IN ?", categoryIDs).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if err := deleteProducts(tx, productIDs); err != nil {
			return err
		}
		return tx.Where("id IN ?", categoryIDs).Delete(&model.Category{}).Error
	})
}

// collectCategoryTree 以 BFS 收集 root 與所有子孫分類ID
func collectCategoryTree(tx *gorm.DB, root uint) ([]uint, error) {
	seen := map[uint]struct{}{root: {}}
	all := []uint{root}
	frontier := []uint{root}

	for len(frontier) > 0 {
		var children []uint
		if err := tx.Model(&model.Category{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			if _, ok := seen[child]; ok {
				return nil, fmt.Errorf("%w: category %d", ErrCategoryCycle, child)
			}
			seen[child] = struct{}{}
			all = append(all, child)
			frontier = append(frontier, child)
		}
	}
	return all, nil
}
