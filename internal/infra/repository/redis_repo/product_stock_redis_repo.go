package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// IProductStockRedisRepository 定義 Redis 商品庫存快取的介面
type IProductStockRedisRepository interface {
	// SetProductStock 寫入 db commit 後的庫存
	SetProductStock(ctx context.Context, productID uint, stock int) error

	// GetProductStock 取得快取中的庫存數量
	GetProductStock(ctx context.Context, productID uint) (int, error)

	// DeleteProductStock 刪除商品庫存快取
	DeleteProductStock(ctx context.Context, productID uint) error
}

var (
	ErrProductStockNotCached = errors.New("product stock not cached")
)

/*
	redis 只存 db 已 commit 的庫存投影，db 為唯一真相來源
	結構:
	product:{id}:stock {
		stock: 100,
	}
*/
type ProductStockRedisRepo struct {
	productCache *redis.Client
}

func NewProductStockRedisRepo(productCache *redis.Client) *ProductStockRedisRepo {
	if productCache == nil {
		panic("product stock redis repo dependency redis client is nil")
	}
	return &ProductStockRedisRepo{productCache: productCache}
}

func generateProductStockKey(productID uint) string {
	return fmt.Sprintf("product:%d:stock", productID)
}

func (s *ProductStockRedisRepo) SetProductStock(ctx context.Context, productID uint, stock int) error {
	return s.productCache.HSet(ctx, generateProductStockKey(productID), "stock", stock).Err()
}

// 取得 庫存商品數量
// 錯誤:
//   - ErrProductStockNotCached: 快取不存在
//   - err: 其他錯誤
func (s *ProductStockRedisRepo) GetProductStock(ctx context.Context, productID uint) (int, error) {
	stock, err := s.productCache.HGet(ctx, generateProductStockKey(productID), "stock").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, fmt.Errorf("%w: product %d", ErrProductStockNotCached, productID)
		}
		return 0, err
	}

	stockInt, err := strconv.Atoi(stock)
	if err != nil {
		return 0, fmt.Errorf("parse cached stock for product %d: %w", productID, err)
	}
	return stockInt, nil
}

func (s *ProductStockRedisRepo) DeleteProductStock(ctx context.Context, productID uint) error {
	return s.productCache.Del(ctx, generateProductStockKey(productID)).Err()
}

// 確保 ProductStockRedisRepo 實現了 IProductStockRedisRepository 介面
var _ IProductStockRedisRepository = (*ProductStockRedisRepo)(nil)
