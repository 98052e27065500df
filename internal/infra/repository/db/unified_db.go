package db

import (
	"context"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"gorm.io/gorm"
)

// Store 統一的資料庫介面，交易內外都使用同一組操作
type Store interface {
	GetDB() *gorm.DB

	IOrderRepository
	IProductRepository
	IOrderItemRepository
	IClientRepository
	ICategoryRepository
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrderWithItems(ctx context.Context, id uint) (*model.Order, error)
	ListOrdersByClientID(ctx context.Context, clientID uint) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	GetProductByIDForUpdate(ctx context.Context, id uint) (*model.Product, error)
	ListProductsByCategoryID(ctx context.Context, categoryID uint) ([]model.Product, error)
	SaveProduct(ctx context.Context, product *model.Product) error
	DeductProductStock(ctx context.Context, id uint, quantity int) (bool, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// IOrderItemRepository OrderItem 相關操作介面
type IOrderItemRepository interface {
	FindLine(ctx context.Context, orderID, productID uint) (*model.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *model.OrderItem) error
	SaveOrderItem(ctx context.Context, item *model.OrderItem) error
	ListOrderItems(ctx context.Context, orderID uint) ([]model.OrderItem, error)
}

// IClientRepository Client 相關操作介面
type IClientRepository interface {
	CreateClient(ctx context.Context, client *model.Client) error
	GetClientByID(ctx context.Context, id uint) (*model.Client, error)
	DeleteClient(ctx context.Context, id uint) error
}

// ICategoryRepository Category 相關操作介面
type ICategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategoryByID(ctx context.Context, id uint) (*model.Category, error)
	ListChildCategories(ctx context.Context, parentID uint) ([]model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	dbDao *DbDao
	*OrderRepo
	*ProductRepo
	*OrderItemRepo
	*ClientRepo
	*CategoryRepo
}

// NewUnifiedDB 創建新的統一資料庫實例，db 可以是交易中的 tx
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		dbDao:         dbDao,
		OrderRepo:     NewOrderRepo(dbDao),
		ProductRepo:   NewProductRepo(dbDao),
		OrderItemRepo: NewOrderItemRepo(dbDao),
		ClientRepo:    NewClientRepo(dbDao),
		CategoryRepo:  NewCategoryRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.dbDao.DB
}

var (
	_ Store                = (*UnifiedDBImpl)(nil)
	_ IOrderRepository     = (*OrderRepo)(nil)
	_ IProductRepository   = (*ProductRepo)(nil)
	_ IOrderItemRepository = (*OrderItemRepo)(nil)
	_ IClientRepository    = (*ClientRepo)(nil)
	_ ICategoryRepository  = (*CategoryRepo)(nil)
)
