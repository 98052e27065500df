package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"github.com/RoyceAzure/lab/orderline/internal/domain/model/event"
	"github.com/RoyceAzure/lab/orderline/internal/infra/repository/db"
	"github.com/rs/zerolog"
)

type IOrderItemService interface {
	AddItem(ctx context.Context, orderID, productID uint, quantity int) (AddItemResult, error)
}

// StockCache commit 後的庫存投影
type StockCache interface {
	SetProductStock(ctx context.Context, productID uint, stock int) error
}

type EventPublisher interface {
	PublishOrderItemAdded(ctx context.Context, evt *event.OrderItemAddedEvent) error
}

type OrderItemService struct {
	uow        db.UnitOfWork
	logger     *zerolog.Logger
	stockCache StockCache
	publisher  EventPublisher
}

type OrderItemServiceOption func(*OrderItemService)

func WithStockCache(cache StockCache) OrderItemServiceOption {
	return func(s *OrderItemService) {
		s.stockCache = cache
	}
}

func WithEventPublisher(publisher EventPublisher) OrderItemServiceOption {
	return func(s *OrderItemService) {
		s.publisher = publisher
	}
}

func NewOrderItemService(uow db.UnitOfWork, logger *zerolog.Logger, opts ...OrderItemServiceOption) *OrderItemService {
	if uow == nil {
		panic("order item service dependency unit of work is nil")
	}
	if logger == nil {
		panic("order item service dependency logger is nil")
	}
	s := &OrderItemService{uow: uow, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem 將商品加入訂單並扣除庫存，整個流程在同一個 unit of work 內
//
// 同訂單同商品已存在時累加數量，單價維持第一次加入時的價格
// 返回值:
//   - AddItemResult: 成功或 預期內的拒絕 (訂單不存在/商品不存在/庫存不足)
//   - error: ErrInvalidQuantity、資料完整性錯誤 (db.ErrDuplicateOrderLine) 或基礎設施錯誤
func (s *OrderItemService) AddItem(ctx context.Context, orderID, productID uint, quantity int) (AddItemResult, error) {
	if quantity < 1 {
		return AddItemResult{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	log := s.logger.With().
		Uint("order_id", orderID).
		Uint("product_id", productID).
		Int("quantity", quantity).
		Logger()

	var (
		item           *model.OrderItem
		remainingStock int
	)
	err := s.uow.Do(ctx, func(store db.Store) error {
		// 重試時重新計算
		item = nil

		order, err := store.GetOrderByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order == nil {
			return &rejection{outcome: OutcomeOrderNotFound}
		}

		// 鎖定商品列，同商品的併發請求在此排隊
		product, err := store.GetProductByIDForUpdate(ctx, productID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product == nil {
			return &rejection{outcome: OutcomeProductNotFound}
		}
		if !product.HasStock(quantity) {
			return &rejection{outcome: OutcomeInsufficientStock}
		}

		line, err := store.FindLine(ctx, orderID, productID)
		if err != nil {
			return fmt.Errorf("find order line: %w", err)
		}
		if line != nil {
			line.Quantity += quantity
			if err := store.SaveOrderItem(ctx, line); err != nil {
				return fmt.Errorf("save order item: %w", err)
			}
		} else {
			pid := product.ID
			line = &model.OrderItem{
				OrderID:   orderID,
				ProductID: &pid,
				Quantity:  quantity,
				Price:     product.Price,
			}
			if err := store.CreateOrderItem(ctx, line); err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}

		deducted, err := store.DeductProductStock(ctx, productID, quantity)
		if err != nil {
			return fmt.Errorf("deduct product stock: %w", err)
		}
		if !deducted {
			return &rejection{outcome: OutcomeInsufficientStock}
		}

		item = line
		remainingStock = product.Quantity - quantity
		return nil
	})

	if err != nil {
		var rej *rejection
		if errors.As(err, &rej) {
			log.Info().Str("outcome", rej.outcome.String()).Msg("add item rejected")
			return AddItemResult{Outcome: rej.outcome}, nil
		}
		if errors.Is(err, db.ErrDuplicateOrderLine) {
			log.Error().Err(err).Msg("order line invariant violated")
		} else {
			log.Error().Err(err).Msg("add item failed")
		}
		return AddItemResult{}, fmt.Errorf("add item to order %d: %w", orderID, err)
	}

	log.Info().
		Uint("order_item_id", item.ID).
		Int("line_quantity", item.Quantity).
		Int("remaining_stock", remainingStock).
		Str("outcome", OutcomeAdded.String()).
		Msg("item added to order")

	s.afterCommit(ctx, &log, item, productID, quantity, remainingStock)

	return AddItemResult{Outcome: OutcomeAdded, Item: item}, nil
}

// afterCommit 交易已 commit，快取與事件失敗只記錄 log 不影響結果
func (s *OrderItemService) afterCommit(ctx context.Context, log *zerolog.Logger, item *model.OrderItem, productID uint, added, remainingStock int) {
	if s.stockCache != nil {
		if err := s.stockCache.SetProductStock(ctx, productID, remainingStock); err != nil {
			log.Warn().Err(err).Msg("refresh product stock cache failed")
		}
	}

	if s.publisher != nil {
		evt := event.NewOrderItemAddedEvent(item.ID, item.OrderID, productID, added, item.Quantity, item.Price, remainingStock)
		if err := s.publisher.PublishOrderItemAdded(ctx, evt); err != nil {
			log.Warn().Err(err).Msg("publish order item added event failed")
		}
	}
}

var _ IOrderItemService = (*OrderItemService)(nil)
