package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// UnitOfWork 在單一交易中執行 fn
// fn 回傳 nil 時 commit，回傳錯誤或 panic 時整筆 rollback
// 遇到序列化衝突時 fn 可能被重新執行，fn 內不可保留上一輪的狀態
type UnitOfWork interface {
	Do(ctx context.Context, fn func(store Store) error) error
}

type GormUnitOfWork struct {
	db           *gorm.DB
	maxRetries   int
	retryBackoff time.Duration
}

type UnitOfWorkOption func(*GormUnitOfWork)

func WithMaxRetries(n int) UnitOfWorkOption {
	return func(u *GormUnitOfWork) {
		if n >= 0 {
			u.maxRetries = n
		}
	}
}

func WithRetryBackoff(d time.Duration) UnitOfWorkOption {
	return func(u *GormUnitOfWork) {
		u.retryBackoff = d
	}
}

func NewUnitOfWork(db *gorm.DB, opts ...UnitOfWorkOption) *GormUnitOfWork {
	if db == nil {
		panic("unit of work dependency db is nil")
	}
	u := &GormUnitOfWork{
		db:           db,
		maxRetries:   3,
		retryBackoff: 20 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(store Store) error) error {
	var err error
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		if attempt > 0 {
			// 線性退避
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(u.retryBackoff * time.Duration(attempt)):
			}
		}

		err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewUnifiedDB(tx))
		})
		if err == nil || !IsRetryableTxError(err) {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrTxRetryExhausted, u.maxRetries+1, err)
}

// IsRetryableTxError 判斷是否為可重試的 postgres 交易錯誤 (序列化失敗、死鎖)
func IsRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}

var _ UnitOfWork = (*GormUnitOfWork)(nil)
