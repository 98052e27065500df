package db

import "errors"

var (
	// ErrDuplicateOrderLine 同一訂單同一商品出現多筆 order item，屬於資料完整性錯誤
	ErrDuplicateOrderLine = errors.New("duplicate order line for order and product")
	// ErrTxRetryExhausted 交易因序列化衝突重試次數用盡
	ErrTxRetryExhausted = errors.New("transaction retry exhausted")
	ErrCategoryCycle    = errors.New("category tree contains a cycle")
)
