package cart

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity   = errors.New("cart quantity must be positive")
	ErrInvalidProduct    = errors.New("cart product is invalid")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockError 库存不足，Existing 为购物车中已有数量（覆盖写入时为 0）
type StockError struct {
	ProductID   uint
	ProductName string
	Requested   int
	Existing    int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, in cart %d, available %d",
		e.ProductID, e.Requested, e.Existing, e.Available)
}

// Is 匹配 ErrInsufficientStock
func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Additive 是否因为累加已有数量而超出
func (e *StockError) Additive() bool {
	return e.Existing > 0
}
