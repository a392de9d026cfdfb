package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hopbarley/internal/cart"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductInactive    = errors.New("product is inactive")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrOrderUserRequired  = errors.New("order requires an authenticated user")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrOrderCreateFailed  = errors.New("order create failed")
	ErrValidation         = errors.New("validation failed")
	ErrInsufficientStock  = cart.ErrInsufficientStock
	ErrInvalidQuantity    = cart.ErrInvalidQuantity

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrUsernameExists     = errors.New("username already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidPassword    = errors.New("old password is invalid")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// FieldError 单个字段的校验失败，Param 为规则参数（如 max 的上限）
type FieldError struct {
	Key   string `json:"key"`
	Param string `json:"param,omitempty"`
}

// ValidationError 字段级校验错误，键为 JSON 字段名
type ValidationError struct {
	Fields map[string]FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %v", names)
}

// Is 匹配 ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ProductUnavailableError 下单时商品已删除或下架
type ProductUnavailableError struct {
	ProductID   uint
	ProductName string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d unavailable", e.ProductID)
}

// Is 匹配 ErrProductUnavailable
func (e *ProductUnavailableError) Is(target error) bool {
	return target == ErrProductUnavailable
}
