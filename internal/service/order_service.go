package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/hopbarley/internal/cache"
	"github.com/hopbarley/internal/cart"
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/queue"
	"github.com/hopbarley/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	queueClient    *queue.Client
	notifyOnPlaced bool
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, queueClient *queue.Client, notifyOnPlaced bool) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		queueClient:    queueClient,
		notifyOnPlaced: notifyOnPlaced,
	}
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	UserID uint
	Cart   *cart.Cart
	Form   CheckoutForm
	Locale string
}

// PlaceOrder 在单个事务内校验库存、写入订单与订单项并扣减库存；提交成功后才清空购物车
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderUserRequired
	}
	if input.Cart == nil || input.Cart.IsEmpty() {
		return nil, ErrCartEmpty
	}
	form := input.Form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	lines := input.Cart.Lines()
	productIDs := input.Cart.ProductIDs()
	now := time.Now()
	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        input.UserID,
		Status:        constants.OrderStatusPending,
		TotalPrice:    models.NewMoneyFromDecimal(input.Cart.TotalPrice()),
		FullName:      form.FullName,
		Email:         form.Email,
		Phone:         form.Phone,
		City:          form.City,
		Address:       form.Address,
		PostalCode:    form.PostalCode,
		PaymentMethod: form.PaymentMethod,
		IsPaid:        false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var items []models.OrderItem

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		products, err := productRepo.ListForUpdate(productIDs)
		if err != nil {
			return err
		}
		byID := make(map[uint]models.Product, len(products))
		for _, product := range products {
			byID[product.ID] = product
		}

		// 先整体校验，任何一行不满足都不做写入
		items = make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			product, ok := byID[line.ProductID]
			if !ok {
				return &ProductUnavailableError{ProductID: line.ProductID, ProductName: fmt.Sprintf("#%d", line.ProductID)}
			}
			if !product.IsActive {
				return &ProductUnavailableError{ProductID: product.ID, ProductName: product.Name}
			}
			if product.Stock < line.Quantity {
				return &cart.StockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     models.NewMoneyFromDecimal(line.UnitPrice),
				CreatedAt: now,
				Product:   product,
			})
		}

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		for i := range items {
			item := &items[i]
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &cart.StockError{
					ProductID:   item.ProductID,
					ProductName: item.Product.Name,
					Requested:   item.Quantity,
					Available:   item.Product.Stock,
				}
			}
			item.Product.Stock -= item.Quantity
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrProductUnavailable) {
			return nil, err
		}
		logger.Errorw("order_place_failed", "user_id", input.UserID, "order_no", order.OrderNo, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	order.Items = items

	if err := input.Cart.Clear(); err != nil {
		logger.Warnw("order_place_cart_clear_failed", "order_id", order.ID, "error", err)
	}
	if err := cache.InvalidateHomeCatalog(context.Background()); err != nil {
		logger.Warnw("catalog_home_cache_invalidate_failed", "order_id", order.ID, "error", err)
	}
	s.enqueuePlacedEmail(order, input.Locale)

	logger.Infow("order_placed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total", order.TotalPrice.String(),
		"items", len(items),
	)
	return order, nil
}

func (s *OrderService) enqueuePlacedEmail(order *models.Order, locale string) {
	if !s.notifyOnPlaced || s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	payload := queue.OrderPlacedEmailPayload{OrderID: order.ID, Locale: locale}
	if err := s.queueClient.EnqueueOrderPlacedEmail(payload); err != nil {
		logger.Warnw("order_placed_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
}

// GetOrderByUser 获取用户自己的订单
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrder 根据 ID 获取订单（后台任务使用）
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderUserRequired
	}
	filter.Status = strings.TrimSpace(strings.ToLower(filter.Status))
	return s.orderRepo.ListByUser(filter)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("HB%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
