package service

import (
	"errors"

	"github.com/hopbarley/internal/cart"
	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product"`
}

// CartView 购物车页数据
type CartView struct {
	Items      []CartItemDetail `json:"items"`
	ItemsCount int              `json:"items_count"`
	LineCount  int              `json:"line_count"`
	Total      models.Money     `json:"total"`
}

// CartActionResult 购物车操作结果，预期内的失败（库存不足、空车）以 Status 表达
type CartActionResult struct {
	Status      string
	MessageKey  string
	MessageArgs []interface{}
	ItemsCount  int
	Total       decimal.Decimal
	ItemTotal   *decimal.Decimal
}

// Succeeded 是否成功
func (r *CartActionResult) Succeeded() bool {
	return r != nil && r.Status == constants.CartResultSuccess
}

// CartService 会话购物车服务
type CartService struct {
	productRepo repository.ProductRepository
	sessionKey  string
	savedKey    string
}

// NewCartService 创建购物车服务
func NewCartService(productRepo repository.ProductRepository, cfg config.CartConfig) *CartService {
	sessionKey := cfg.SessionKey
	if sessionKey == "" {
		sessionKey = constants.SessionKeyCart
	}
	savedKey := constants.SessionKeyCartBeforeLogin
	if len(cfg.SavedKeys) > 0 && cfg.SavedKeys[0] != "" {
		savedKey = cfg.SavedKeys[0]
	}
	return &CartService{
		productRepo: productRepo,
		sessionKey:  sessionKey,
		savedKey:    savedKey,
	}
}

// SessionKey 匿名购物车会话键
func (s *CartService) SessionKey() string {
	return s.sessionKey
}

// SavedKey 登录前暂存键
func (s *CartService) SavedKey() string {
	return s.savedKey
}

// Open 打开当前身份的购物车
func (s *CartService) Open(storage cart.Storage, userID uint) (*cart.Cart, error) {
	return cart.Load(storage, cart.KeyFor(s.sessionKey, userID))
}

// Add 累加加入购物车
func (s *CartService) Add(c *cart.Cart, productID uint, quantity int) (*CartActionResult, error) {
	product, err := s.activeProduct(productID)
	if err != nil {
		return nil, err
	}
	if err := c.Add(product, quantity, false); err != nil {
		return s.stockResult(c, err)
	}
	return buildCartResult(c, constants.CartResultSuccess, "cart.added", product.Name), nil
}

// Update 覆盖数量，数量不大于 0 时移除
func (s *CartService) Update(c *cart.Cart, productID uint, quantity int) (*CartActionResult, error) {
	product, err := s.activeProduct(productID)
	if err != nil {
		return nil, err
	}
	if err := c.Update(product, quantity); err != nil {
		return s.stockResult(c, err)
	}

	var result *CartActionResult
	itemTotal := decimal.Zero
	if quantity <= 0 {
		result = buildCartResult(c, constants.CartResultSuccess, "cart.item_removed")
	} else {
		result = buildCartResult(c, constants.CartResultSuccess, "cart.updated")
		if line, ok := c.Line(product.ID); ok {
			itemTotal = line.Total()
		}
	}
	result.ItemTotal = &itemTotal
	return result, nil
}

// Remove 移除商品，购物车中没有该商品时同样成功
func (s *CartService) Remove(c *cart.Cart, productID uint) (*CartActionResult, error) {
	if productID == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := c.Remove(product.ID); err != nil {
		return nil, err
	}
	return buildCartResult(c, constants.CartResultSuccess, "cart.removed", product.Name), nil
}

// Clear 清空购物车
func (s *CartService) Clear(c *cart.Cart) (*CartActionResult, error) {
	if err := c.Clear(); err != nil {
		return nil, err
	}
	return buildCartResult(c, constants.CartResultSuccess, "cart.cleared"), nil
}

// View 关联实时商品的购物车视图
func (s *CartService) View(c *cart.Cart) (*CartView, error) {
	items, err := c.Items(s.productRepo)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for i := range items {
		item := items[i]
		details = append(details, CartItemDetail{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: models.NewMoneyFromDecimal(item.UnitPrice),
			LineTotal: models.NewMoneyFromDecimal(item.LineTotal),
			Product:   &item.Product,
		})
	}
	return &CartView{
		Items:      details,
		ItemsCount: c.Count(),
		LineCount:  c.LineCount(),
		Total:      models.NewMoneyFromDecimal(c.TotalPrice()),
	}, nil
}

// SaveBeforeLogin 把匿名购物车快照写到暂存键，登录后由合并流程取走
func (s *CartService) SaveBeforeLogin(storage cart.Storage, c *cart.Cart) (*CartActionResult, error) {
	if c.IsEmpty() {
		return buildCartResult(c, constants.CartResultEmpty, "cart.empty"), nil
	}
	if err := storage.Set(s.savedKey, c.Snapshot()); err != nil {
		return nil, err
	}
	return buildCartResult(c, constants.CartResultSuccess, "cart.saved", c.Count()), nil
}

func (s *CartService) activeProduct(productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	return product, nil
}

func (s *CartService) stockResult(c *cart.Cart, err error) (*CartActionResult, error) {
	var stockErr *cart.StockError
	if !errors.As(err, &stockErr) {
		return nil, err
	}
	if stockErr.Additive() {
		return buildCartResult(c, constants.CartResultError, "cart.stock_max_available", stockErr.Available), nil
	}
	return buildCartResult(c, constants.CartResultError, "cart.stock_available", stockErr.Available, stockErr.Requested), nil
}

func buildCartResult(c *cart.Cart, status, key string, args ...interface{}) *CartActionResult {
	return &CartActionResult{
		Status:      status,
		MessageKey:  key,
		MessageArgs: args,
		ItemsCount:  c.Count(),
		Total:       c.TotalPrice(),
	}
}
