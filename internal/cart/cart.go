package cart

import (
	"fmt"

	"github.com/hopbarley/internal/models"

	"github.com/shopspring/decimal"
)

// Storage 会话键值存储
type Storage interface {
	Get(key string, dest interface{}) (bool, error)
	Set(key string, value interface{}) error
	Delete(key string)
}

// Catalog 将商品 ID 解析为实时商品
type Catalog interface {
	ListByIDs(ids []uint) ([]models.Product, error)
}

// Line 购物车行
type Line struct {
	ProductID uint
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total 行小计
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Item 解析后的购物车条目
type Item struct {
	Product   models.Product
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Cart 绑定到某个会话键的购物车
type Cart struct {
	storage Storage
	key     string
	lines   map[uint]Line
}

// KeyFor 匿名用户使用基础键，登录用户按用户隔离
func KeyFor(base string, userID uint) string {
	if userID == 0 {
		return base
	}
	return fmt.Sprintf("%s:user:%d", base, userID)
}

// Load 从会话读取购物车
func Load(storage Storage, key string) (*Cart, error) {
	var snapshot Snapshot
	if _, err := storage.Get(key, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", key, err)
	}
	return &Cart{storage: storage, key: key, lines: decodeSnapshot(snapshot)}, nil
}

// Key 会话键
func (c *Cart) Key() string {
	return c.key
}

// Add 加入商品。override 为 true 时直接设置数量，否则在已有数量上累加；新行记录当前单价
func (c *Cart) Add(product *models.Product, quantity int, override bool) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if product == nil || product.ID == 0 {
		return ErrInvalidProduct
	}
	if quantity > product.Stock {
		return &StockError{ProductID: product.ID, ProductName: product.Name, Requested: quantity, Available: product.Stock}
	}

	line, exists := c.lines[product.ID]
	target := quantity
	if exists && !override {
		target = line.Quantity + quantity
		if target > product.Stock {
			return &StockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   quantity,
				Existing:    line.Quantity,
				Available:   product.Stock,
			}
		}
	}
	if !exists {
		line = Line{ProductID: product.ID, UnitPrice: product.Price.Decimal}
	}
	line.Quantity = target
	c.lines[product.ID] = line
	return c.save()
}

// Remove 删除商品行，不存在时不做任何事
func (c *Cart) Remove(productID uint) error {
	if _, ok := c.lines[productID]; !ok {
		return nil
	}
	delete(c.lines, productID)
	return c.save()
}

// Update 数量不大于 0 时移除，否则覆盖写入
func (c *Cart) Update(product *models.Product, quantity int) error {
	if quantity <= 0 {
		if product == nil {
			return ErrInvalidProduct
		}
		return c.Remove(product.ID)
	}
	return c.Add(product, quantity, true)
}

// Line 读取单行
func (c *Cart) Line(productID uint) (Line, bool) {
	line, ok := c.lines[productID]
	return line, ok
}

// Lines 按商品 ID 升序返回所有行
func (c *Cart) Lines() []Line {
	return sortedLines(c.lines)
}

// ProductIDs 购物车中的商品 ID（升序）
func (c *Cart) ProductIDs() []uint {
	lines := c.Lines()
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

// Items 关联实时商品，已删除或下架的商品被跳过
func (c *Cart) Items(catalog Catalog) ([]Item, error) {
	if len(c.lines) == 0 {
		return []Item{}, nil
	}
	products, err := catalog.ListByIDs(c.ProductIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	items := make([]Item, 0, len(products))
	for _, line := range c.Lines() {
		product, ok := byID[line.ProductID]
		if !ok || !product.IsActive {
			continue
		}
		items = append(items, Item{
			Product:   product,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.Total(),
		})
	}
	return items, nil
}

// TotalPrice 按快照单价求和
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Count 商品件数
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// LineCount 不同商品的行数
func (c *Cart) LineCount() int {
	return len(c.lines)
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear 清空购物车
func (c *Cart) Clear() error {
	c.lines = make(map[uint]Line)
	return c.save()
}

// Snapshot 纯数据深拷贝，可保存到其他会话键
func (c *Cart) Snapshot() Snapshot {
	return encodeLines(c.lines)
}

// Restore 用快照替换当前内容
func (c *Cart) Restore(snapshot Snapshot) error {
	c.lines = decodeSnapshot(snapshot)
	return c.save()
}

func (c *Cart) save() error {
	if len(c.lines) == 0 {
		c.storage.Delete(c.key)
		return nil
	}
	return c.storage.Set(c.key, encodeLines(c.lines))
}
