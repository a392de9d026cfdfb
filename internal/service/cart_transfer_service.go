package service

import (
	"context"

	"github.com/hopbarley/internal/cart"
	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/repository"
)

// TransferSession 合并流程需要的会话能力
type TransferSession interface {
	cart.Storage
	Has(key string) bool
	Take(ctx context.Context, key string, dest interface{}) (bool, error)
}

// CartTransferResult 合并结果
type CartTransferResult struct {
	Source  string `json:"source"`
	Merged  int    `json:"merged"`
	Capped  int    `json:"capped"`
	Skipped int    `json:"skipped"`
}

// Transferred 是否取到了暂存购物车
func (r *CartTransferResult) Transferred() bool {
	return r != nil && r.Source != ""
}

// CartTransferService 登录后把暂存的匿名购物车合并进用户购物车
type CartTransferService struct {
	productRepo repository.ProductRepository
	cartService *CartService
	savedKeys   []string
}

// NewCartTransferService 创建购物车合并服务
func NewCartTransferService(productRepo repository.ProductRepository, cartService *CartService, cfg config.CartConfig) *CartTransferService {
	keys := cfg.SavedKeys
	if len(keys) == 0 {
		keys = constants.SavedCartKeys
	}
	return &CartTransferService{
		productRepo: productRepo,
		cartService: cartService,
		savedKeys:   keys,
	}
}

// Transfer 依次尝试暂存键，取到第一个即停止；商品解析成功后才从存储层原子取走暂存数据，合并失败时写回
func (s *CartTransferService) Transfer(ctx context.Context, sess TransferSession, userID uint) (*CartTransferResult, error) {
	result := &CartTransferResult{}
	if sess == nil || userID == 0 {
		return result, nil
	}

	key, peeked, err := s.peekSaved(sess, userID)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return result, nil
	}

	products, err := s.resolveProducts(peeked, nil)
	if err != nil {
		return nil, err
	}
	userCart, err := s.cartService.Open(sess, userID)
	if err != nil {
		return nil, err
	}

	var snapshot cart.Snapshot
	found, err := sess.Take(ctx, key, &snapshot)
	if err != nil {
		if found {
			s.restoreSaved(sess, userID, key, peeked)
		}
		return nil, err
	}
	if !found || len(snapshot) == 0 {
		// 已被并发请求取走
		return result, nil
	}
	result.Source = key

	// 取走的数据可能比预读时多出商品
	products, err = s.resolveProducts(snapshot, products)
	if err != nil {
		s.restoreSaved(sess, userID, key, snapshot)
		return nil, err
	}

	before := userCart.Snapshot()
	for _, line := range snapshot.Lines() {
		product, ok := products[line.ProductID]
		if !ok || !product.IsActive {
			result.Skipped++
			logger.Warnw("cart_transfer_skip_product",
				"user_id", userID,
				"product_id", line.ProductID,
				"reason", "unavailable",
			)
			continue
		}

		quantity := line.Quantity
		existing := 0
		if current, ok := userCart.Line(product.ID); ok {
			existing = current.Quantity
		}
		if existing+quantity > product.Stock {
			quantity = product.Stock - existing
			result.Capped++
			logger.Warnw("cart_transfer_capped",
				"user_id", userID,
				"product_id", product.ID,
				"requested", line.Quantity,
				"existing", existing,
				"stock", product.Stock,
			)
		}
		if quantity <= 0 {
			continue
		}
		if err := userCart.Add(product, quantity, false); err != nil {
			if restoreErr := userCart.Restore(before); restoreErr != nil {
				logger.Warnw("cart_transfer_rollback_failed", "user_id", userID, "error", restoreErr)
			}
			s.restoreSaved(sess, userID, key, snapshot)
			return nil, err
		}
		result.Merged++
	}

	// 快照来自当前匿名购物车时，匿名购物车已并入用户购物车
	if key == s.cartService.SavedKey() {
		sess.Delete(s.cartService.SessionKey())
	}

	logger.Infow("cart_transfer_done",
		"user_id", userID,
		"source", result.Source,
		"merged", result.Merged,
		"capped", result.Capped,
		"skipped", result.Skipped,
		"items_count", userCart.Count(),
	)
	return result, nil
}

// peekSaved 只读取第一个非空的暂存快照，无法解析或为空的暂存键直接删除
func (s *CartTransferService) peekSaved(sess TransferSession, userID uint) (string, cart.Snapshot, error) {
	for _, key := range s.savedKeys {
		if !sess.Has(key) {
			continue
		}
		var candidate cart.Snapshot
		found, err := sess.Get(key, &candidate)
		if err != nil {
			if !found {
				return "", nil, err
			}
			logger.Warnw("cart_transfer_decode_failed", "user_id", userID, "key", key, "error", err)
			sess.Delete(key)
			continue
		}
		if !found {
			continue
		}
		if len(candidate) == 0 {
			sess.Delete(key)
			continue
		}
		return key, candidate, nil
	}
	return "", nil, nil
}

// resolveProducts 批量加载快照中尚未解析的商品
func (s *CartTransferService) resolveProducts(snapshot cart.Snapshot, known map[uint]*models.Product) (map[uint]*models.Product, error) {
	if known == nil {
		known = make(map[uint]*models.Product)
	}
	missing := make([]uint, 0)
	for _, line := range snapshot.Lines() {
		if _, ok := known[line.ProductID]; !ok {
			missing = append(missing, line.ProductID)
		}
	}
	if len(missing) == 0 {
		return known, nil
	}
	products, err := s.productRepo.ListByIDs(missing)
	if err != nil {
		return nil, err
	}
	for i := range products {
		product := products[i]
		known[product.ID] = &product
	}
	return known, nil
}

// restoreSaved 合并失败时写回暂存快照，随会话提交恢复
func (s *CartTransferService) restoreSaved(sess TransferSession, userID uint, key string, snapshot cart.Snapshot) {
	if err := sess.Set(key, snapshot); err != nil {
		logger.Warnw("cart_transfer_restore_failed", "user_id", userID, "key", key, "error", err)
	}
}
