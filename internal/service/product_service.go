package service

import (
	"context"
	"strings"
	"time"

	"github.com/hopbarley/internal/cache"
	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cfg          config.CatalogConfig
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, cfg config.CatalogConfig) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo, cfg: cfg}
}

// ProductQuery 公开商品查询
type ProductQuery struct {
	Page         int
	PageSize     int
	Search       string
	CategorySlug string
	CategoryID   uint
}

// ProductDetail 商品详情与同类推荐
type ProductDetail struct {
	Product *models.Product  `json:"product"`
	Related []models.Product `json:"related"`
}

// HomeCatalog 首页数据
type HomeCatalog struct {
	Featured   []models.Product  `json:"featured"`
	Categories []models.Category `json:"categories"`
}

// PageSize 默认分页大小
func (s *ProductService) PageSize() int {
	if s.cfg.PageSize <= 0 {
		return constants.CatalogPageSizeDefault
	}
	return s.cfg.PageSize
}

// ListPublic 获取在售商品列表
func (s *ProductService) ListPublic(query ProductQuery) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		CategoryID:   query.CategoryID,
		CategorySlug: strings.TrimSpace(query.CategorySlug),
		Search:       strings.TrimSpace(query.Search),
		OnlyActive:   true,
		WithCategory: true,
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.PageSize()
	}
	return s.repo.List(filter)
}

// GetPublicBySlug 获取在售商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*ProductDetail, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	limit := s.cfg.RelatedLimit
	if limit <= 0 {
		limit = constants.CatalogRelatedLimit
	}
	related, err := s.repo.ListRelated(product.CategoryID, product.ID, limit)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: product, Related: related}, nil
}

// Home 首页推荐，Redis 可用时短时缓存
func (s *ProductService) Home(ctx context.Context) (*HomeCatalog, error) {
	var cached HomeCatalog
	if hit, err := cache.GetHomeCatalog(ctx, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		logger.Warnw("catalog_home_cache_read_failed", "error", err)
	}

	limit := s.cfg.FeaturedLimit
	if limit <= 0 {
		limit = constants.CatalogFeaturedLimit
	}
	featured, err := s.repo.ListFeatured(limit)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	home := &HomeCatalog{Featured: featured, Categories: categories}

	ttl := time.Duration(s.cfg.HomeCacheSeconds) * time.Second
	if err := cache.SetHomeCatalog(ctx, home, ttl); err != nil {
		logger.Warnw("catalog_home_cache_write_failed", "error", err)
	}
	return home, nil
}

// ListLowStock 低库存商品，threshold 不大于 0 时使用配置值
func (s *ProductService) ListLowStock(threshold int) ([]models.Product, error) {
	if threshold <= 0 {
		threshold = s.cfg.LowStockThreshold
	}
	if threshold <= 0 {
		threshold = constants.LowStockThresholdDefault
	}
	return s.repo.ListLowStock(threshold)
}
