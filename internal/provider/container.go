package provider

import (
	"strings"

	"github.com/hopbarley/internal/cache"
	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/constants"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/queue"
	"github.com/hopbarley/internal/repository"
	"github.com/hopbarley/internal/service"
	"github.com/hopbarley/internal/session"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config         *config.Config
	QueueClient    *queue.Client
	SessionManager *session.Manager

	// Repositories
	UserRepo     repository.UserRepository
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository

	// Services
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	ProductService      *service.ProductService
	CategoryService     *service.CategoryService
	CartService         *service.CartService
	CartTransferService *service.CartTransferService
	OrderService        *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	return Build(cfg, models.DB, queueClient, newSessionStore(cfg.Session))
}

// Build 使用给定的数据库与会话存储组装容器
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client, store session.Store) *Container {
	c := &Container{
		Config:         cfg,
		QueueClient:    queueClient,
		SessionManager: session.NewManager(store, cfg.Session.TTL()),
	}
	c.initRepositories(db)
	c.initServices()
	return c
}

// newSessionStore 配置为 redis 且 Redis 可用时使用 Redis，否则退回进程内存储
func newSessionStore(cfg config.SessionConfig) session.Store {
	if strings.EqualFold(strings.TrimSpace(cfg.Store), constants.SessionStoreMemory) {
		return session.NewMemoryStore()
	}
	if client := cache.Client(); client != nil {
		return session.NewRedisStore(client, cache.Key("session"))
	}
	logger.Warnw("provider_session_store_fallback_memory", "store", cfg.Store)
	return session.NewMemoryStore()
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.Config.Catalog)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.ProductRepo, c.Config.Cart)
	c.CartTransferService = service.NewCartTransferService(c.ProductRepo, c.CartService, c.Config.Cart)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.QueueClient, c.Config.Order.NotifyOnPlaced)
}
