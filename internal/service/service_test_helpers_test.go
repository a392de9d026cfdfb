package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/repository"
	"github.com/hopbarley/internal/session"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db           *gorm.DB
	productRepo  *repository.GormProductRepository
	categoryRepo *repository.GormCategoryRepository
	orderRepo    *repository.GormOrderRepository
	userRepo     *repository.GormUserRepository
	cartService  *CartService
	category     *models.Category
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}

	f := &serviceFixture{
		db:           db,
		productRepo:  repository.NewProductRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
		userRepo:     repository.NewUserRepository(db),
	}
	f.cartService = NewCartService(f.productRepo, config.CartConfig{
		SessionKey: "cart",
		SavedKeys:  []string{"cart_before_login", "saved_cart", "cart_backup"},
	})
	f.category = &models.Category{Name: "Солод", Slug: "malt"}
	if err := f.categoryRepo.Create(f.category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return f
}

func (f *serviceFixture) product(t *testing.T, name, price string, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  f.category.ID,
		Name:        name,
		Slug:        "product-" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Description: name,
		Price:       models.MustMoney(price),
		Stock:       stock,
		IsActive:    true,
	}
	if err := f.productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		if err := f.db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
		product.IsActive = false
	}
	return product
}

func (f *serviceFixture) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	product, err := f.productRepo.GetByID(productID)
	if err != nil || product == nil {
		t.Fatalf("reload product %d failed: %v", productID, err)
	}
	return product.Stock
}

// newTestSession 创建未持久化的新会话
func newTestSession(t *testing.T) (*session.Manager, *session.Session) {
	t.Helper()
	manager := session.NewManager(session.NewMemoryStore(), 0)
	sess, err := manager.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("open session failed: %v", err)
	}
	return manager, sess
}
