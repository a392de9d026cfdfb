package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/hopbarley/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: slug, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestProduct(t *testing.T, repo *GormProductRepository, categoryID uint, name string, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Slug:        "product-" + name,
		Description: name + " description",
		Price:       models.MustMoney("100"),
		Stock:       stock,
		IsActive:    true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		// gorm 对 bool 零值使用默认值，单独更新
		if err := repo.db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
		product.IsActive = false
	}
	return product
}

func TestProductListFiltersAndPagination(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	hops := createTestCategory(t, db, "hops")
	malt := createTestCategory(t, db, "malt")

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"cascade", "citra", "mosaic"} {
		product := createTestProduct(t, repo, hops.ID, name, 10, true)
		db.Model(product).UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute))
	}
	createTestProduct(t, repo, malt.ID, "pilsner", 10, true)
	createTestProduct(t, repo, hops.ID, "saaz", 10, false)

	rows, total, err := repo.List(ProductListFilter{CategorySlug: "hops", OnlyActive: true, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(rows) != 2 {
		t.Fatalf("page rows want 2 got %d", len(rows))
	}
	if rows[0].Name != "mosaic" {
		t.Fatalf("newest first want mosaic got %s", rows[0].Name)
	}

	rows, total, err = repo.List(ProductListFilter{Search: "CIT", OnlyActive: true})
	if err != nil {
		t.Fatalf("search products failed: %v", err)
	}
	if total != 1 || rows[0].Name != "citra" {
		t.Fatalf("search want citra got total=%d rows=%v", total, rows)
	}

	_, total, err = repo.List(ProductListFilter{CategoryID: malt.ID})
	if err != nil {
		t.Fatalf("list by category id failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("malt total want 1 got %d", total)
	}
}

func TestProductGetBySlugAndRelated(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	hops := createTestCategory(t, db, "hops")
	main := createTestProduct(t, repo, hops.ID, "cascade", 10, true)
	createTestProduct(t, repo, hops.ID, "citra", 10, true)
	createTestProduct(t, repo, hops.ID, "hidden", 10, false)

	got, err := repo.GetBySlug("product-cascade", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got == nil || got.Category.Slug != "hops" {
		t.Fatalf("product with category expected, got %+v", got)
	}
	missing, err := repo.GetBySlug("product-hidden", true)
	if err != nil {
		t.Fatalf("get inactive by slug failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("inactive product should be hidden")
	}

	related, err := repo.ListRelated(hops.ID, main.ID, 4)
	if err != nil {
		t.Fatalf("list related failed: %v", err)
	}
	if len(related) != 1 || related[0].Name != "citra" {
		t.Fatalf("related want [citra] got %v", related)
	}
}

func TestProductDecrementStockIsConditional(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, repo, 1, "pilsner", 3, true)

	affected, err := repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}
	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("second decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("oversell should affect 0 rows, got %d", affected)
	}

	reloaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("stock want 1 got %d", reloaded.Stock)
	}
}

func TestProductListLowStockAndForUpdate(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	low := createTestProduct(t, repo, 1, "kit", 2, true)
	createTestProduct(t, repo, 1, "malt", 50, true)
	createTestProduct(t, repo, 1, "retired", 0, false)

	rows, err := repo.ListLowStock(5)
	if err != nil {
		t.Fatalf("list low stock failed: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != low.ID {
		t.Fatalf("low stock want [kit] got %v", rows)
	}

	locked, err := repo.ListForUpdate([]uint{low.ID, 999})
	if err != nil {
		t.Fatalf("list for update failed: %v", err)
	}
	if len(locked) != 1 {
		t.Fatalf("locked rows want 1 got %d", len(locked))
	}
}
