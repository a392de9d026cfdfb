package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/models"
)

func newTestProductService(f *serviceFixture) *ProductService {
	return NewProductService(f.productRepo, f.categoryRepo, config.CatalogConfig{
		PageSize:          2,
		FeaturedLimit:     2,
		RelatedLimit:      4,
		LowStockThreshold: 3,
	})
}

func TestProductServiceListPublic(t *testing.T) {
	f := newServiceFixture(t)
	svc := newTestProductService(f)
	f.product(t, "Citra Hops", "420.00", 10, true)
	f.product(t, "Mosaic Hops", "400.00", 10, true)
	f.product(t, "Saaz Hops", "380.00", 10, true)
	f.product(t, "Hidden Hops", "380.00", 10, false)

	products, total, err := svc.ListPublic(ProductQuery{Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(products) != 2 {
		t.Fatalf("want total 3 page 2 got total=%d len=%d", total, len(products))
	}

	found, total, err := svc.ListPublic(ProductQuery{Page: 1, Search: "saaz"})
	if err != nil || total != 1 || found[0].Name != "Saaz Hops" {
		t.Fatalf("search want Saaz Hops got total=%d err=%v", total, err)
	}
	if _, total, _ := svc.ListPublic(ProductQuery{Page: 1, CategorySlug: "malt"}); total != 3 {
		t.Fatalf("category filter want 3 got %d", total)
	}
}

func TestProductServiceDetailAndRelated(t *testing.T) {
	f := newServiceFixture(t)
	svc := newTestProductService(f)
	vienna := f.product(t, "Vienna Malt", "400.00", 10, true)
	f.product(t, "Munich Malt", "410.00", 10, true)
	f.product(t, "Old Malt", "410.00", 10, false)

	other := &models.Category{Name: "Yeast", Slug: "yeast"}
	if err := f.categoryRepo.Create(other); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	yeast := &models.Product{CategoryID: other.ID, Name: "US-05", Slug: "us-05", Price: models.MustMoney("250.00"), Stock: 5, IsActive: true}
	if err := f.productRepo.Create(yeast); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	detail, err := svc.GetPublicBySlug(vienna.Slug)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Product.ID != vienna.ID {
		t.Fatalf("detail want %d got %d", vienna.ID, detail.Product.ID)
	}
	if len(detail.Related) != 1 || detail.Related[0].Name != "Munich Malt" {
		t.Fatalf("related should hold same-category active products only: %+v", detail.Related)
	}

	if _, err := svc.GetPublicBySlug("product-old-malt"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive slug want ErrProductNotFound got %v", err)
	}
	if _, err := svc.GetPublicBySlug(" "); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("empty slug want ErrProductNotFound got %v", err)
	}
}

func TestProductServiceHomeAndLowStock(t *testing.T) {
	f := newServiceFixture(t)
	svc := newTestProductService(f)
	f.product(t, "Pale Malt", "300.00", 1, true)
	f.product(t, "Pils Malt", "310.00", 3, true)
	f.product(t, "Rye Malt", "320.00", 20, true)
	f.product(t, "Gone Malt", "330.00", 0, false)

	home, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("home failed: %v", err)
	}
	if len(home.Featured) != 2 || len(home.Categories) != 1 {
		t.Fatalf("home want 2 featured and 1 category got %d/%d", len(home.Featured), len(home.Categories))
	}
	for _, product := range home.Featured {
		if !product.IsActive {
			t.Fatalf("featured must be active: %s", product.Name)
		}
	}

	low, err := svc.ListLowStock(0)
	if err != nil {
		t.Fatalf("low stock failed: %v", err)
	}
	if len(low) != 2 || low[0].Name != "Pale Malt" || low[1].Name != "Pils Malt" {
		t.Fatalf("unexpected low stock list: %+v", low)
	}
}

func TestCategoryServiceGetBySlug(t *testing.T) {
	f := newServiceFixture(t)
	svc := NewCategoryService(f.categoryRepo)

	category, err := svc.GetBySlug("malt")
	if err != nil || category.ID != f.category.ID {
		t.Fatalf("get by slug failed: %v", err)
	}
	if _, err := svc.GetBySlug("missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("missing want ErrCategoryNotFound got %v", err)
	}
	list, err := svc.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("list want 1 got %d err=%v", len(list), err)
	}
}
