package main

import (
	"errors"
	"log"

	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/models"

	"gorm.io/gorm"
)

type seedCategory struct {
	Name      string
	Slug      string
	SortOrder int
}

type seedProduct struct {
	Name         string
	Slug         string
	Description  string
	CategorySlug string
	Price        string
	Stock        int
}

var categories = []seedCategory{
	{Name: "Солод", Slug: "malt", SortOrder: 1},
	{Name: "Хмель", Slug: "hops", SortOrder: 2},
	{Name: "Дрожжи", Slug: "yeast", SortOrder: 3},
	{Name: "Наборы", Slug: "kits", SortOrder: 4},
	{Name: "Оборудование", Slug: "equipment", SortOrder: 5},
	{Name: "Аксессуары", Slug: "accessories", SortOrder: 6},
}

var products = []seedProduct{
	{Name: "Caramel Malt", Slug: "product-caramel-malt", CategorySlug: "malt", Price: "450.00", Stock: 100,
		Description: "Caramel malt for sweetness and a golden colour. Works for ales, porters and stouts."},
	{Name: "Maris Otter Malt", Slug: "product-maris-otter-malt", CategorySlug: "malt", Price: "520.00", Stock: 80,
		Description: "Classic English base malt with a rich, bready character."},
	{Name: "Pilsner Malt", Slug: "product-pilsner-malt", CategorySlug: "malt", Price: "480.00", Stock: 120,
		Description: "Pale base malt for pilsners and light lagers."},
	{Name: "Unmalted Wheat", Slug: "product-unmalted-wheat", CategorySlug: "malt", Price: "380.00", Stock: 90,
		Description: "Raw wheat for haze and body in witbiers and weizens."},
	{Name: "Cascade Hops", Slug: "product-cascade-hops", CategorySlug: "hops", Price: "320.00", Stock: 200,
		Description: "American hop with citrus and floral notes for pale ales and IPAs."},
	{Name: "Centennial Hops", Slug: "product-centennial-hops", CategorySlug: "hops", Price: "350.00", Stock: 150,
		Description: "Versatile American hop with citrus and pine aroma."},
	{Name: "Citra Hops", Slug: "product-citra-hops", CategorySlug: "hops", Price: "420.00", Stock: 120,
		Description: "Bright tropical and citrus hop, a staple of hazy IPAs."},
	{Name: "Mosaic Hops", Slug: "product-mosaic-hops", CategorySlug: "hops", Price: "400.00", Stock: 130,
		Description: "Berry, citrus and herbal aroma for modern IPAs."},
	{Name: "Saaz Hops", Slug: "product-saaz-hops", CategorySlug: "hops", Price: "380.00", Stock: 110,
		Description: "Czech noble hop with a soft spicy aroma."},
	{Name: "Imperial Yeast", Slug: "product-imperial-yeast", CategorySlug: "yeast", Price: "280.00", Stock: 80,
		Description: "Liquid yeast with high viability and a clean ferment."},
	{Name: "Safale US-05 Yeast", Slug: "product-safale-us05-yeast", CategorySlug: "yeast", Price: "180.00", Stock: 150,
		Description: "Neutral American dry ale yeast."},
	{Name: "West Coast IPA Kit", Slug: "product-west-coast-ipa-kit", CategorySlug: "kits", Price: "2500.00", Stock: 30,
		Description: "Everything for one batch of West Coast IPA: malt, hops, yeast and instructions."},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	created, updated, err := seedCatalog(models.DB, stdLog)
	if err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}
	stdLog.Printf("Seed finished: %d products created, %d updated", created, updated)
}

// seedCatalog 分类按 slug 只建不改，商品按 slug 新建或覆盖
func seedCatalog(db *gorm.DB, stdLog *log.Logger) (int, int, error) {
	categoryIDs := make(map[string]uint, len(categories))
	for _, item := range categories {
		var existing models.Category
		err := db.Where("slug = ?", item.Slug).First(&existing).Error
		switch {
		case err == nil:
			stdLog.Printf("Category already exists: %s", item.Slug)
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = models.Category{Name: item.Name, Slug: item.Slug, SortOrder: item.SortOrder}
			if err := db.Create(&existing).Error; err != nil {
				return 0, 0, err
			}
			stdLog.Printf("Created category: %s", item.Slug)
		default:
			return 0, 0, err
		}
		categoryIDs[item.Slug] = existing.ID
	}

	created, updated := 0, 0
	for _, item := range products {
		categoryID, ok := categoryIDs[item.CategorySlug]
		if !ok {
			stdLog.Printf("Category not found for product %s: %s", item.Slug, item.CategorySlug)
			continue
		}
		var product models.Product
		err := db.Where("slug = ?", item.Slug).First(&product).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, updated, err
		}
		isNew := err != nil
		product.Slug = item.Slug
		product.Name = item.Name
		product.Description = item.Description
		product.CategoryID = categoryID
		product.Price = models.MustMoney(item.Price)
		product.Stock = item.Stock
		product.IsActive = true
		if err := db.Save(&product).Error; err != nil {
			return created, updated, err
		}
		if isNew {
			created++
			stdLog.Printf("Created product: %s (%s) - %s", product.Name, item.CategorySlug, product.Price.String())
		} else {
			updated++
			stdLog.Printf("Updated product: %s", product.Name)
		}
	}
	return created, updated, nil
}
