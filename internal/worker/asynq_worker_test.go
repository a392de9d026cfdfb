package worker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/models"
	"github.com/hopbarley/internal/provider"
	"github.com/hopbarley/internal/queue"
	"github.com/hopbarley/internal/session"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newTestConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	cfg := &config.Config{Catalog: config.CatalogConfig{LowStockThreshold: 3}}
	container := provider.Build(cfg, db, nil, session.NewMemoryStore())
	return NewConsumer(container), db
}

func TestHandleOrderPlacedEmailSkipsWhenDisabled(t *testing.T) {
	consumer, db := newTestConsumer(t)
	order := &models.Order{OrderNo: "HB20260101000000000001", UserID: 1, Status: "pending", Email: "a@example.com", FullName: "A", Phone: "1", City: "C", Address: "D", PaymentMethod: "cash"}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task, err := queue.NewOrderPlacedEmailTask(queue.OrderPlacedEmailPayload{OrderID: order.ID, Locale: "en-US"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderPlacedEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email should be skipped, got %v", err)
	}

	missing, _ := queue.NewOrderPlacedEmailTask(queue.OrderPlacedEmailPayload{OrderID: 999})
	if err := consumer.handleOrderPlacedEmail(context.Background(), missing); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestHandleOrderPlacedEmailRejectsBadPayload(t *testing.T) {
	consumer, _ := newTestConsumer(t)
	task := asynq.NewTask(queue.TaskOrderPlacedEmail, []byte("{bad"))
	if err := consumer.handleOrderPlacedEmail(context.Background(), task); err == nil {
		t.Fatalf("bad payload should return error for retry")
	}
}

func TestHandleLowStockScan(t *testing.T) {
	consumer, db := newTestConsumer(t)
	category := &models.Category{Name: "Hops", Slug: "hops"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{CategoryID: category.ID, Name: "Citra", Slug: "citra", Price: models.MustMoney("420.00"), Stock: 1, IsActive: true}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	task, err := queue.NewLowStockScanTask(queue.LowStockScanPayload{})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleLowStockScan(context.Background(), task); err != nil {
		t.Fatalf("low stock scan failed: %v", err)
	}
	if err := consumer.handleLowStockScan(context.Background(), asynq.NewTask(queue.TaskLowStockScan, nil)); err != nil {
		t.Fatalf("empty payload should use defaults: %v", err)
	}
}

func TestLowStockScanSpec(t *testing.T) {
	if got := lowStockScanSpec(30); got != "@every 30m" {
		t.Fatalf("cron spec want @every 30m got %s", got)
	}
	if got := lowStockScanSpec(0); got != "" {
		t.Fatalf("zero minutes should disable scan, got %s", got)
	}
	if _, err := NewService(&config.QueueConfig{Enabled: false}, nil, 10); err == nil {
		t.Fatalf("disabled queue should not create service")
	}
}
