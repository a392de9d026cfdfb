package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/provider"
	"github.com/hopbarley/internal/queue"
	"github.com/hopbarley/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlacedEmail, c.handleOrderPlacedEmail)
	mux.HandleFunc(queue.TaskLowStockScan, c.handleLowStockScan)
}

func (c *Consumer) handleOrderPlacedEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderService.GetOrder(payload.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_placed_email_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_placed_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}

	receiverEmail := strings.TrimSpace(order.Email)
	if receiverEmail == "" && order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_placed_email_fetch_user_failed", "order_id", order.ID, "user_id", order.UserID, "error", err)
			return err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_placed_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Infow("worker_order_placed_email_skip_disabled",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"item_count", order.ItemCount(),
			"total", order.TotalPrice.StringFixed(2),
		)
		return nil
	}
	if err := c.EmailService.SendOrderPlacedEmail(receiverEmail, order, payload.Locale); err != nil {
		if errors.Is(err, service.ErrEmailRecipientRejected) || errors.Is(err, service.ErrInvalidEmail) {
			logger.Warnw("worker_order_placed_email_receiver_rejected",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"receiver_email", receiverEmail,
				"error", err,
			)
			return nil
		}
		logger.Warnw("worker_order_placed_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_order_placed_email_sent", "order_id", order.ID, "order_no", order.OrderNo)
	return nil
}

func (c *Consumer) handleLowStockScan(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_scan_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockScanPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Warnw("worker_low_stock_scan_unmarshal_failed", "error", err)
			return err
		}
	}
	products, err := c.ProductService.ListLowStock(payload.Threshold)
	if err != nil {
		logger.Warnw("worker_low_stock_scan_failed", "error", err)
		return err
	}
	for _, product := range products {
		logger.Warnw("worker_low_stock_product",
			"product_id", product.ID,
			"slug", product.Slug,
			"stock", product.Stock,
			"sold_out", !product.InStock(),
		)
	}
	logger.Infow("worker_low_stock_scan_done", "count", len(products))
	return nil
}
