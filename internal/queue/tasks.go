package queue

import (
	"encoding/json"

	"github.com/hopbarley/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlacedEmail 下单确认邮件任务
	TaskOrderPlacedEmail = constants.TaskOrderPlacedEmail
	// TaskLowStockScan 低库存巡检任务
	TaskLowStockScan = constants.TaskLowStockScan
)

// OrderPlacedEmailPayload 下单确认邮件任务载荷
type OrderPlacedEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Locale  string `json:"locale"`
}

// LowStockScanPayload 低库存巡检任务载荷，Threshold 为 0 时使用配置值
type LowStockScanPayload struct {
	Threshold int `json:"threshold"`
}

// NewOrderPlacedEmailTask 创建下单确认邮件任务
func NewOrderPlacedEmailTask(payload OrderPlacedEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedEmail, body), nil
}

// NewLowStockScanTask 创建低库存巡检任务
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, body), nil
}
