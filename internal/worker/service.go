package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/logger"
	"github.com/hopbarley/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name      string
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	consumer  *Consumer
}

// NewService 创建异步队列服务，scanMinutes 大于 0 时注册低库存定时巡检
func NewService(cfg *config.QueueConfig, consumer *Consumer, scanMinutes int) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	var scheduler *asynq.Scheduler
	if spec := lowStockScanSpec(scanMinutes); spec != "" {
		task, err := queue.NewLowStockScanTask(queue.LowStockScanPayload{})
		if err != nil {
			return nil, err
		}
		scheduler = asynq.NewScheduler(opt, nil)
		if _, err := scheduler.Register(spec, task, asynq.Queue(queue.DefaultQueue), asynq.MaxRetry(0)); err != nil {
			return nil, err
		}
	}
	return &Service{
		name:      "worker",
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		consumer:  consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	_ = ctx
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return err
		}
		logger.Infow("worker_scheduler_started", "task", queue.TaskLowStockScan)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	s.server.Shutdown()
	return nil
}

func lowStockScanSpec(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("@every %dm", minutes)
}
