package app

import (
	"errors"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/provider"
	"github.com/tienda-next/internal/router"
	"github.com/tienda-next/internal/worker"

	"gorm.io/gorm"
)

// BuildRunner 按启动模式构建服务运行器
func BuildRunner(cfg *config.Config, db *gorm.DB, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg, db)
	if err != nil {
		return nil, err
	}

	var services []Service

	// HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server.Addr(), engine))
	}

	// 媒体回收 Worker，队列未启用时 all 模式下跳过
	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container.UploadService))
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else if mode == ModeWorker {
			return nil, errors.New("worker mode requires queue.enabled")
		} else {
			logger.Infow("app_worker_skipped", "reason", "queue disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	if opts.DB == nil {
		return errors.New("db is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.DB, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
