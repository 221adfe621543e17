package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service 可启停的后台服务
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 服务运行器
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务，任一服务退出或 ctx 结束时统一停止
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		service := svc
		group.Go(func() error {
			log.Infow("service_start", "service", service.Name())
			err := service.Start(groupCtx)
			log.Infow("service_exit", "service", service.Name(), "error", err)
			if err == nil {
				// 正常退出同样触发整体关闭
				return errServiceExited
			}
			return err
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		if stopTimeout <= 0 {
			stopTimeout = 10 * time.Second
		}
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		for _, svc := range r.services {
			if err := svc.Stop(stopCtx); err != nil {
				log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
			}
		}
		return nil
	})

	err := group.Wait()
	if errors.Is(err, errServiceExited) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var errServiceExited = errors.New("service exited")
