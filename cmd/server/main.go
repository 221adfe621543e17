package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/tienda-next/internal/app"
	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	log := logger.S()

	if isWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			log.Fatalw("jwt_secret_weak", "hint", "请在生产环境中配置强随机密钥")
		}
		log.Warnw("jwt_secret_weak", "hint", "建议在生产环境中更换")
	}

	// 初始化数据库
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, models.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		log.Fatalw("database_open_failed", "error", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalw("database_migrate_failed", "error", err)
	}

	// 初始化默认员工账号
	if cfg.Server.Mode == "release" && cfg.Staff.DefaultPassword == "" {
		log.Warnw("default_staff_skipped", "reason", "TIENDA_STAFF_DEFAULT_PASSWORD not set")
	} else if err := models.InitDefaultStaff(db, cfg.Staff.DefaultUsername, cfg.Staff.DefaultPassword); err != nil {
		log.Warnw("default_staff_init_failed", "error", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		DB:      db,
		Logger:  log,
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		log.Fatalw("app_run_failed", "error", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + ansiBold + "Tienda API" + ansiReset)
	fmt.Println(ansiCyan + "catálogo · carrito" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key")
}
