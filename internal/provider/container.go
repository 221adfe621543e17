package provider

import (
	"fmt"
	"time"

	"github.com/tienda-next/internal/authz"
	"github.com/tienda-next/internal/cache"
	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/queue"
	"github.com/tienda-next/internal/repository"
	"github.com/tienda-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config
	DB     *gorm.DB

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository

	// Services
	AuthzService    *authz.Service
	UserAuthService *service.UserAuthService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	CartService     *service.CartService
	UploadService   *service.UploadService

	// 异步队列（未启用时为空客户端）
	QueueClient *queue.Client
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("provider requires config and db")
	}

	// 初始化缓存，失败时降级为无缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queue.NewClient(&cfg.Queue),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repository.NewUserRepository(c.DB)
	c.CategoryRepo = repository.NewCategoryRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CartRepo = repository.NewCartRepository(c.DB)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}
	c.AuthzService = authzService

	catalogTTL := time.Duration(c.Config.Cache.CatalogTTLSeconds) * time.Second
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, catalogTTL)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, catalogTTL)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.UploadService = service.NewUploadService(c.Config.Media, c.QueueClient)
	c.ProductService.SetMediaJanitor(c.UploadService)
	c.CategoryService.SetMediaJanitor(c.UploadService, c.ProductRepo)
	return nil
}
