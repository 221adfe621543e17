package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/tienda-next/internal/authz"
	"github.com/tienda-next/internal/cache"
	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/constants"
	adminhandlers "github.com/tienda-next/internal/http/handlers/admin"
	publichandlers "github.com/tienda-next/internal/http/handlers/public"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	// 初始化 Handler（读接口与购物车走 public，目录写接口走 admin）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tienda"
	}
	loginRule := LoginRateLimitRule(cfg.Security.LoginRateLimit)
	loginRule.Prefix = redisPrefix + ":" + loginRule.Prefix
	registerRule := RegisterRateLimitRule(cfg.Security.LoginRateLimit)
	registerRule.Prefix = redisPrefix + ":" + registerRule.Prefix

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	// 媒体文件（商品图片）
	if root := strings.TrimSpace(cfg.Media.Root); root != "" {
		r.Static(mediaRoutePrefix(cfg.Media.URLPrefix), root)
	}

	api := r.Group("/api")
	api.Use(IdentityMiddleware(c.UserAuthService))
	api.Use(AccessGateMiddleware(c.AuthzService))
	{
		auth := api.Group("/auth")
		{
			auth.POST("/registro/", RateLimitMiddleware(cache.Client(), registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login/", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), publicHandler.UserLogin)
			auth.POST("/logout/", publicHandler.UserLogout)
			auth.GET("/me/", publicHandler.GetCurrentUser)
		}

		api.GET("/productos/", publicHandler.ListProducts)
		api.POST("/productos/", adminHandler.CreateProduct)
		api.GET("/productos/:id/", publicHandler.GetProduct)
		api.PUT("/productos/:id/", adminHandler.UpdateProduct)
		api.PATCH("/productos/:id/", adminHandler.UpdateProduct)
		api.DELETE("/productos/:id/", adminHandler.DeleteProduct)

		api.GET("/categorias/", publicHandler.ListCategories)
		api.POST("/categorias/", adminHandler.CreateCategory)
		api.GET("/categorias/:id/", publicHandler.GetCategory)
		api.PUT("/categorias/:id/", adminHandler.UpdateCategory)
		api.PATCH("/categorias/:id/", adminHandler.UpdateCategory)
		api.DELETE("/categorias/:id/", adminHandler.DeleteCategory)

		api.GET("/carritos/", publicHandler.ListCarts)
		api.POST("/carritos/", publicHandler.CreateCart)
		api.GET("/carritos/:id/", publicHandler.GetCart)
		api.PUT("/carritos/:id/", publicHandler.UpdateCart)
		api.PATCH("/carritos/:id/", publicHandler.UpdateCart)
		api.DELETE("/carritos/:id/", publicHandler.DeleteCart)
		api.POST("/carritos/:id/agregar_producto/", publicHandler.AddProductToCart)
		api.POST("/carritos/:id/eliminar_producto/", publicHandler.RemoveProductFromCart)

		api.GET("/carrito-items/", publicHandler.ListCartItems)
		api.POST("/carrito-items/", publicHandler.CreateCartItem)
		api.GET("/carrito-items/:id/", publicHandler.GetCartItem)
		api.PUT("/carrito-items/:id/", publicHandler.UpdateCartItem)
		api.PATCH("/carrito-items/:id/", publicHandler.UpdateCartItem)
		api.DELETE("/carrito-items/:id/", publicHandler.DeleteCartItem)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	warnUngatedRoutes(r, c.AuthzService)
	return r
}

func mediaRoutePrefix(prefix string) string {
	trimmed := strings.Trim(strings.TrimSpace(prefix), "/")
	if trimmed == "" {
		return "/media"
	}
	return "/" + trimmed
}

type routePermission struct {
	Method string `json:"method"`
	Object string `json:"object"`
}

// buildRouteCatalog 列出 /api 下全部需经过闸门判定的路由
func buildRouteCatalog(engine *gin.Engine) []routePermission {
	if engine == nil {
		return []routePermission{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]routePermission, 0, len(routes))
	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		key := method + ":" + object
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, routePermission{Method: method, Object: object})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Object == items[j].Object {
			return items[i].Method < items[j].Method
		}
		return items[i].Object < items[j].Object
	})
	return items
}

// warnUngatedRoutes 记录没有任何调用方类别可以访问的路由，通常意味着漏配了策略
func warnUngatedRoutes(engine *gin.Engine, authzService *authz.Service) {
	for _, item := range buildRouteCatalog(engine) {
		allowed, err := authzService.Enforce(constants.RoleStaff, item.Object, item.Method)
		if err != nil {
			logger.Warnw("router_route_gate_check_failed", "method", item.Method, "object", item.Object, "error", err)
			continue
		}
		if !allowed {
			logger.Warnw("router_route_without_policy", "method", item.Method, "object", item.Object)
		}
	}
}
