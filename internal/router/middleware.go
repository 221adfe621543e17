package router

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/tienda-next/internal/authz"
	"github.com/tienda-next/internal/config"
	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/logger"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"caller", handlershared.GetCaller(c).Role(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// CallerResolver 将 Bearer Token 解析为调用方身份
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (service.Caller, error)
}

// IdentityMiddleware 可选身份识别中间件：
// 无 Authorization 头视为匿名；携带了但无效、过期或已吊销的 Token 一律返回 401。
func IdentityMiddleware(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			handlershared.SetCaller(c, service.Anonymous())
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			handlershared.RespondError(c, response.CodeUnauthorized, "error.token_invalid", nil)
			return
		}

		caller, err := resolver.ResolveCaller(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			handlershared.RespondServiceError(c, err)
			return
		}
		handlershared.SetCaller(c, caller)
		c.Next()
	}
}

// AccessGateMiddleware 按调用方类别与路由模板执行 RBAC 判定。
// 匿名调用方被拒绝返回 401，已登录调用方被拒绝返回 403。
func AccessGateMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := handlershared.GetCaller(c)
		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.Enforce(caller.Role(), resource, c.Request.Method)
		if err != nil {
			logger.Errorw("access_gate_enforce_failed",
				"role", caller.Role(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			handlershared.RespondError(c, response.CodeInternal, "error.internal", nil)
			return
		}
		if allowed {
			c.Next()
			return
		}

		if !caller.Authenticated() {
			handlershared.RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			return
		}
		logger.Warnw("access_gate_permission_denied",
			"user_id", caller.UserID,
			"role", caller.Role(),
			"method", c.Request.Method,
			"resource", authz.NormalizeObject(resource),
		)
		handlershared.RespondError(c, response.CodeForbidden, "error.forbidden", nil)
	}
}
