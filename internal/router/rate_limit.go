package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tienda-next/internal/config"
	handlershared "github.com/tienda-next/internal/http/handlers/shared"
	"github.com/tienda-next/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则：窗口内超过 MaxRequests 次后封禁 BlockSeconds 秒
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
}

// LoginRateLimitRule 由配置生成登录限流规则
func LoginRateLimitRule(cfg config.LoginRateLimitConfig) RateLimitRule {
	return RateLimitRule{
		Prefix:        "ratelimit:login",
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
	}
}

// RegisterRateLimitRule 注册限流沿用登录的窗口与阈值，按 IP 计数
func RegisterRateLimitRule(cfg config.LoginRateLimitConfig) RateLimitRule {
	rule := LoginRateLimitRule(cfg)
	rule.Prefix = "ratelimit:register"
	return rule
}

// KEYS[1] 计数 key，KEYS[2] 封禁 key；ARGV 依次为窗口、上限、封禁时长。
// 返回 {计数, 剩余秒数}，计数为 -1 表示处于封禁期。
var rateLimitScript = redis.NewScript(`
local blocked = redis.call("TTL", KEYS[2])
if blocked > 0 then
	return {-1, blocked}
end
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) and tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], 1, "EX", ARGV[3])
	redis.call("DEL", KEYS[1])
	return {current, tonumber(ARGV[3])}
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件，未启用 Redis 时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key, key + ":blocked"},
			rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Result()
		if err != nil {
			handlershared.RespondError(c, response.CodeInternal, "error.internal", err)
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			handlershared.RespondError(c, response.CodeInternal, "error.internal", fmt.Errorf("unexpected rate limit result %v", result))
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			handlershared.RespondError(c, response.CodeInternal, "error.internal", fmt.Errorf("unexpected rate limit count %v", values[0]))
			return
		}
		ttlSeconds, _ := toInt64(values[1])
		if count < 0 || count > int64(rule.MaxRequests) {
			waitSeconds := int(ttlSeconds)
			if waitSeconds < 1 {
				waitSeconds = rule.WindowSeconds
			}
			c.Header("Retry-After", strconv.Itoa(waitSeconds))
			handlershared.RespondError(c, response.CodeTooManyRequests, "error.too_many_requests", nil)
			return
		}

		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if text, ok := payload[field].(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
