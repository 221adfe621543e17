package shared

import (
	"github.com/tienda-next/internal/http/response"
	"github.com/tienda-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CallerContextKey 上下文中保存调用方身份的 key
const CallerContextKey = "caller"

// SetCaller 写入调用方身份
func SetCaller(c *gin.Context, caller service.Caller) {
	c.Set(CallerContextKey, caller)
}

// GetCaller 读取调用方身份，缺失时视为匿名
func GetCaller(c *gin.Context) service.Caller {
	value, exists := c.Get(CallerContextKey)
	if !exists {
		return service.Anonymous()
	}
	if caller, ok := value.(service.Caller); ok {
		return caller
	}
	return service.Anonymous()
}

// ParseIDParam 解析路径 ID，非法 ID 按资源不存在处理
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, ok := service.ParseID(c.Param(name))
	if !ok {
		RespondError(c, response.CodeNotFound, "error.not_found", nil)
		return 0, false
	}
	return id, true
}
