package admin

import "github.com/tienda-next/internal/provider"

// Handler 员工管理接口处理器入口
// 说明：该处理器仅用于商品目录的写操作，访问控制由路由层的 RBAC 闸门保证。
type Handler struct {
	*provider.Container
}

// New 创建管理处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
