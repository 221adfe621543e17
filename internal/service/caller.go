package service

import "github.com/tienda-next/internal/constants"

// Caller 请求调用方身份；UserID 为 0 表示匿名
type Caller struct {
	UserID  uint
	IsStaff bool
}

// Anonymous 匿名调用方
func Anonymous() Caller {
	return Caller{}
}

// Authenticated 是否已登录
func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

// Role 访问控制主体
func (c Caller) Role() string {
	switch {
	case c.Authenticated() && c.IsStaff:
		return constants.RoleStaff
	case c.Authenticated():
		return constants.RoleMember
	default:
		return constants.RoleAnonymous
	}
}
