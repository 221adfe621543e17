package models

import "time"

// User 用户表
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                   // 主键
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"` // 登录名
	Email        string     `gorm:"type:varchar(255);default:''" json:"email"`              // 邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	IsStaff      bool       `gorm:"not null;default:false;index" json:"is_staff"`           // 是否员工（可管理商品目录）
	Status       string     `gorm:"type:varchar(20);default:'active'" json:"status"`        // 账号状态
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                            // Token 版本（用于全量失效）
	LastLoginAt  *time.Time `json:"last_login_at"`                                          // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
