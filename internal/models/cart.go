package models

import "time"

// Cart 购物车（每个用户至多一个）
type Cart struct {
	ID        uint       `gorm:"primarykey" json:"id"`                                       // 主键
	UserID    *uint      `gorm:"uniqueIndex:idx_carts_user" json:"usuario"`                  // 所属用户，匿名购物车为空
	CreatedAt time.Time  `gorm:"index;<-:create" json:"creado"`                              // 创建时间，仅创建时写入
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // 购物车项

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // 关联用户
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// OwnedBy 判断购物车是否属于指定用户
func (c *Cart) OwnedBy(userID uint) bool {
	return c != nil && c.UserID != nil && *c.UserID == userID
}
