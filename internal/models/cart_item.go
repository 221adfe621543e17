package models

import "time"

// CartItem 购物车项，同一购物车内每个商品只有一行
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                           // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"-"`                      // 购物车ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product;index" json:"producto"`         // 商品ID
	Quantity  int       `gorm:"not null;default:1;check:chk_cart_items_quantity,quantity >= 1" json:"cantidad"` // 数量
	CreatedAt time.Time `gorm:"index" json:"-"`                                                                 // 创建时间
	UpdatedAt time.Time `json:"-"`                                                                              // 更新时间

	Cart    *Cart    `gorm:"foreignKey:CartID" json:"-"`    // 所属购物车
	Product *Product `gorm:"foreignKey:ProductID" json:"-"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
