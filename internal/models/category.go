package models

import "time"

// Category 商品分类表（无层级）
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                       // 主键
	Name      string    `gorm:"type:varchar(100);not null" json:"nombre"`                   // 分类名称
	CreatedAt time.Time `gorm:"index" json:"-"`                                             // 创建时间
	UpdatedAt time.Time `json:"-"`                                                          // 更新时间
	Products  []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"` // 删除分类级联删除商品
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
