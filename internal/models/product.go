package models

import "time"

// Product 商品表
type Product struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                            // 主键
	Name           string    `gorm:"type:varchar(100);not null" json:"nombre"`                        // 商品名称
	Description    string    `gorm:"type:text" json:"descripcion"`                                    // 商品描述
	Image          string    `gorm:"type:varchar(500)" json:"imagen"`                                 // 图片引用（相对媒体目录的路径或完整 URL）
	Price          Money     `gorm:"type:decimal(10,2);not null;default:0;index" json:"precio"`       // 价格
	Published      bool      `gorm:"not null;default:false;index" json:"publicado"`                   // 是否发布
	CategoryID     uint      `gorm:"not null;index" json:"categoria"`                                 // 分类ID
	AvailableSizes string    `gorm:"type:varchar(100);not null;default:''" json:"tallas_disponibles"` // 可选尺码，逗号分隔
	CreatedAt      time.Time `gorm:"index" json:"-"`                                                  // 创建时间
	UpdatedAt      time.Time `json:"-"`                                                               // 更新时间

	// 关联
	Category  *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"` // 所属分类
	CartItems []CartItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`  // 删除商品级联删除购物车项
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
