package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 调用方角色（访问控制主体）
const (
	RoleAnonymous = "role:anonymous"
	RoleMember    = "role:member"
	RoleStaff     = "role:staff"
)

// 购物车项默认数量
const DefaultCartItemQuantity = 1

// 商品字段长度限制
const (
	ProductNameMaxLength  = 100
	ProductSizesMaxLength = 100
	CategoryNameMaxLength = 100
	PriceMaxIntegerDigits = 8
	PriceMaxDecimalPlaces = 2
)

// 商品查询参数名
const (
	ProductQueryCategory = "categoria"
	ProductQueryMinPrice = "precio_min"
	ProductQueryMaxPrice = "precio_max"
	ProductQuerySize     = "talla"
)

// 异步队列
const (
	QueueDefault    = "default"
	TaskMediaRemove = "media:remove"
)

// 上传商品图片的存放子目录
const ProductImageDir = "productos"
