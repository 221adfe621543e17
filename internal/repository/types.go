package repository

import "github.com/shopspring/decimal"

// ProductListFilter 查询商品列表的过滤条件，所有条件按 AND 组合
type ProductListFilter struct {
	OnlyPublished bool
	CategoryID    *uint
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	SizeContains  string
}
