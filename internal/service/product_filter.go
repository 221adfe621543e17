package service

import (
	"strconv"
	"strings"

	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductQuery 商品列表原始查询参数（categoria / precio_min / precio_max / talla）
type ProductQuery struct {
	Category string
	MinPrice string
	MaxPrice string
	Size     string
}

// BuildProductFilter 根据调用方与查询参数构建过滤条件。
// 非员工的读请求只能看到已发布商品；空参数视为未提供。
func BuildProductFilter(caller Caller, query ProductQuery) (repository.ProductListFilter, error) {
	filter := repository.ProductListFilter{
		OnlyPublished: !caller.IsStaff,
		SizeContains:  strings.TrimSpace(query.Size),
	}

	if raw := strings.TrimSpace(query.Category); raw != "" {
		id, ok := ParseID(raw)
		if !ok {
			return filter, NewFieldError(constants.ProductQueryCategory, "error.filter_invalid", constants.ProductQueryCategory)
		}
		filter.CategoryID = &id
	}

	minPrice, err := parsePriceBound(constants.ProductQueryMinPrice, query.MinPrice)
	if err != nil {
		return filter, err
	}
	filter.MinPrice = minPrice

	maxPrice, err := parsePriceBound(constants.ProductQueryMaxPrice, query.MaxPrice)
	if err != nil {
		return filter, err
	}
	filter.MaxPrice = maxPrice
	return filter, nil
}

func parsePriceBound(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, NewFieldError(field, "error.filter_invalid", field)
	}
	return &value, nil
}

// productFilterCacheKey 过滤条件的缓存 key 片段
func productFilterCacheKey(filter repository.ProductListFilter) string {
	var b strings.Builder
	if filter.OnlyPublished {
		b.WriteString("pub")
	} else {
		b.WriteString("all")
	}
	b.WriteString("|c=")
	if filter.CategoryID != nil {
		b.WriteString(strconv.FormatUint(uint64(*filter.CategoryID), 10))
	}
	b.WriteString("|min=")
	if filter.MinPrice != nil {
		b.WriteString(filter.MinPrice.String())
	}
	b.WriteString("|max=")
	if filter.MaxPrice != nil {
		b.WriteString(filter.MaxPrice.String())
	}
	b.WriteString("|t=")
	b.WriteString(strings.ToLower(filter.SizeContains))
	return b.String()
}
