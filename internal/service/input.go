package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tienda-next/internal/constants"
)

// CoerceQuantity 将请求中的数量转换为正整数；缺失时返回默认值 1
func CoerceQuantity(raw interface{}) (int, error) {
	if raw == nil {
		return constants.DefaultCartItemQuantity, nil
	}
	value, ok := coercePositiveInt(raw)
	if !ok || value > math.MaxInt32 {
		return 0, ErrInvalidQuantity
	}
	return int(value), nil
}

// CoerceProductID 将请求中的商品 ID 转换为正整数，缺失或非法均视为校验错误
func CoerceProductID(raw interface{}) (uint, error) {
	if raw == nil {
		return 0, ErrInvalidProductID
	}
	value, ok := coercePositiveInt(raw)
	if !ok {
		return 0, ErrInvalidProductID
	}
	return uint(value), nil
}

// ParseID 解析路径中的资源 ID
func ParseID(raw string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func coercePositiveInt(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), v > 0
	case int64:
		return v, v > 0
	case uint:
		return int64(v), v > 0
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || v <= 0 || v > math.MaxInt64/2 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		return parsePositiveInt(v.String())
	case string:
		return parsePositiveInt(v)
	default:
		return 0, false
	}
}

func parsePositiveInt(raw string) (int64, bool) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
