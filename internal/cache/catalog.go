package cache

import (
	"context"
	"fmt"
	"time"
)

// 商品目录缓存采用版本号命名空间：写操作只需递增版本号，旧 key 随 TTL 过期
const catalogVersionKey = "catalog:version"

// CatalogKey 生成当前版本下的目录缓存 key
func CatalogKey(ctx context.Context, parts ...string) (string, error) {
	version, err := getInt(ctx, catalogVersionKey)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("catalog:v%d", version)
	for _, part := range parts {
		key += ":" + part
	}
	return key, nil
}

// GetCatalog 读取目录缓存
func GetCatalog(ctx context.Context, dest interface{}, parts ...string) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	key, err := CatalogKey(ctx, parts...)
	if err != nil {
		return false, err
	}
	return GetJSON(ctx, key, dest)
}

// SetCatalog 写入目录缓存
func SetCatalog(ctx context.Context, value interface{}, ttl time.Duration, parts ...string) error {
	if !Enabled() || ttl <= 0 {
		return nil
	}
	key, err := CatalogKey(ctx, parts...)
	if err != nil {
		return err
	}
	return SetJSON(ctx, key, value, ttl)
}

// InvalidateCatalog 使所有目录缓存失效
func InvalidateCatalog(ctx context.Context) error {
	_, err := Incr(ctx, catalogVersionKey)
	return err
}
