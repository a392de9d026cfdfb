package cache

import (
	"context"
	"time"
)

const homeCatalogKey = "catalog:home"

// GetHomeCatalog 读取首页商品缓存
func GetHomeCatalog(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, homeCatalogKey, dest)
}

// SetHomeCatalog 写入首页商品缓存
func SetHomeCatalog(ctx context.Context, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, homeCatalogKey, value, ttl)
}

// InvalidateHomeCatalog 库存变化后清理首页缓存
func InvalidateHomeCatalog(ctx context.Context) error {
	return Del(ctx, homeCatalogKey)
}
