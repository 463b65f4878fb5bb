package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pm-dashboard/internal/pkg/cache"
	"pm-dashboard/internal/pkg/logger"
	"pm-dashboard/pkg/constants"
)

// DashboardInvalidator 实体写操作后删除看板聚合缓存
// 删除尽力而为, Redis故障时只记日志, 等TTL自然过期
type DashboardInvalidator struct {
	cache *cache.Client
}

func NewDashboardInvalidator(cacheClient *cache.Client) *DashboardInvalidator {
	return &DashboardInvalidator{cache: cacheClient}
}

// Invalidate 删除全局key与受影响项目的范围key
func (inv *DashboardInvalidator) Invalidate(projectIDs ...int64) {
	if inv == nil || inv.cache == nil {
		return
	}

	keys := make([]string, 0, len(constants.DashboardCacheKeys)*(len(projectIDs)+1))
	for _, base := range constants.DashboardCacheKeys {
		keys = append(keys, base)
		for _, id := range projectIDs {
			keys = append(keys, fmt.Sprintf("%s:p%d", base, id))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := inv.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("删除看板缓存失败", zap.Error(err))
	}
}
