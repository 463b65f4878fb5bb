package ws

import (
	"context"
	"time"

	"pm-dashboard/internal/pkg/cache"
	"pm-dashboard/pkg/constants"
)

// Queue 离线消息队列
// Redis列表按client_id存储, 连接建立时按入队顺序补投
type Queue struct {
	cache *cache.Client
	ttl   time.Duration
}

// NewQueue 创建离线队列
func NewQueue(cacheClient *cache.Client, ttl time.Duration) *Queue {
	return &Queue{cache: cacheClient, ttl: ttl}
}

// Enqueue 消息入队并刷新TTL
func (q *Queue) Enqueue(ctx context.Context, clientID string, frame []byte) error {
	return q.cache.RPush(ctx, constants.QueueKeyPrefix+clientID, frame, q.ttl)
}

// Drain 取出并清空client的全部离线消息
func (q *Queue) Drain(ctx context.Context, clientID string) ([][]byte, error) {
	return q.cache.DrainList(ctx, constants.QueueKeyPrefix+clientID)
}

// PruneStale 兜底清理: 给缺失TTL的队列补上过期时间
// 正常路径下TTL由Enqueue维护, 此任务只处理异常残留
func (q *Queue) PruneStale(ctx context.Context) (int, error) {
	keys, err := q.cache.Keys(ctx, constants.QueueKeyPrefix+"*")
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, key := range keys {
		ttl, err := q.cache.TTL(ctx, key)
		if err != nil {
			continue
		}
		// -1表示无过期时间的残留key
		if ttl < 0 {
			if err := q.cache.Delete(ctx, key); err == nil {
				fixed++
			}
		}
	}
	return fixed, nil
}
