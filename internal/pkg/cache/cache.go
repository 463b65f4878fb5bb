package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pm-dashboard/internal/pkg/config"
)

// Client Redis客户端封装
// 聚合结果缓存与离线消息队列共用同一个连接
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New 创建Redis客户端并测试连接
func New(cfg *config.CacheConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &Client{rdb: rdb, ttl: cfg.GetTTL()}, nil
}

// NewWithClient 使用已有连接创建, 供测试复用
func NewWithClient(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{rdb: rdb, ttl: ttl}
}

// GetJSON 读取缓存并反序列化到dest, 未命中返回false
func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化并写入缓存, 使用默认TTL
func (c *Client) SetJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// Delete 删除缓存key, 写操作后调用
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// RPush 追加到列表尾部并刷新TTL
func (c *Client) RPush(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.RPush(ctx, key, value).Err(); err != nil {
		return err
	}
	return c.rdb.Expire(ctx, key, ttl).Err()
}

// DrainList 取出并清空整个列表
func (c *Client) DrainList(ctx context.Context, key string) ([][]byte, error) {
	pipe := c.rdb.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	items := rangeCmd.Val()
	result := make([][]byte, len(items))
	for i, item := range items {
		result[i] = []byte(item)
	}
	return result, nil
}

// Keys 按模式列出key, 仅供调度器清理使用
func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	return c.rdb.Keys(ctx, pattern).Result()
}

// TTL 查询key剩余TTL
func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.rdb.TTL(ctx, key).Result()
}

// Close 关闭连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
