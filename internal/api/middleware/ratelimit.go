package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"pm-dashboard/pkg/responses"
)

// tokenBucket 进程内令牌桶
type tokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // 每秒补充令牌数
	last     time.Time
}

func newTokenBucket(ratePerSecond int) *tokenBucket {
	return &tokenBucket{
		tokens:   float64(ratePerSecond),
		capacity: float64(ratePerSecond),
		rate:     float64(ratePerSecond),
		last:     time.Now(),
	}
}

func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.last).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimitMiddleware 全局限流, ratePerSecond<=0时不限流
func RateLimitMiddleware(ratePerSecond int) gin.HandlerFunc {
	if ratePerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	bucket := newTokenBucket(ratePerSecond)
	return func(c *gin.Context) {
		if !bucket.allow() {
			responses.ErrorWithCode(c, responses.CodeBadRequest, "请求过于频繁, 请稍后重试")
			c.Abort()
			return
		}
		c.Next()
	}
}
