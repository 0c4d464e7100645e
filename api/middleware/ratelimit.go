package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gdshowcase/gd-showcase/api/common"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter 基于 IP 的限流器
type IPRateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
	expire   time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// limiterEntry 限流器条目，记录最后访问时间
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter 创建 IP 限流器并启动过期清理
func NewIPRateLimiter(rps float64, burst int, expire time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		expire:   expire,
		stopChan: make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// getLimiter 获取或创建指定 IP 的限流器
func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now()
	if v, ok := l.limiters.Load(ip); ok {
		entry := v.(*limiterEntry)
		entry.lastSeen = now
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:  rate.NewLimiter(l.rps, l.burst),
		lastSeen: now,
	}
	actual, _ := l.limiters.LoadOrStore(ip, entry)
	return actual.(*limiterEntry).limiter
}

// cleanupLoop 周期清理长时间未访问的 IP 条目，StopCleanup 后退出
func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.expire)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-l.expire)
			l.limiters.Range(func(key, value interface{}) bool {
				if value.(*limiterEntry).lastSeen.Before(cutoff) {
					l.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

// StopCleanup 停止后台清理协程，可安全重复调用
func (l *IPRateLimiter) StopCleanup() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Middleware 返回 gin 中间件，超出限额时响应 429
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.getLimiter(c.ClientIP()).Allow() {
			common.Error(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
