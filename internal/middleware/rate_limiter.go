package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 固定窗口限流器 ====================

// FixedWindowLimiter 按 IP 的固定窗口限流
// 计数保存在进程内存里：重启清零，横向扩容时各实例独立计数（单实例部署可接受）。
// 作为实例注入 router，不做包级单例
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*ipWindow
	max     int
	window  time.Duration
}

type ipWindow struct {
	start time.Time
	count int
}

// NewFixedWindowLimiter 创建限流器
func NewFixedWindowLimiter(max int, window time.Duration) *FixedWindowLimiter {
	if max <= 0 {
		max = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{
		windows: make(map[string]*ipWindow),
		max:     max,
		window:  window,
	}
}

// Allow 判定该 IP 本窗口内是否放行
func (l *FixedWindowLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[ip] = &ipWindow{start: now, count: 1}
		// 顺手清掉过期窗口，避免 map 无限涨
		if len(l.windows) > 4096 {
			for k, v := range l.windows {
				if now.Sub(v.start) >= l.window {
					delete(l.windows, k)
				}
			}
		}
		return true
	}

	w.count++
	return w.count <= l.max
}

// RateLimit 限流中间件，只拦会改状态的请求
func RateLimit(limiter *FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		if !limiter.Allow(c.ClientIP()) {
			// 固定窗口，Retry-After 只是粗略提示
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{"code": 429, "message": "请求过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}
