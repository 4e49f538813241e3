package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429。
// 过期记录在请求路径上顺手清理，无后台任务。
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		attempts = make(map[string][]time.Time)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		cutoff := now.Add(-window)

		mu.Lock()
		recent := attempts[ip][:0]
		for _, ts := range attempts[ip] {
			if ts.After(cutoff) {
				recent = append(recent, ts)
			}
		}
		if len(recent) >= maxAttempts {
			attempts[ip] = recent
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "登录尝试过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		attempts[ip] = append(recent, now)
		mu.Unlock()

		c.Next()
	}
}
