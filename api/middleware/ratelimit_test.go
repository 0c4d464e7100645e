package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewIPRateLimiter(1, 2, time.Minute)
	defer limiter.StopCleanup()

	router := gin.New()
	router.GET("/ping", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	// 突发额度内放行，用尽后拒绝
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestStopCleanupIdempotent(t *testing.T) {
	limiter := NewIPRateLimiter(10, 10, time.Minute)
	limiter.StopCleanup()
	limiter.StopCleanup()

	// 停止清理协程后限流本身仍然可用
	assert.True(t, limiter.getLimiter("203.0.113.7").Allow())
}
