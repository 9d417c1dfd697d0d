package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewPerMinuteRateLimiter(1, 2)
	r := gin.New()
	r.POST("/api/orders/create", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders/create", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/api/orders/create", nil)
	req.RemoteAddr = "198.51.100.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per IP")
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)
	rl := NewPerMinuteRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	first := rl.GetLimiter("203.0.113.7")
	rl.GetLimiter("198.51.100.1")
	assert.Equal(t, 2, rl.Len())

	now = now.Add(5 * time.Minute)
	assert.Same(t, first, rl.GetLimiter("203.0.113.7"), "active client keeps its bucket")

	now = now.Add(6 * time.Minute)
	rl.GetLimiter("192.0.2.9")
	assert.Equal(t, 2, rl.Len(), "idle client swept")

	now = now.Add(defaultLimiterIdleTTL)
	rl.GetLimiter("192.0.2.9")
	assert.Equal(t, 1, rl.Len())
	assert.NotSame(t, first, rl.GetLimiter("203.0.113.7"))
}

func TestPublicCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("all origins", func(t *testing.T) {
		r := gin.New()
		r.Use(PublicCORS([]string{"*"}))
		r.POST("/api/checkout/start", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/api/checkout/start", nil)
		req.Header.Set("Origin", "https://irem.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("restricted origins", func(t *testing.T) {
		r := gin.New()
		r.Use(PublicCORS([]string{"https://short.example.com"}))
		r.POST("/api/checkout/start", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodPost, "/api/checkout/start", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
