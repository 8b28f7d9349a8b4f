package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func TestRateLimiter_PerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(rate.Every(time.Hour), 2, time.Minute)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, do("10.0.0.2"))
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1, time.Minute)
	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))

	rl.evict(time.Now().Add(2 * time.Minute))
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestTimeoutAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(), Timeout(50*time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.New(core)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "rid-1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status"])
}

type recordingMetrics struct {
	mu    sync.Mutex
	names []string
	done  chan struct{}
}

func (m *recordingMetrics) IsEnabled() bool { return true }

func (m *recordingMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	if name == "HTTP5xxErrors" {
		close(m.done)
	}
	return nil
}

func (m *recordingMetrics) RecordLatency(_ context.Context, name string, _ time.Duration, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	return nil
}

func TestMetrics_RecordsServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := &recordingMetrics{done: make(chan struct{})}
	r := gin.New()
	r.Use(Metrics(m, "storefront"))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("metrics were not recorded")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, []string{"HTTPRequests", "HTTPLatency", "HTTP5xxErrors"}, m.names)
}
