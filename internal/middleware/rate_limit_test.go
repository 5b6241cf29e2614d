package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewShardedRateLimiter(t *testing.T) {
	tests := []struct {
		name       string
		numShards  int
		wantShards int
	}{
		{name: "default shards when zero", numShards: 0, wantShards: defaultNumShards},
		{name: "default shards when negative", numShards: -1, wantShards: defaultNumShards},
		{name: "custom shard count", numShards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(10, time.Minute, tt.numShards)
			defer rl.Stop()

			assert.Len(t, rl.shards, tt.wantShards)
			assert.Equal(t, 10, rl.rate)
		})
	}
}

func TestShardedRateLimiter_CheckRateLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	for i, wantRemaining := range []int{2, 1, 0} {
		allowed, remaining := rl.checkRateLimit("ip:1.2.3.4")
		assert.True(t, allowed, "request %d", i)
		assert.Equal(t, wantRemaining, remaining)
	}
	allowed, _ := rl.checkRateLimit("ip:1.2.3.4")
	assert.False(t, allowed)

	allowed, _ = rl.checkRateLimit("ip:5.6.7.8")
	assert.True(t, allowed, "other clients have their own window")

	now = now.Add(time.Minute + time.Second)
	allowed, remaining := rl.checkRateLimit("ip:1.2.3.4")
	assert.True(t, allowed, "window resets")
	assert.Equal(t, 2, remaining)
}

func TestShardedRateLimiter_RateLimit(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	setup := func(r *gin.Engine) {
		r.Use(rl.RateLimit())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	first := serve(setup, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := serve(setup, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestShardedRateLimiter_PerSubject(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	setup := func(subject string) func(r *gin.Engine) {
		return func(r *gin.Engine) {
			r.Use(func(c *gin.Context) { setIdentity(c, subject, nil) }, rl.RateLimit())
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		}
	}

	assert.Equal(t, http.StatusOK, serve(setup("alice"), httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(setup("bob"), httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(setup("alice"), httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestShardedRateLimiter_CleanupExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewShardedRateLimiter(5, time.Minute, 4)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	rl.checkRateLimit("a")
	rl.checkRateLimit("b")
	total, perShard := rl.Stats()
	assert.Equal(t, 2, total)
	assert.Len(t, perShard, 4)

	now = now.Add(3 * time.Minute)
	rl.cleanupExpired()
	total, _ = rl.Stats()
	assert.Zero(t, total)
}

func TestShardedRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)

	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
