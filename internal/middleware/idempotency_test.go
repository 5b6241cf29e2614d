package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	cfg := DefaultIdempotencyConfig()
	defer cfg.Cache.Stop()

	calls := 0
	router := gin.New()
	router.Use(Idempotency(cfg))
	router.POST("/api/plan", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})
	router.POST("/fail", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusBadRequest, gin.H{"call": calls})
	})

	send := func(path, key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send("/api/plan", "k1", `{"a":1}`)
	replay := send("/api/plan", "k1", `{"a":1}`)
	assert.Equal(t, http.StatusOK, replay.Code)
	assert.Equal(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, "true", replay.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 1, calls)

	otherBody := send("/api/plan", "k1", `{"a":2}`)
	assert.Empty(t, otherBody.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 2, calls)

	noKey := send("/api/plan", "", `{"a":1}`)
	assert.Empty(t, noKey.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, 3, calls)

	send("/fail", "k2", "")
	failedReplay := send("/fail", "k2", "")
	assert.Equal(t, http.StatusBadRequest, failedReplay.Code)
	assert.Equal(t, `{"call":`+strconv.Itoa(calls)+`}`, failedReplay.Body.String())
	assert.Equal(t, 5, calls, "errors are not replayed")
}

func TestIdempotency_KeyedByCaller(t *testing.T) {
	cfg := DefaultIdempotencyConfig()
	defer cfg.Cache.Stop()

	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) {
		setIdentity(c, c.GetHeader("X-Caller"), []string{ScopePlan})
		c.Next()
	})
	router.Use(Idempotency(cfg))
	router.POST("/api/plan", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	send := func(caller string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{"a":1}`))
		req.Header.Set(IdempotencyKeyHeader, "shared")
		req.Header.Set("X-Caller", caller)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	send("alice")
	other := send("bob")
	assert.Empty(t, other.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, `{"call":2}`, other.Body.String())

	again := send("alice")
	assert.Equal(t, "true", again.Header().Get(IdempotencyReplayedHeader))
	assert.Equal(t, `{"call":1}`, again.Body.String())
	assert.Equal(t, 2, calls)
}

func TestIdempotency_Disabled(t *testing.T) {
	calls := 0
	setup := func(r *gin.Engine) {
		r.Use(Idempotency(IdempotencyConfig{Enabled: false}))
		r.POST("/", func(c *gin.Context) {
			calls++
			c.Status(http.StatusOK)
		})
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(IdempotencyKeyHeader, "same")
		serve(setup, req)
	}
	assert.Equal(t, 2, calls)
}

func TestIdempotencyCacheKey_RestoresBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/catalogs", strings.NewReader("payload"))

	key, err := idempotencyCacheKey("k", "alice", req)
	assert.NoError(t, err)
	assert.Len(t, key, 64)

	body, err := io.ReadAll(req.Body)
	assert.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}
