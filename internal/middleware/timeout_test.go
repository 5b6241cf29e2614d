package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	tests := []struct {
		name       string
		timeout    time.Duration
		handler    gin.HandlerFunc
		wantStatus int
	}{
		{
			name:       "fast handler",
			timeout:    time.Second,
			handler:    func(c *gin.Context) { c.Status(http.StatusOK) },
			wantStatus: http.StatusOK,
		},
		{
			name:    "handler honoring deadline without writing",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:    "handler writing after deadline keeps its response",
			timeout: 10 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.String(http.StatusOK, "late")
			},
			wantStatus: http.StatusOK,
		},
		{
			name:    "disabled timeout",
			timeout: 0,
			handler: func(c *gin.Context) {
				_, hasDeadline := c.Request.Context().Deadline()
				if hasDeadline {
					c.Status(http.StatusInternalServerError)
					return
				}
				c.Status(http.StatusOK)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(func(r *gin.Engine) {
				r.Use(Timeout(tt.timeout))
				r.GET("/", tt.handler)
			}, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var deadline time.Time
	serve(func(r *gin.Engine) {
		r.Use(Timeout(time.Minute))
		r.GET("/", func(c *gin.Context) {
			deadline, _ = c.Request.Context().Deadline()
			assert.NoError(t, context.Cause(c.Request.Context()))
			c.Status(http.StatusOK)
		})
	}, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}
