package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name       string
		limit      int64
		body       string
		wantStatus int
	}{
		{name: "under limit", limit: 16, body: "short", wantStatus: http.StatusOK},
		{name: "over limit", limit: 4, body: "too long body", wantStatus: http.StatusRequestEntityTooLarge},
		{name: "no limit", limit: 0, body: strings.Repeat("x", 1024), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(func(r *gin.Engine) {
				r.Use(BodyLimit(tt.limit))
				r.POST("/", func(c *gin.Context) {
					if _, err := io.ReadAll(c.Request.Body); err != nil {
						c.Status(http.StatusRequestEntityTooLarge)
						return
					}
					c.Status(http.StatusOK)
				})
			}, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
