package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCompression(t *testing.T) {
	payload := strings.Repeat("meal ", 500)

	tests := []struct {
		name         string
		path         string
		acceptGzip   bool
		wantEncoding string
	}{
		{name: "compresses when accepted", path: "/api/plans", acceptGzip: true, wantEncoding: "gzip"},
		{name: "plain without accept-encoding", path: "/api/plans"},
		{name: "metrics excluded", path: "/metrics", acceptGzip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.acceptGzip {
				req.Header.Set("Accept-Encoding", "gzip")
			}

			w := serve(func(r *gin.Engine) {
				r.Use(Compression())
				r.GET(tt.path, func(c *gin.Context) { c.String(http.StatusOK, payload) })
			}, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantEncoding, w.Header().Get("Content-Encoding"))
		})
	}
}
