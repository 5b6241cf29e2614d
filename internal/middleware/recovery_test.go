package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/meal-planner-service/internal/domain/dto"
)

func TestRecovery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-panic")

	w := serve(func(r *gin.Engine) {
		r.Use(RequestID(), Recovery())
		r.GET("/panic", func(*gin.Context) { panic("boom") })
	}, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrCodeInternal, body.Error)
	assert.Equal(t, "req-panic", body.RequestID)
}

func TestRecovery_NoPanic(t *testing.T) {
	w := serve(func(r *gin.Engine) {
		r.Use(Recovery())
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "fine") })
	}, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())
}
