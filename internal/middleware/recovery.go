package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/meal-planner-service/internal/i18n"
	"github.com/guttosm/meal-planner-service/internal/logger"
)

// Recovery turns a handler panic into a 500 response and logs it with the request ID.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log := logger.Logger()
				log.Error().
					Str("request_id", GetRequestID(c)).
					Str("path", c.Request.URL.Path).
					Interface("panic", err).
					Msg("PANIC recovered")

				if c.Writer.Written() {
					c.Abort()
					return
				}
				abortWithError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
			}
		}()
		c.Next()
	}
}
