// Package http exposes the meal planner over a gin HTTP API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/meal-planner-service/internal/domain/dto"
	"github.com/guttosm/meal-planner-service/internal/i18n"
	"github.com/guttosm/meal-planner-service/internal/middleware"
)

// ResponseBuilder writes the API's success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.c.JSON(statusCode, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now(),
	})
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error sends the translated message for messageKey and records err on the
// context for the error handler middleware to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.send(statusCode, dto.ErrCodeFromStatus(statusCode), messageKey, err, nil)
}

// Fail writes the envelope described by a classified error.
func (b *ResponseBuilder) Fail(err error) {
	f := classify(err)
	b.send(f.status, f.code, f.messageKey, err, f.details)
}

func (b *ResponseBuilder) send(status int, code, messageKey string, err error, details map[string]string) {
	resp := dto.NewError(code, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))).
		WithRequestID(middleware.GetRequestID(b.c))
	for k, v := range details {
		resp = resp.WithDetail(k, v)
	}

	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(status, resp)
}

// BindJSON decodes the request body into a T. Broken binding rules come back
// as a *dto.ValidationError.
func BindJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, dto.FromBindingError(err)
	}
	return &req, nil
}

// FailBinding reports a body that could not be decoded or broke a binding rule.
func (b *ResponseBuilder) FailBinding(err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		b.Fail(err)
		return
	}
	b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}
