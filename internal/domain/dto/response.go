package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeServiceUnavailable indicates a dependency is down.
	ErrCodeServiceUnavailable = "service_unavailable"
	// ErrCodeInvariantViolation indicates the solver produced a plan that failed verification.
	ErrCodeInvariantViolation = "invariant_violation"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"preferences.desired_meal_count: must be between 1 and 20"`
	// Details carries field level information, e.g. {"field": "preferences.budget"}.
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail adds one detail entry.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeServiceUnavailable
	default:
		return ErrCodeInternal
	}
}

// PlanResponse is the payload of a planning call.
//
// @Description Meal plan with its provenance
type PlanResponse struct {
	Solution model.Solution `json:"solution"`
	// CatalogVersion is the stored catalog version used, absent for inline catalogs.
	CatalogVersion int    `json:"catalog_version,omitempty" example:"3"`
	Fingerprint    string `json:"fingerprint" example:"9f2c..."`
	Cached         bool   `json:"cached" example:"false"`
} // @name PlanResponse

// CatalogResponse describes one stored catalog version.
//
// @Description Stored catalog version
type CatalogResponse struct {
	ID          string         `json:"id" example:"65b7c1f2e4b0a1a2b3c4d5e6"`
	Name        string         `json:"name" example:"weekly staples"`
	Version     int            `json:"version" example:"3"`
	Active      bool           `json:"active" example:"true"`
	RecipeCount int            `json:"recipe_count" example:"24"`
	CreatedAt   time.Time      `json:"created_at"`
	CreatedBy   string         `json:"created_by,omitempty" example:"ops"`
	Catalog     *model.Catalog `json:"catalog,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
} // @name CatalogResponse

// PlanRunsResponse lists recorded plan runs.
//
// @Description Recent plan runs, newest first
type PlanRunsResponse struct {
	Runs  []model.PlanRun `json:"runs"`
	Total int64           `json:"total" example:"120"`
} // @name PlanRunsResponse
