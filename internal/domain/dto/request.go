// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"fmt"
	"time"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

// PlanRequest represents the JSON request body for the planning endpoint.
//
// Catalog is optional; without it the active stored catalog is used.
//
// @Description Request to plan a batch of meals
type PlanRequest struct {
	Catalog     *model.Catalog    `json:"catalog,omitempty"`
	Preferences model.Preferences `json:"preferences"`
} // @name PlanRequest

// PlanLimits bounds the preferences accepted at the API boundary.
type PlanLimits struct {
	MaxMealCount  int
	MaxTimeBudget time.Duration
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the preferences against the configured limits. Sign rules
// live in the binding tags of model.Preferences.
func (r *PlanRequest) Validate(limits PlanLimits) error {
	p := r.Preferences
	if limits.MaxMealCount <= 0 {
		limits.MaxMealCount = 20
	}

	if p.DesiredMealCount < 1 || p.DesiredMealCount > limits.MaxMealCount {
		return &ValidationError{
			Field:   "preferences.desired_meal_count",
			Message: fmt.Sprintf("must be between 1 and %d", limits.MaxMealCount),
		}
	}
	if limit := limits.MaxTimeBudget.Milliseconds(); limit > 0 && p.TimeBudgetMS > limit {
		return &ValidationError{
			Field:   "preferences.time_budget_ms",
			Message: fmt.Sprintf("must not exceed %d", limit),
		}
	}
	if r.Catalog != nil && r.Catalog.Empty() {
		return &ValidationError{Field: "catalog.recipes", Message: "must not be empty"}
	}
	return nil
}

// StoreCatalogRequest represents the JSON request body for storing a catalog version.
//
// @Description Request to store a new active catalog version
type StoreCatalogRequest struct {
	Name      string        `json:"name" binding:"required" example:"weekly staples"`
	Catalog   model.Catalog `json:"catalog"`
	CreatedBy string        `json:"created_by,omitempty" example:"ops"`
} // @name StoreCatalogRequest

// Validate performs custom validation on the request.
func (r *StoreCatalogRequest) Validate() error {
	if r.Catalog.Empty() {
		return &ValidationError{Field: "catalog.recipes", Message: "must not be empty"}
	}
	return nil
}
