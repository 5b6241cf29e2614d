package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

func TestPlanRequest_Validate(t *testing.T) {
	limits := PlanLimits{MaxMealCount: 20, MaxTimeBudget: 30 * time.Second}
	valid := model.Preferences{Budget: 50, DesiredMealCount: 3}

	tests := []struct {
		name      string
		mutate    func(*PlanRequest)
		wantField string
	}{
		{name: "valid request", mutate: func(*PlanRequest) {}},
		{name: "upper meal count bound", mutate: func(r *PlanRequest) { r.Preferences.DesiredMealCount = 20 }},
		{name: "zero meals", mutate: func(r *PlanRequest) { r.Preferences.DesiredMealCount = 0 }, wantField: "preferences.desired_meal_count"},
		{name: "too many meals", mutate: func(r *PlanRequest) { r.Preferences.DesiredMealCount = 21 }, wantField: "preferences.desired_meal_count"},
		{name: "time budget over limit", mutate: func(r *PlanRequest) { r.Preferences.TimeBudgetMS = 30001 }, wantField: "preferences.time_budget_ms"},
		{name: "time budget at limit", mutate: func(r *PlanRequest) { r.Preferences.TimeBudgetMS = 30000 }},
		{name: "empty inline catalog", mutate: func(r *PlanRequest) { r.Catalog = &model.Catalog{} }, wantField: "catalog.recipes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PlanRequest{Preferences: valid}
			tt.mutate(&req)

			err := req.Validate(limits)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidateBinding(t *testing.T) {
	UseJSONFieldNames()
	valid := model.Preferences{Budget: 50, DesiredMealCount: 3}

	tests := []struct {
		name        string
		mutate      func(*PlanRequest)
		wantField   string
		wantMessage string
	}{
		{name: "valid request", mutate: func(*PlanRequest) {}},
		{name: "zero values pass", mutate: func(r *PlanRequest) { r.Preferences = model.Preferences{DesiredMealCount: 1} }},
		{name: "negative budget", mutate: func(r *PlanRequest) { r.Preferences.Budget = -1 }, wantField: "preferences.budget", wantMessage: "must not be negative"},
		{name: "negative calorie cap", mutate: func(r *PlanRequest) { r.Preferences.CalorieCapPerRecipe = -5 }, wantField: "preferences.calorie_cap_per_recipe", wantMessage: "must not be negative"},
		{name: "negative time budget", mutate: func(r *PlanRequest) { r.Preferences.TimeBudgetMS = -1 }, wantField: "preferences.time_budget_ms", wantMessage: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PlanRequest{Preferences: valid}
			tt.mutate(&req)

			err := ValidateBinding(&req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMessage, verr.Message)
		})
	}
}

func TestValidateBinding_RequiredName(t *testing.T) {
	UseJSONFieldNames()
	req := StoreCatalogRequest{Catalog: model.Catalog{Recipes: []model.Recipe{{ID: "r1"}}}}

	var verr *ValidationError
	require.ErrorAs(t, ValidateBinding(&req), &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "is required", verr.Message)
}

func TestFromBindingError_PassesDecodeErrors(t *testing.T) {
	err := errors.New("unexpected EOF")

	assert.Same(t, err, FromBindingError(err))
}

func TestPlanRequest_ValidateDefaultsMealLimit(t *testing.T) {
	req := PlanRequest{Preferences: model.Preferences{DesiredMealCount: 21}}

	assert.Error(t, req.Validate(PlanLimits{}))
}

func TestStoreCatalogRequest_Validate(t *testing.T) {
	empty := StoreCatalogRequest{Name: "empty"}
	assert.Error(t, empty.Validate())

	ok := StoreCatalogRequest{Name: "one", Catalog: model.Catalog{Recipes: []model.Recipe{{ID: "r1"}}}}
	assert.NoError(t, ok.Validate())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "preferences.budget", Message: "must not be negative"}

	assert.Equal(t, "preferences.budget: must not be negative", err.Error())
}
