package model

// Status is the outcome of one solve.
type Status string

const (
	// StatusOptimal means the search was exhaustive and the selection is proven optimal.
	StatusOptimal Status = "optimal"
	// StatusBestEffort means the time budget ran out after a feasible selection was found.
	StatusBestEffort Status = "best_effort"
	// StatusInfeasible means no selection satisfies every hard constraint.
	StatusInfeasible Status = "infeasible"
	// StatusTimeout means the time budget ran out before any feasible selection was found.
	StatusTimeout Status = "timeout"
)

// HasSelection reports whether solutions with this status carry chosen recipes.
func (s Status) HasSelection() bool {
	return s == StatusOptimal || s == StatusBestEffort
}

// ExclusionReason explains why a recipe was removed before search.
type ExclusionReason string

const (
	// ExcludedAllergen marks recipes that use an ingredient from the allergy set.
	ExcludedAllergen ExclusionReason = "allergen"
	// ExcludedCalorieCap marks recipes whose rounded calories exceed the cap.
	ExcludedCalorieCap ExclusionReason = "calorie_cap"
)

// Exclusion records one recipe eliminated before search.
type Exclusion struct {
	RecipeID string          `json:"recipe_id" bson:"recipe_id" example:"r-peanut-noodles"`
	Reason   ExclusionReason `json:"reason" bson:"reason" example:"allergen"`
} // @name Exclusion

// ChosenRecipe identifies one selected recipe.
type ChosenRecipe struct {
	ID   string `json:"id" bson:"id" example:"r-grilled-chicken"`
	Name string `json:"name" bson:"name" example:"Grilled chicken"`
} // @name ChosenRecipe

// Purchase is one line of the shopping list.
//
// @Description Ingredient purchase: whole lots, amount in packages and cost in currency
type Purchase struct {
	IngredientID string `json:"ingredient_id" bson:"ingredient_id" example:"ing-chicken"`
	// Lots is the number of purchase increments bought.
	Lots int64 `json:"lots" bson:"lots" example:"2"`
	// Amount is the purchased quantity in packages.
	Amount float64 `json:"amount" bson:"amount" example:"2"`
	// Cost is the purchase cost in major currency units.
	Cost float64 `json:"cost" bson:"cost" example:"9.98"`
} // @name Purchase

// Totals aggregates the chosen recipes and the shopping list.
type Totals struct {
	Protein     float64 `json:"protein" bson:"protein" example:"142"`
	Calories    float64 `json:"calories" bson:"calories" example:"2650"`
	Cholesterol float64 `json:"cholesterol" bson:"cholesterol" example:"410"`
	// Spend is the total purchase cost in major currency units.
	Spend    float64 `json:"spend" bson:"spend" example:"37.45"`
	Dislikes int     `json:"dislikes" bson:"dislikes" example:"1"`
} // @name Totals

// SolveStats describes the search effort.
type SolveStats struct {
	Nodes     int64 `json:"nodes" bson:"nodes" example:"1834"`
	Pruned    int64 `json:"pruned" bson:"pruned" example:"912"`
	ElapsedMS int64 `json:"elapsed_ms" bson:"elapsed_ms" example:"4"`
	Workers   int   `json:"workers" bson:"workers" example:"1"`
} // @name SolveStats

// Solution is the externally consumable result of a solve.
//
// @Description Meal plan: chosen recipes, shopping list and totals
type Solution struct {
	Status          Status         `json:"status" bson:"status" example:"optimal"`
	ChosenRecipeIDs []string       `json:"chosen_recipe_ids" bson:"chosen_recipe_ids"`
	ChosenRecipes   []ChosenRecipe `json:"chosen_recipes" bson:"chosen_recipes"`
	Purchases       []Purchase     `json:"purchases" bson:"purchases"`
	Totals          Totals         `json:"totals" bson:"totals"`
	Objective       float64        `json:"objective" bson:"objective" example:"101.5"`
	// OptimalityGap bounds how far a best-effort objective may be from the optimum.
	OptimalityGap float64 `json:"optimality_gap,omitempty" bson:"optimality_gap,omitempty" example:"0"`
	// Reason explains infeasible and timeout outcomes.
	Reason   string      `json:"reason,omitempty" bson:"reason,omitempty"`
	Excluded []Exclusion `json:"excluded,omitempty" bson:"excluded,omitempty"`
	Warnings []string    `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Stats    SolveStats  `json:"stats" bson:"stats"`
} // @name Solution

// Clone returns a copy of s that shares no slices with it.
func (s Solution) Clone() Solution {
	s.ChosenRecipeIDs = cloneSlice(s.ChosenRecipeIDs)
	s.ChosenRecipes = cloneSlice(s.ChosenRecipes)
	s.Purchases = cloneSlice(s.Purchases)
	s.Excluded = cloneSlice(s.Excluded)
	s.Warnings = cloneSlice(s.Warnings)
	return s
}

// cloneSlice copies src, keeping nil and empty apart.
func cloneSlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	return append(make([]T, 0, len(src)), src...)
}

// NoSelection returns a solution without chosen recipes for the given status.
func NoSelection(status Status, reason string) Solution {
	return Solution{
		Status:          status,
		ChosenRecipeIDs: []string{},
		ChosenRecipes:   []ChosenRecipe{},
		Purchases:       []Purchase{},
		Reason:          reason,
	}
}
