// Package model defines the core domain entities for the meal planner service.
package model

import (
	"encoding/json"
	"sort"
)

const (
	// NutrientProtein is the nutrient key rewarded by the objective.
	NutrientProtein = "protein"
	// NutrientCalories is the nutrient key checked against the calorie cap.
	NutrientCalories = "calories"
	// NutrientCholesterol is the nutrient key penalized by the objective.
	NutrientCholesterol = "cholesterol"

	// DefaultUnitPrice is the price, in minor currency units, assumed for an
	// ingredient whose unit_price is missing from the catalog document.
	DefaultUnitPrice int64 = 400
	// DefaultProportion is the proportion assumed when a recipe ingredient
	// omits it: one whole package per serving.
	DefaultProportion = 1.0
)

// Ingredient is a purchasable item sold in packages.
//
// @Description Purchasable ingredient priced per package
type Ingredient struct {
	ID   string `json:"id" bson:"id" example:"ing-chicken"`
	Name string `json:"name" bson:"name" example:"chicken breast"`
	// UnitPrice is the price of one package in minor currency units (cents).
	UnitPrice int64 `json:"unit_price" bson:"unit_price" example:"499"`
	// PackageQuantity is informational: how much product one package holds.
	PackageQuantity float64 `json:"package_quantity,omitempty" bson:"package_quantity,omitempty" example:"16"`

	// PriceDefaulted is set when the document omitted unit_price.
	PriceDefaulted bool `json:"-" bson:"price_defaulted,omitempty"`
} // @name Ingredient

// UnmarshalJSON applies DefaultUnitPrice when unit_price is absent.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	type alias Ingredient
	aux := struct {
		*alias
		UnitPrice *int64 `json:"unit_price"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.UnitPrice == nil {
		i.UnitPrice = DefaultUnitPrice
		i.PriceDefaulted = true
	} else {
		i.UnitPrice = *aux.UnitPrice
		i.PriceDefaulted = false
	}
	return nil
}

// RecipeIngredient is one requirement line of a recipe.
type RecipeIngredient struct {
	IngredientID string `json:"ingredient_id" bson:"ingredient_id" example:"ing-chicken"`
	// Proportion is the fraction of one package used per serving, in [0,1].
	Proportion float64 `json:"proportion" bson:"proportion" example:"0.5"`

	// ProportionDefaulted is set when the document omitted proportion.
	ProportionDefaulted bool `json:"-" bson:"proportion_defaulted,omitempty"`
} // @name RecipeIngredient

// UnmarshalJSON applies DefaultProportion when proportion is absent.
func (ri *RecipeIngredient) UnmarshalJSON(data []byte) error {
	type alias RecipeIngredient
	aux := struct {
		*alias
		Proportion *float64 `json:"proportion"`
	}{alias: (*alias)(ri)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Proportion == nil {
		ri.Proportion = DefaultProportion
		ri.ProportionDefaulted = true
	} else {
		ri.Proportion = *aux.Proportion
		ri.ProportionDefaulted = false
	}
	return nil
}

// Recipe is a candidate meal.
//
// @Description Recipe with nutrient values and ingredient requirements
type Recipe struct {
	ID          string             `json:"id" bson:"id" example:"r-grilled-chicken"`
	Name        string             `json:"name" bson:"name" example:"Grilled chicken"`
	Nutrients   map[string]float64 `json:"nutrients" bson:"nutrients"`
	Ingredients []RecipeIngredient `json:"ingredients" bson:"ingredients"`
} // @name Recipe

// Nutrient returns the named nutrient value and whether it was present.
func (r Recipe) Nutrient(kind string) (float64, bool) {
	v, ok := r.Nutrients[kind]
	return v, ok
}

// Catalog is the immutable input document of one optimization run.
//
// @Description Recipes, ingredients, pantry inventory and dietary restrictions
type Catalog struct {
	Recipes     []Recipe     `json:"recipes" bson:"recipes"`
	Ingredients []Ingredient `json:"ingredients" bson:"ingredients"`
	// Inventory maps an ingredient id to the amount on hand as a fraction of one
	// package. Ingredients not listed have nothing on hand.
	Inventory map[string]float64 `json:"inventory,omitempty" bson:"inventory,omitempty"`
	Allergies []string           `json:"allergies,omitempty" bson:"allergies,omitempty"`
	Dislikes  []string           `json:"dislikes,omitempty" bson:"dislikes,omitempty"`
} // @name Catalog

// Empty reports whether the catalog has no recipes.
func (c Catalog) Empty() bool {
	return len(c.Recipes) == 0
}

// RecipeIDs returns the recipe ids in id order.
func (c Catalog) RecipeIDs() []string {
	ids := make([]string, 0, len(c.Recipes))
	for _, r := range c.Recipes {
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)
	return ids
}

// ObjectiveWeights parameterize the nutrition score.
//
// @Description Objective weights: protein is rewarded, cholesterol and disliked ingredients are penalized
type ObjectiveWeights struct {
	Protein     float64 `json:"protein" bson:"protein" example:"1"`
	Cholesterol float64 `json:"cholesterol" bson:"cholesterol" example:"0.1"`
	Dislike     float64 `json:"dislike" bson:"dislike" example:"10"`
	// Nutrients weights further nutrients by name; positive values reward,
	// negative values penalize.
	Nutrients map[string]float64 `json:"nutrients,omitempty" bson:"nutrients,omitempty"`
} // @name ObjectiveWeights

// DefaultObjectiveWeights returns the weights used when a caller supplies none.
func DefaultObjectiveWeights() ObjectiveWeights {
	return ObjectiveWeights{
		Protein:     1.0,
		Cholesterol: 0.1,
		Dislike:     10.0,
	}
}

// IsZero reports whether no weight was set.
func (w ObjectiveWeights) IsZero() bool {
	return w.Protein == 0 && w.Cholesterol == 0 && w.Dislike == 0 && len(w.Nutrients) == 0
}

// Preferences are the per-run user settings.
//
// @Description Planning preferences for one batch of meals
type Preferences struct {
	// Budget is the spending limit in major currency units.
	Budget float64 `json:"budget" bson:"budget" binding:"gte=0" example:"60"`
	// CalorieCapPerRecipe limits each chosen recipe; 0 disables the cap.
	CalorieCapPerRecipe int64 `json:"calorie_cap_per_recipe" bson:"calorie_cap_per_recipe" binding:"gte=0" example:"700"`
	DesiredMealCount    int   `json:"desired_meal_count" bson:"desired_meal_count" example:"5"`
	// ObjectiveWeights falls back to DefaultObjectiveWeights when all zero.
	ObjectiveWeights ObjectiveWeights `json:"objective_weights" bson:"objective_weights"`
	// TimeBudgetMS bounds the search; 0 means no limit.
	TimeBudgetMS int64 `json:"time_budget_ms,omitempty" bson:"time_budget_ms,omitempty" binding:"gte=0" example:"2000"`
} // @name Preferences

// Weights returns the effective objective weights.
func (p Preferences) Weights() ObjectiveWeights {
	if p.ObjectiveWeights.IsZero() {
		return DefaultObjectiveWeights()
	}
	return p.ObjectiveWeights
}
