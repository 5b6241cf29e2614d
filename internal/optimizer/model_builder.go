package optimizer

import (
	"fmt"
	"sort"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

// DecisionModel is the scaled, pre-filtered formulation of one solve.
// It is immutable once built and safe to share between search workers.
type DecisionModel struct {
	LotSize   int64
	MealCount int
	// ScaledBudget is the budget in minor currency units times ScaleFactor, the
	// same unit as unitPrice·lots·LotSize.
	ScaledBudget int64
	CalorieCap   int64

	Ingredients []ModelIngredient
	// Recipes holds the search candidates sorted by id.
	Recipes  []ModelRecipe
	Excluded []model.Exclusion
	Warnings []string
}

// ModelIngredient is an ingredient with scaled inventory.
type ModelIngredient struct {
	ID        string
	UnitPrice int64
	Inventory int64
}

// Usage is the scaled amount of one ingredient a recipe consumes.
type Usage struct {
	Ingredient int
	Amount     int64
}

// ModelRecipe is a search candidate.
type ModelRecipe struct {
	ID          string
	Name        string
	Coefficient int64
	Usage       []Usage
	Calories    int64
	Protein     int64
	Cholesterol int64
	Dislikes    int
}

// lotCost is the scaled cost of covering usage of ingredient i.
func (m *DecisionModel) lotCost(i int, usage int64) int64 {
	ing := &m.Ingredients[i]
	return ing.UnitPrice * lotsNeeded(usage, ing.Inventory, m.LotSize) * m.LotSize
}

// scaledWeights are objective weights in fixed point.
type scaledWeights struct {
	protein     int64
	cholesterol int64
	dislike     int64
	nutrients   []nutrientWeight
}

type nutrientWeight struct {
	name   string
	weight int64
}

// BuildModel compiles a catalog and preferences into a DecisionModel.
//
// When fewer allergen-free recipes exist than meals requested, the partial
// model is returned together with an error wrapping ErrInsufficientRecipes so
// callers can still report the exclusions.
func BuildModel(catalog model.Catalog, prefs model.Preferences, lotSize int64) (*DecisionModel, error) {
	if catalog.Empty() {
		return nil, &ModelBuildError{Field: "recipes", Message: ErrEmptyCatalog.Error(), Err: ErrEmptyCatalog}
	}
	if lotSize <= 0 {
		return nil, invalid("lot_size", "must be positive, got %d", lotSize)
	}
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	weights, err := scaleWeights(prefs.Weights())
	if err != nil {
		return nil, err
	}

	m := &DecisionModel{
		LotSize:      lotSize,
		MealCount:    prefs.DesiredMealCount,
		ScaledBudget: Scale(prefs.Budget) * ScaleFactor,
		CalorieCap:   prefs.CalorieCapPerRecipe,
	}

	ingredientIndex, err := m.indexIngredients(catalog)
	if err != nil {
		return nil, err
	}
	if err := m.applyInventory(catalog.Inventory, ingredientIndex); err != nil {
		return nil, err
	}

	allergies := toSet(catalog.Allergies)
	dislikes := toSet(catalog.Dislikes)
	seen := make(map[string]struct{}, len(catalog.Recipes))
	nonAllergenic := 0
	// magnitude bounds |objective| of any selection.
	var magnitude int64

	for idx, r := range catalog.Recipes {
		field := fmt.Sprintf("recipes[%d]", idx)
		if r.ID == "" {
			return nil, invalid(field+".id", "must not be empty")
		}
		if _, dup := seen[r.ID]; dup {
			return nil, invalid(field+".id", "duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		mr, allergen, err := m.compileRecipe(field, r, ingredientIndex, allergies, dislikes, weights)
		if err != nil {
			return nil, err
		}
		if allergen {
			m.Excluded = append(m.Excluded, model.Exclusion{RecipeID: r.ID, Reason: model.ExcludedAllergen})
			continue
		}
		nonAllergenic++
		if m.CalorieCap > 0 && mr.Calories > m.CalorieCap {
			m.Excluded = append(m.Excluded, model.Exclusion{RecipeID: r.ID, Reason: model.ExcludedCalorieCap})
			continue
		}
		var ok bool
		if magnitude, ok = addExact(magnitude, absInt64(mr.Coefficient)); !ok {
			return nil, &ModelBuildError{
				Field:   "recipes",
				Message: "combined weighted nutrient score overflows; reduce the weights or nutrient values",
				Err:     ErrObjectiveOverflow,
			}
		}
		m.Recipes = append(m.Recipes, mr)
	}

	sort.Slice(m.Excluded, func(a, b int) bool { return m.Excluded[a].RecipeID < m.Excluded[b].RecipeID })
	if prefs.DesiredMealCount > nonAllergenic {
		return m, &ModelBuildError{
			Field:   "desired_meal_count",
			Message: fmt.Sprintf("%d meals requested but only %d recipes are free of allergens", prefs.DesiredMealCount, nonAllergenic),
			Err:     ErrInsufficientRecipes,
		}
	}

	sort.Slice(m.Recipes, func(a, b int) bool { return m.Recipes[a].ID < m.Recipes[b].ID })
	return m, nil
}

func validatePreferences(prefs model.Preferences) error {
	if prefs.DesiredMealCount < 1 {
		return invalid("desired_meal_count", "must be at least 1, got %d", prefs.DesiredMealCount)
	}
	if !validNumber(prefs.Budget) || prefs.Budget < 0 {
		return invalid("budget", "must be a non-negative number")
	}
	if prefs.CalorieCapPerRecipe < 0 {
		return invalid("calorie_cap_per_recipe", "must be non-negative (0 disables the cap)")
	}
	if prefs.TimeBudgetMS < 0 {
		return invalid("time_budget_ms", "must be non-negative (0 disables the limit)")
	}
	return nil
}

func scaleWeights(w model.ObjectiveWeights) (scaledWeights, error) {
	named := []struct {
		field string
		value float64
	}{
		{"objective_weights.protein", w.Protein},
		{"objective_weights.cholesterol", w.Cholesterol},
		{"objective_weights.dislike", w.Dislike},
	}
	for _, n := range named {
		if !validNumber(n.value) || n.value < 0 {
			return scaledWeights{}, invalid(n.field, "must be a non-negative number")
		}
	}

	sw := scaledWeights{
		protein:     Scale(w.Protein),
		cholesterol: Scale(w.Cholesterol),
		dislike:     Scale(w.Dislike),
	}
	names := make([]string, 0, len(w.Nutrients))
	for name := range w.Nutrients {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := w.Nutrients[name]
		if !validNumber(v) {
			return scaledWeights{}, invalid("objective_weights.nutrients."+name, "must be a finite number")
		}
		sw.nutrients = append(sw.nutrients, nutrientWeight{name: name, weight: Scale(v)})
	}
	return sw, nil
}

func (m *DecisionModel) indexIngredients(catalog model.Catalog) (map[string]int, error) {
	index := make(map[string]int, len(catalog.Ingredients))
	m.Ingredients = make([]ModelIngredient, 0, len(catalog.Ingredients))

	for idx, ing := range catalog.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", idx)
		if ing.ID == "" {
			return nil, invalid(field+".id", "must not be empty")
		}
		if _, dup := index[ing.ID]; dup {
			return nil, invalid(field+".id", "duplicate ingredient id %q", ing.ID)
		}
		if ing.UnitPrice < 0 || ing.UnitPrice > maxMagnitude {
			return nil, invalid(field+".unit_price", "must be between 0 and %.0f", maxMagnitude)
		}
		if ing.PriceDefaulted {
			m.warnf("ingredient %s has no unit_price, assuming %d", ing.ID, model.DefaultUnitPrice)
		}
		index[ing.ID] = len(m.Ingredients)
		m.Ingredients = append(m.Ingredients, ModelIngredient{ID: ing.ID, UnitPrice: ing.UnitPrice})
	}
	return index, nil
}

// applyInventory scales amounts on hand. Ingredients without an entry have
// nothing on hand.
func (m *DecisionModel) applyInventory(inventory map[string]float64, index map[string]int) error {
	ids := make([]string, 0, len(inventory))
	for id := range inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		amount := inventory[id]
		if !validNumber(amount) || amount < 0 {
			return invalid("inventory."+id, "must be a non-negative number")
		}
		i, ok := index[id]
		if !ok {
			m.warnf("inventory lists unknown ingredient %s, ignored", id)
			continue
		}
		m.Ingredients[i].Inventory = Scale(amount)
	}
	return nil
}

func (m *DecisionModel) compileRecipe(
	field string,
	r model.Recipe,
	index map[string]int,
	allergies, dislikes map[string]struct{},
	weights scaledWeights,
) (ModelRecipe, bool, error) {
	mr := ModelRecipe{ID: r.ID, Name: r.Name}
	allergen := false
	used := make(map[string]struct{}, len(r.Ingredients))

	for j, req := range r.Ingredients {
		reqField := fmt.Sprintf("%s.ingredients[%d]", field, j)
		i, ok := index[req.IngredientID]
		if !ok {
			return mr, false, invalid(reqField+".ingredient_id", "unknown ingredient %q", req.IngredientID)
		}
		if _, dup := used[req.IngredientID]; dup {
			return mr, false, invalid(reqField+".ingredient_id", "ingredient %q listed twice", req.IngredientID)
		}
		used[req.IngredientID] = struct{}{}

		if !validNumber(req.Proportion) || req.Proportion < 0 || req.Proportion > 1 {
			return mr, false, invalid(reqField+".proportion", "must be within [0,1], got %v", req.Proportion)
		}
		if req.ProportionDefaulted {
			m.warnf("recipe %s ingredient %s has no proportion, assuming one package", r.ID, req.IngredientID)
		}
		if _, ok := allergies[req.IngredientID]; ok {
			allergen = true
		}
		if _, ok := dislikes[req.IngredientID]; ok {
			mr.Dislikes++
		}
		if amount := Scale(req.Proportion); amount > 0 {
			mr.Usage = append(mr.Usage, Usage{Ingredient: i, Amount: amount})
		}
	}

	for kind, v := range r.Nutrients {
		if !validNumber(v) {
			return mr, false, invalid(field+".nutrients."+kind, "must be a finite number")
		}
	}
	mr.Protein = m.nutrient(r, model.NutrientProtein)
	mr.Calories = m.nutrient(r, model.NutrientCalories)
	mr.Cholesterol = m.nutrient(r, model.NutrientCholesterol)

	terms := []struct {
		weight int64
		value  int64
	}{
		{weights.protein, mr.Protein},
		{-weights.cholesterol, mr.Cholesterol},
		{-weights.dislike, int64(mr.Dislikes)},
	}
	for _, nw := range weights.nutrients {
		v, _ := r.Nutrient(nw.name)
		terms = append(terms, struct {
			weight int64
			value  int64
		}{nw.weight, Round(v)})
	}

	var coefficient int64
	for _, t := range terms {
		product, ok := mulExact(t.weight, t.value)
		if ok {
			coefficient, ok = addExact(coefficient, product)
		}
		if !ok {
			return mr, false, &ModelBuildError{
				Field:   field + ".nutrients",
				Message: "weighted nutrient score overflows; reduce the weights or nutrient values",
				Err:     ErrObjectiveOverflow,
			}
		}
	}
	mr.Coefficient = coefficient
	return mr, allergen, nil
}

// nutrient returns the rounded nutrient value, warning when it is missing.
func (m *DecisionModel) nutrient(r model.Recipe, kind string) int64 {
	v, ok := r.Nutrient(kind)
	if !ok {
		m.warnf("recipe %s has no %s value, assuming 0", r.ID, kind)
		return 0
	}
	return Round(v)
}

func (m *DecisionModel) warnf(format string, args ...any) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, args...))
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
