package optimizer

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

const (
	reasonInfeasible = "no selection of the requested size satisfies the budget, supply and calorie constraints"
	reasonTimeout    = "time budget exhausted before a feasible selection was found"
)

// Reporter turns raw search results into solutions, re-checking every hard
// constraint against the original catalog first.
type Reporter struct {
	log zerolog.Logger
}

// NewReporter creates a Reporter logging violations to log.
func NewReporter(log zerolog.Logger) *Reporter {
	return &Reporter{log: log}
}

// Report builds the Solution for raw. It returns an *InvariantViolation when the
// selection or purchase plan breaks a constraint of the catalog.
func (rp *Reporter) Report(catalog model.Catalog, prefs model.Preferences, m *DecisionModel, raw RawResult) (model.Solution, error) {
	var sol model.Solution
	switch raw.Outcome {
	case OutcomeInfeasible:
		sol = model.NoSelection(model.StatusInfeasible, reasonInfeasible)
	case OutcomeTimeout:
		sol = model.NoSelection(model.StatusTimeout, reasonTimeout)
	default:
		var err error
		sol, err = rp.reportSelection(catalog, prefs, m, raw)
		if err != nil {
			rp.log.Error().
				Err(err).
				Str("outcome", raw.Outcome.String()).
				Int64("objective", raw.Objective).
				Interface("violation", err).
				Msg("Solution failed constraint re-check")
			return model.Solution{}, err
		}
	}

	sol.Excluded = append([]model.Exclusion(nil), m.Excluded...)
	sol.Warnings = append([]string(nil), m.Warnings...)
	sol.Stats = model.SolveStats{
		Nodes:     raw.Nodes,
		Pruned:    raw.Pruned,
		ElapsedMS: raw.Elapsed.Milliseconds(),
		Workers:   raw.Workers,
	}
	return sol, nil
}

func (rp *Reporter) reportSelection(catalog model.Catalog, prefs model.Preferences, m *DecisionModel, raw RawResult) (model.Solution, error) {
	chosenIDs := make([]string, 0, len(raw.Selected))
	for _, r := range raw.Selected {
		if r < 0 || r >= len(m.Recipes) {
			return model.Solution{}, &InvariantViolation{Check: "selection", Detail: fmt.Sprintf("candidate index %d out of range", r)}
		}
		chosenIDs = append(chosenIDs, m.Recipes[r].ID)
	}
	sort.Strings(chosenIDs)

	lots := make(map[string]int64, len(m.Ingredients))
	if len(raw.Lots) != len(m.Ingredients) {
		return model.Solution{}, &InvariantViolation{
			Check:     "purchase_plan",
			Detail:    fmt.Sprintf("%d lot entries for %d ingredients", len(raw.Lots), len(m.Ingredients)),
			ChosenIDs: chosenIDs,
		}
	}
	for i, n := range raw.Lots {
		lots[m.Ingredients[i].ID] = n
	}

	c := checker{
		catalog:   catalog,
		prefs:     prefs,
		lotSize:   m.LotSize,
		chosenIDs: chosenIDs,
		lots:      lots,
	}
	if err := c.run(raw.Objective); err != nil {
		return model.Solution{}, err
	}

	sol := model.Solution{
		Status:          model.StatusOptimal,
		ChosenRecipeIDs: chosenIDs,
		ChosenRecipes:   make([]model.ChosenRecipe, 0, len(chosenIDs)),
		Purchases:       c.purchases(),
		Totals:          c.totals(),
		Objective:       float64(raw.Objective) / float64(ScaleFactor),
	}
	if raw.Outcome == OutcomeBestEffort {
		sol.Status = model.StatusBestEffort
		sol.OptimalityGap = float64(raw.Gap) / float64(ScaleFactor)
	}
	for _, id := range chosenIDs {
		sol.ChosenRecipes = append(sol.ChosenRecipes, model.ChosenRecipe{ID: id, Name: c.recipes[id].Name})
	}
	return sol, nil
}

// checker re-derives every hard constraint from the catalog with its own
// indices, independent of the decision model's bookkeeping.
type checker struct {
	catalog   model.Catalog
	prefs     model.Preferences
	lotSize   int64
	chosenIDs []string
	lots      map[string]int64

	recipes     map[string]model.Recipe
	ingredients map[string]model.Ingredient
}

func (c *checker) violation(check, format string, args ...any) *InvariantViolation {
	return &InvariantViolation{
		Check:     check,
		Detail:    fmt.Sprintf(format, args...),
		ChosenIDs: c.chosenIDs,
		Lots:      c.lots,
	}
}

func (c *checker) run(objective int64) error {
	c.recipes = make(map[string]model.Recipe, len(c.catalog.Recipes))
	for _, r := range c.catalog.Recipes {
		c.recipes[r.ID] = r
	}
	c.ingredients = make(map[string]model.Ingredient, len(c.catalog.Ingredients))
	for _, ing := range c.catalog.Ingredients {
		c.ingredients[ing.ID] = ing
	}

	if len(c.chosenIDs) != c.prefs.DesiredMealCount {
		return c.violation("meal_count", "chose %d recipes, want %d", len(c.chosenIDs), c.prefs.DesiredMealCount)
	}

	allergies := toSet(c.catalog.Allergies)
	usage := make(map[string]int64)
	for i, id := range c.chosenIDs {
		if i > 0 && c.chosenIDs[i-1] == id {
			return c.violation("meal_count", "recipe %s chosen twice", id)
		}
		r, ok := c.recipes[id]
		if !ok {
			return c.violation("selection", "recipe %s not in catalog", id)
		}
		if cal, _ := r.Nutrient(model.NutrientCalories); c.prefs.CalorieCapPerRecipe > 0 && Round(cal) > c.prefs.CalorieCapPerRecipe {
			return c.violation("calorie_cap", "recipe %s has %d calories, cap %d", id, Round(cal), c.prefs.CalorieCapPerRecipe)
		}
		for _, req := range r.Ingredients {
			if _, banned := allergies[req.IngredientID]; banned {
				return c.violation("allergy", "recipe %s uses allergen %s", id, req.IngredientID)
			}
			usage[req.IngredientID] += Scale(req.Proportion)
		}
	}

	var spend int64
	for id, n := range c.lots {
		if n < 0 {
			return c.violation("purchase_plan", "negative lots %d for %s", n, id)
		}
		onHand := Scale(c.catalog.Inventory[id])
		bought := n * c.lotSize
		if usage[id] > onHand+bought {
			return c.violation("supply", "ingredient %s uses %d, has %d on hand and %d bought", id, usage[id], onHand, bought)
		}
		if n > 0 && onHand+bought-usage[id] >= c.lotSize {
			return c.violation("purchase_plan", "ingredient %s buys a surplus lot", id)
		}
		spend += c.ingredients[id].UnitPrice * bought
	}
	for id := range usage {
		if _, ok := c.lots[id]; !ok {
			return c.violation("supply", "ingredient %s has no purchase entry", id)
		}
	}
	if budget := Scale(c.prefs.Budget) * ScaleFactor; spend > budget {
		return c.violation("budget", "spend %d exceeds budget %d", spend, budget)
	}

	if want := c.objective(); want != objective {
		return c.violation("objective", "solver reported %d, catalog gives %d", objective, want)
	}
	return nil
}

// objective recomputes the scaled objective of the chosen recipes.
func (c *checker) objective() int64 {
	w := c.prefs.Weights()
	dislikes := toSet(c.catalog.Dislikes)

	var total int64
	for _, id := range c.chosenIDs {
		r := c.recipes[id]
		protein, _ := r.Nutrient(model.NutrientProtein)
		cholesterol, _ := r.Nutrient(model.NutrientCholesterol)
		disliked := 0
		for _, req := range r.Ingredients {
			if _, ok := dislikes[req.IngredientID]; ok {
				disliked++
			}
		}
		total += Scale(w.Protein)*Round(protein) - Scale(w.Cholesterol)*Round(cholesterol) - Scale(w.Dislike)*int64(disliked)
		for name, weight := range w.Nutrients {
			v, _ := r.Nutrient(name)
			total += Scale(weight) * Round(v)
		}
	}
	return total
}

func (c *checker) purchases() []model.Purchase {
	ids := make([]string, 0, len(c.lots))
	for id, n := range c.lots {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]model.Purchase, 0, len(ids))
	for _, id := range ids {
		bought := c.lots[id] * c.lotSize
		out = append(out, model.Purchase{
			IngredientID: id,
			Lots:         c.lots[id],
			Amount:       float64(bought) / float64(ScaleFactor),
			Cost:         toCurrency(c.ingredients[id].UnitPrice * bought),
		})
	}
	return out
}

func (c *checker) totals() model.Totals {
	var t model.Totals
	dislikes := toSet(c.catalog.Dislikes)
	for _, id := range c.chosenIDs {
		r := c.recipes[id]
		t.Protein += r.Nutrients[model.NutrientProtein]
		t.Calories += r.Nutrients[model.NutrientCalories]
		t.Cholesterol += r.Nutrients[model.NutrientCholesterol]
		for _, req := range r.Ingredients {
			if _, ok := dislikes[req.IngredientID]; ok {
				t.Dislikes++
			}
		}
	}
	var spend int64
	for id, n := range c.lots {
		spend += c.ingredients[id].UnitPrice * n * c.lotSize
	}
	t.Spend = toCurrency(spend)
	return t
}

// toCurrency converts minor units times ScaleFactor to major currency units.
func toCurrency(scaled int64) float64 {
	return float64(scaled) / float64(ScaleFactor*MinorUnitsPerMajor)
}
