package optimizer

import (
	"fmt"
	"math/rand"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

func recipe(id string, calories, protein, cholesterol float64, uses ...model.RecipeIngredient) model.Recipe {
	return model.Recipe{
		ID:   id,
		Name: "Recipe " + id,
		Nutrients: map[string]float64{
			model.NutrientCalories:    calories,
			model.NutrientProtein:     protein,
			model.NutrientCholesterol: cholesterol,
		},
		Ingredients: uses,
	}
}

func use(ingredientID string, proportion float64) model.RecipeIngredient {
	return model.RecipeIngredient{IngredientID: ingredientID, Proportion: proportion}
}

func ingredient(id string, unitPrice int64) model.Ingredient {
	return model.Ingredient{ID: id, Name: id, UnitPrice: unitPrice}
}

// calorieCapCatalog has R3 above a 600 calorie cap.
func calorieCapCatalog() model.Catalog {
	return model.Catalog{
		Recipes: []model.Recipe{
			recipe("R1", 500, 30, 0, use("rice", 0.5)),
			recipe("R2", 300, 10, 0, use("beans", 0.5)),
			recipe("R3", 700, 5, 0, use("rice", 0.25)),
		},
		Ingredients: []model.Ingredient{
			ingredient("beans", 150),
			ingredient("rice", 200),
		},
	}
}

func ampleBudget(n int) model.Preferences {
	return model.Preferences{
		Budget:           1000,
		DesiredMealCount: n,
	}
}

// randomCatalog generates a reproducible catalog for cross-validation.
func randomCatalog(rng *rand.Rand, recipes, ingredients int) model.Catalog {
	c := model.Catalog{Inventory: map[string]float64{}}
	for i := range ingredients {
		id := fmt.Sprintf("i%02d", i)
		c.Ingredients = append(c.Ingredients, ingredient(id, int64(50+rng.Intn(500))))
		if rng.Intn(3) == 0 {
			c.Inventory[id] = float64(rng.Intn(150)) / 100
		}
	}
	for r := range recipes {
		var uses []model.RecipeIngredient
		for _, i := range rng.Perm(ingredients)[:1+rng.Intn(3)] {
			uses = append(uses, use(fmt.Sprintf("i%02d", i), float64(5+rng.Intn(96))/100))
		}
		c.Recipes = append(c.Recipes, recipe(
			fmt.Sprintf("r%02d", r),
			float64(200+rng.Intn(700)),
			float64(rng.Intn(60)),
			float64(rng.Intn(300)),
			uses...,
		))
	}
	if rng.Intn(2) == 0 {
		c.Allergies = []string{fmt.Sprintf("i%02d", rng.Intn(ingredients))}
	}
	c.Dislikes = []string{fmt.Sprintf("i%02d", rng.Intn(ingredients))}
	return c
}
