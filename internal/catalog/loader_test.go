package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

const jsonDoc = `{
  "recipes": [
    {"id": "r-chili", "name": "Chili", "nutrients": {"calories": 610, "protein": 38, "cholesterol": 95},
     "ingredients": [{"ingredient_id": "beef", "proportion": 0.5}, {"ingredient_id": "beans"}]}
  ],
  "ingredients": [
    {"id": "beef", "name": "ground beef", "unit_price": 649},
    {"id": "beans", "name": "kidney beans"}
  ],
  "inventory": {"beans": 1.5},
  "allergies": ["peanut"],
  "dislikes": ["beef"]
}`

const yamlDoc = `
recipes:
  - id: r-chili
    name: Chili
    nutrients: {calories: 610, protein: 38, cholesterol: 95}
    ingredients:
      - ingredient_id: beef
        proportion: 0.5
      - ingredient_id: beans
ingredients:
  - id: beef
    name: ground beef
    unit_price: 649
  - id: beans
    name: kidney beans
inventory:
  beans: 1.5
allergies: [peanut]
dislikes: [beef]
`

func expectedCatalog() model.Catalog {
	return model.Catalog{
		Recipes: []model.Recipe{{
			ID:        "r-chili",
			Name:      "Chili",
			Nutrients: map[string]float64{"calories": 610, "protein": 38, "cholesterol": 95},
			Ingredients: []model.RecipeIngredient{
				{IngredientID: "beef", Proportion: 0.5},
				{IngredientID: "beans", Proportion: model.DefaultProportion, ProportionDefaulted: true},
			},
		}},
		Ingredients: []model.Ingredient{
			{ID: "beef", Name: "ground beef", UnitPrice: 649},
			{ID: "beans", Name: "kidney beans", UnitPrice: model.DefaultUnitPrice, PriceDefaulted: true},
		},
		Inventory: map[string]float64{"beans": 1.5},
		Allergies: []string{"peanut"},
		Dislikes:  []string{"beef"},
	}
}

func TestParse_FormatsAgree(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{name: "json", data: jsonDoc, format: FormatJSON},
		{name: "yaml", data: yamlDoc, format: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, expectedCatalog(), got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{name: "malformed json", data: `{"recipes": [`, format: FormatJSON},
		{name: "malformed yaml", data: "recipes: [\n  - id: x\n   name", format: FormatYAML},
		{name: "empty yaml", data: "", format: FormatYAML},
		{name: "wrong type", data: `{"recipes": {"id": "x"}}`, format: FormatJSON},
		{name: "unknown format", data: `{}`, format: Format("toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "catalog.json", want: FormatJSON},
		{path: "weekly/catalog.YAML", want: FormatYAML},
		{path: "catalog.yml", want: FormatYAML},
		{path: "catalog.toml", wantErr: true},
		{path: "catalog", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0o600))

	got, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, expectedCatalog(), got)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadInto_Preferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yml")
	doc := "budget: 45.5\ncalorie_cap_per_recipe: 800\ndesired_meal_count: 4\nobjective_weights:\n  protein: 2\n  nutrients: {fiber: 1.5}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	var prefs model.Preferences
	require.NoError(t, LoadInto(path, &prefs))

	assert.Equal(t, model.Preferences{
		Budget:              45.5,
		CalorieCapPerRecipe: 800,
		DesiredMealCount:    4,
		ObjectiveWeights: model.ObjectiveWeights{
			Protein:   2,
			Nutrients: map[string]float64{"fiber": 1.5},
		},
	}, prefs)
}
