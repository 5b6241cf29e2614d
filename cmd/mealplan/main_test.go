package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

const catalogYAML = `
recipes:
  - id: R1
    name: Rice bowl
    nutrients: {calories: 500, protein: 30, cholesterol: 0}
    ingredients:
      - {ingredient_id: rice, proportion: 0.5}
  - id: R2
    name: Bean stew
    nutrients: {calories: 300, protein: 10, cholesterol: 0}
    ingredients:
      - {ingredient_id: beans, proportion: 0.5}
  - id: R3
    name: Peanut noodles
    nutrients: {calories: 450, protein: 20, cholesterol: 0}
    ingredients:
      - {ingredient_id: peanuts, proportion: 0.5}
ingredients:
  - {id: beans, name: beans, unit_price: 150}
  - {id: rice, name: rice, unit_price: 200}
  - {id: peanuts, name: peanuts, unit_price: 300}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", catalogYAML)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStatus model.Status
		wantChosen []string
	}{
		{
			name:       "picks best two",
			args:       []string{"--catalog", catalogPath, "--meals", "2", "--budget", "100", "--workers", "1"},
			wantCode:   exitOK,
			wantStatus: model.StatusOptimal,
			wantChosen: []string{"R1", "R3"},
		},
		{
			name:       "allergy excludes recipe",
			args:       []string{"-c", catalogPath, "-n", "2", "-b", "100", "--allergy", "peanuts"},
			wantCode:   exitOK,
			wantStatus: model.StatusOptimal,
			wantChosen: []string{"R1", "R2"},
		},
		{
			name:       "budget too small",
			args:       []string{"-c", catalogPath, "-n", "2", "-b", "1"},
			wantCode:   exitInfeasible,
			wantStatus: model.StatusInfeasible,
		},
		{
			name:       "preferences file",
			args:       []string{"-c", catalogPath, "-p", writeFile(t, "prefs.json", `{"budget": 100, "desired_meal_count": 1, "calorie_cap_per_recipe": 400}`)},
			wantCode:   exitOK,
			wantStatus: model.StatusOptimal,
			wantChosen: []string{"R2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), tt.args, &stdout, &stderr)
			require.Equal(t, tt.wantCode, code, stderr.String())

			var sol model.Solution
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &sol))
			assert.Equal(t, tt.wantStatus, sol.Status)
			if tt.wantChosen != nil {
				if diff := cmp.Diff(tt.wantChosen, sol.ChosenRecipeIDs); diff != "" {
					t.Errorf("chosen recipes mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	catalogPath := writeFile(t, "catalog.yaml", catalogYAML)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "missing catalog flag", args: []string{"--meals", "2"}, wantCode: exitUsage},
		{name: "unknown flag", args: []string{"--catalog", catalogPath, "--colour", "blue"}, wantCode: exitUsage},
		{name: "negative budget", args: []string{"--catalog", catalogPath, "--budget=-1"}, wantCode: exitUsage},
		{name: "meal count out of range", args: []string{"--catalog", catalogPath, "--meals", "0"}, wantCode: exitUsage},
		{name: "bad lot size", args: []string{"--catalog", catalogPath, "--lot-size", "0"}, wantCode: exitUsage},
		{name: "unreadable catalog", args: []string{"--catalog", filepath.Join(t.TempDir(), "none.json")}, wantCode: exitError},
		{name: "unsupported extension", args: []string{"--catalog", writeFile(t, "catalog.txt", "x")}, wantCode: exitError},
		{name: "help", args: []string{"--help"}, wantCode: exitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout.String())
		})
	}
}
