package service

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/guttosm/meal-planner-service/internal/domain/model"
)

type fingerprintInput struct {
	Catalog     model.Catalog     `json:"catalog"`
	Defaulted   []string          `json:"defaulted,omitempty"`
	Preferences model.Preferences `json:"preferences"`
	LotSize     int64             `json:"lot_size"`
}

// Fingerprint returns a stable hex digest of everything that determines an
// exhaustive solve. The time budget is left out: it only changes results
// that are never cached.
func Fingerprint(catalog model.Catalog, prefs model.Preferences, lotSize int64) (string, error) {
	prefs.TimeBudgetMS = 0
	in := fingerprintInput{
		Catalog:     catalog,
		Defaulted:   defaultedFields(catalog),
		Preferences: prefs,
		LotSize:     lotSize,
	}

	// encoding/json sorts map keys, so equal inputs encode identically.
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// defaultedFields lists values filled in by document defaults; they change
// the warnings of a solution but not the encoded catalog.
func defaultedFields(catalog model.Catalog) []string {
	var out []string
	for _, ing := range catalog.Ingredients {
		if ing.PriceDefaulted {
			out = append(out, "ingredient:"+ing.ID)
		}
	}
	for _, r := range catalog.Recipes {
		for _, ri := range r.Ingredients {
			if ri.ProportionDefaulted {
				out = append(out, "recipe:"+r.ID+":"+ri.IngredientID)
			}
		}
	}
	return out
}
