package optimizer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCatalog is returned when the catalog contains no recipes.
	ErrEmptyCatalog = errors.New("catalog has no recipes")
	// ErrInsufficientRecipes is returned when fewer recipes survive allergy
	// filtering than the desired meal count.
	ErrInsufficientRecipes = errors.New("not enough recipes without allergens")
	// ErrObjectiveOverflow is returned when weights times nutrient values do
	// not fit the fixed-point objective.
	ErrObjectiveOverflow = errors.New("objective overflows int64")
	// ErrInvalidInput classifies malformed catalog or preference values.
	ErrInvalidInput = errors.New("invalid input")
)

// ModelBuildError reports catalog or preference input that cannot be compiled
// into a decision model.
type ModelBuildError struct {
	Field   string
	Message string
	Err     error
}

func (e *ModelBuildError) Error() string {
	if e.Field == "" {
		return "model build: " + e.Message
	}
	return "model build: " + e.Field + ": " + e.Message
}

func (e *ModelBuildError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) *ModelBuildError {
	return &ModelBuildError{Field: field, Message: fmt.Sprintf(format, args...), Err: ErrInvalidInput}
}

// InvariantViolation means a produced solution broke a hard constraint when
// re-checked against the catalog. It always indicates a builder or solver defect.
type InvariantViolation struct {
	Check     string
	Detail    string
	ChosenIDs []string
	Lots      map[string]int64
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s: %s (chosen=%s)", e.Check, e.Detail, strings.Join(e.ChosenIDs, ","))
}

// IsInvariantViolation reports whether err wraps an *InvariantViolation.
func IsInvariantViolation(err error) bool {
	var v *InvariantViolation
	return errors.As(err, &v)
}
