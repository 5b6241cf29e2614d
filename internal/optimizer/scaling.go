package optimizer

import (
	"math"
	"strconv"
	"strings"
)

const (
	// ScalePlaces is the fixed-point precision of proportions, inventory, budgets and weights.
	ScalePlaces = 2
	// ScaleFactor is 10^ScalePlaces.
	ScaleFactor int64 = 100
	// DefaultLotSize is one whole package expressed in scaled units.
	DefaultLotSize int64 = 100
	// MinorUnitsPerMajor converts a budget in major currency units to minor units.
	MinorUnitsPerMajor = 100

	// maxMagnitude bounds every numeric input. Products of two bounded values can
	// still exceed int64, so objective terms go through mulExact and addExact.
	maxMagnitude = 1e9
)

// Scale converts x to a fixed-point integer at ScalePlaces, rounding half-up.
func Scale(x float64) int64 {
	return roundDecimal(x, ScalePlaces)
}

// Round rounds x to the nearest integer, halves rounding up.
func Round(x float64) int64 {
	return roundDecimal(x, 0)
}

// roundDecimal returns x·10^places rounded half-up. The rounding is decided on
// the shortest decimal representation of x, so 1.005 scales to 101 even though
// its binary value sits just below 1.005. Negative values round half away from zero.
// x must be finite and within maxMagnitude.
func roundDecimal(x float64, places int) int64 {
	neg := x < 0
	s := strconv.FormatFloat(math.Abs(x), 'f', -1, 64)

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) <= places {
		frac += strings.Repeat("0", places+1-len(frac))
	}

	n, err := strconv.ParseInt(whole+frac[:places], 10, 64)
	if err != nil {
		return 0
	}
	if frac[places] >= '5' {
		n++
	}
	if neg {
		return -n
	}
	return n
}

// validNumber reports whether x is finite and within the supported magnitude.
func validNumber(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && math.Abs(x) <= maxMagnitude
}

// ceilDiv returns ceil(a/b) for a >= 0 and b > 0.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// lotsNeeded is the fewest lots covering usage beyond what is on hand.
func lotsNeeded(usage, onHand, lotSize int64) int64 {
	deficit := usage - onHand
	if deficit <= 0 {
		return 0
	}
	return ceilDiv(deficit, lotSize)
}

// mulExact returns a*b and whether it fits in int64.
func mulExact(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// addExact returns a+b and whether it fits in int64.
func addExact(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

// absInt64 returns |x| for x > math.MinInt64.
func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
