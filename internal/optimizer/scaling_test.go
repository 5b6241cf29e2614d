package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected int64
	}{
		{name: "zero", in: 0, expected: 0},
		{name: "whole number", in: 12, expected: 1200},
		{name: "two decimals exact", in: 0.25, expected: 25},
		{name: "half rounds up", in: 0.125, expected: 13},
		{name: "below half rounds down", in: 0.124, expected: 12},
		{name: "tiny half rounds up", in: 0.005, expected: 1},
		{name: "binary drift does not truncate", in: 1.005, expected: 101},
		{name: "long fraction uses third digit", in: 0.3349999, expected: 33},
		{name: "one package", in: 1, expected: 100},
		{name: "negative rounds away from zero", in: -0.125, expected: -13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Scale(tt.in))
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected int64
	}{
		{name: "integer", in: 500, expected: 500},
		{name: "half rounds up", in: 599.5, expected: 600},
		{name: "below half", in: 600.49, expected: 600},
		{name: "small fraction", in: 0.4, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Round(tt.in))
		})
	}
}

func TestLotsNeeded(t *testing.T) {
	tests := []struct {
		name     string
		usage    int64
		onHand   int64
		lotSize  int64
		expected int64
	}{
		{name: "covered by inventory", usage: 50, onHand: 50, lotSize: 100, expected: 0},
		{name: "nothing used", usage: 0, onHand: 0, lotSize: 100, expected: 0},
		{name: "partial lot rounds up", usage: 101, onHand: 0, lotSize: 100, expected: 2},
		{name: "exact lots", usage: 300, onHand: 100, lotSize: 100, expected: 2},
		{name: "small lot size", usage: 75, onHand: 0, lotSize: 25, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lotsNeeded(tt.usage, tt.onHand, tt.lotSize))
		})
	}
}
