//go:build integration

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDBName(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantPrefix string
	}{
		{name: "subtest separators", in: "TestPlan/stored catalog", wantPrefix: "TestPlan_stored_catalog_"},
		{name: "forbidden characters", in: `a.b$c\d"e`, wantPrefix: "a_b_c_d_e_"},
		{name: "long names truncated", in: strings.Repeat("x", 80), wantPrefix: strings.Repeat("x", maxDBName) + "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeDBName(tt.in)
			assert.True(t, strings.HasPrefix(got, tt.wantPrefix), got)
			assert.LessOrEqual(t, len(got), 63)
		})
	}

	assert.NotEqual(t, SanitizeDBName("same"), SanitizeDBName("same"))
}
