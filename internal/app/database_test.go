//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/meal-planner-service/config"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	db := InitializeDatabase(config.DatabaseConfig{Enabled: false}, time.Hour)

	assert.Nil(t, db)
	assert.NoError(t, db.Close(context.Background()))
}

func TestBreakerConfig(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.DatabaseConfig
		wantFailures int
		wantSuccess  int
		wantCooldown time.Duration
	}{
		{
			name:         "zero values keep defaults",
			cfg:          config.DatabaseConfig{},
			wantFailures: 5,
			wantSuccess:  2,
			wantCooldown: 30 * time.Second,
		},
		{
			name: "configured values override",
			cfg: config.DatabaseConfig{
				CircuitBreakerFailureThreshold: 3,
				CircuitBreakerSuccessThreshold: 1,
				CircuitBreakerTimeout:          5 * time.Second,
			},
			wantFailures: 3,
			wantSuccess:  1,
			wantCooldown: 5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := breakerConfig(tt.cfg, "mongodb_catalogs")

			assert.Equal(t, "mongodb_catalogs", got.Name)
			assert.Equal(t, tt.wantFailures, got.FailureThreshold)
			assert.Equal(t, tt.wantSuccess, got.SuccessThreshold)
			assert.Equal(t, tt.wantCooldown, got.Cooldown)
		})
	}
}
