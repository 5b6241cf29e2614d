//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("collections are wired", func(t *testing.T) {
		assert.NotNil(t, db.Catalogs)
		assert.NotNil(t, db.PlanRuns)
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("plan runs TTL can be replaced", func(t *testing.T) {
		require.NoError(t, db.SetPlanRunsTTL(ctx, 30*24*time.Hour))
		require.NoError(t, db.SetPlanRunsTTL(ctx, 7*24*time.Hour))

		cursor, err := db.PlanRuns.Indexes().List(ctx)
		require.NoError(t, err)
		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		var expireAfter interface{}
		for _, idx := range indexes {
			if idx["name"] == planRunsTTLIndex {
				expireAfter = idx["expireAfterSeconds"]
			}
		}
		assert.EqualValues(t, 7*24*60*60, expireAfter)
	})

	t.Run("non-positive retention is rejected", func(t *testing.T) {
		assert.Error(t, db.SetPlanRunsTTL(ctx, 0))
	})
}
