package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
)

func TestLocalCacheRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLocalCacheRepository(time.Minute, zap.NewNop())

	t.Run("miss returns nil without error", func(t *testing.T) {
		data, err := repo.Get(ctx, "absent")
		assert.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("set get delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))

		data, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), data)

		require.NoError(t, repo.Delete(ctx, "k"))
		data, err = repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("incr starts at one", func(t *testing.T) {
		n, err := repo.Incr(ctx, VersionKey("cities"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.Incr(ctx, VersionKey("cities"))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		data, err := repo.Get(ctx, VersionKey("cities"))
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), data)
	})

	t.Run("stats round trip", func(t *testing.T) {
		stats, err := repo.GetStats(ctx)
		require.NoError(t, err)
		assert.Nil(t, stats)

		in := &domain.Statistics{Cities: 3, Countries: 2, States: 1, LastUpdated: time.Now().UTC().Truncate(time.Second)}
		require.NoError(t, repo.SetStats(ctx, in, time.Minute))

		out, err := repo.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "geo:states:version", VersionKey("states"))
	assert.Equal(t, "geo:cities:v7:search:name=new", EntryKey("cities", 7, "search", "name=new"))
}
