package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/pkg/errors"
)

func intPtr(i int) *int {
	return &i
}

func seedCities(t *testing.T) *entityRepository[domain.City] {
	t.Helper()
	repo := NewCityRepository(zap.NewNop()).(*entityRepository[domain.City])
	ctx := context.Background()
	for _, c := range []domain.City{
		{Name: "New York", StateCode: "NY"},
		{Name: "New Orleans", StateCode: "LA"},
		{Name: "Boston", StateCode: "MA"},
		{Name: "Portland", StateCode: "OR"},
		{Name: "Portland", StateCode: "ME"},
	} {
		_, err := repo.Create(ctx, c)
		require.NoError(t, err)
	}
	return repo
}

func TestEntityRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewCityRepository(zap.NewNop())

	id, err := repo.Create(ctx, domain.City{Name: " Austin ", StateCode: "tx"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := repo.Get(ctx, domain.Key{Name: "Austin", StateCode: "TX"})
	require.NoError(t, err)
	assert.Equal(t, domain.City{ID: id, Name: "Austin", StateCode: "TX"}, got)

	t.Run("lookup code is case-insensitive", func(t *testing.T) {
		_, err := repo.Get(ctx, domain.Key{Name: "Austin", StateCode: "tx"})
		assert.NoError(t, err)
	})

	t.Run("duplicate identity conflicts", func(t *testing.T) {
		_, err := repo.Create(ctx, domain.City{Name: "Austin", StateCode: "TX"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConflict))
		appErr, _ := errors.As(err)
		assert.Equal(t, "City already exists: Austin, TX", appErr.Message)
	})

	t.Run("same name in another state is allowed", func(t *testing.T) {
		_, err := repo.Create(ctx, domain.City{Name: "Austin", StateCode: "MN"})
		assert.NoError(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := repo.Get(ctx, domain.Key{Name: "Boston", StateCode: "MA"})
		require.Error(t, err)
		appErr, _ := errors.As(err)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Equal(t, "No such city: Boston, MA", appErr.Message)
	})
}

func TestEntityRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := seedCities(t)

	t.Run("rename", func(t *testing.T) {
		updated, err := repo.Update(ctx, domain.Key{Name: "Boston", StateCode: "MA"}, domain.Patch{"name": "Cambridge"})
		require.NoError(t, err)
		assert.Equal(t, "Cambridge", updated.Name)

		_, err = repo.Get(ctx, domain.Key{Name: "Boston", StateCode: "MA"})
		assert.True(t, errors.Is(err, errors.ErrNotFound))

		got, err := repo.Get(ctx, domain.Key{Name: "Cambridge", StateCode: "MA"})
		require.NoError(t, err)
		assert.Equal(t, updated.ID, got.ID)
	})

	t.Run("rename onto existing identity conflicts", func(t *testing.T) {
		_, err := repo.Update(ctx, domain.Key{Name: "Portland", StateCode: "ME"}, domain.Patch{"state_code": "OR"})
		assert.True(t, errors.Is(err, errors.ErrConflict))

		// исходная запись на месте
		_, err = repo.Get(ctx, domain.Key{Name: "Portland", StateCode: "ME"})
		assert.NoError(t, err)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := repo.Update(ctx, domain.Key{Name: "Nowhere", StateCode: "ZZ"}, domain.Patch{"name": "X"})
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

func TestEntityRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := seedCities(t)
	key := domain.Key{Name: "New York", StateCode: "NY"}

	require.NoError(t, repo.Delete(ctx, key))

	_, err := repo.Get(ctx, key)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = repo.Delete(ctx, key)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	found, err := repo.Search(ctx, domain.CityKind.NewFilter(map[string]string{"name": "new"}))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "New Orleans", found[0].Name)
}

func TestEntityRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := seedCities(t)

	tests := []struct {
		name     string
		params   map[string]string
		expected []string
	}{
		{"substring is case-insensitive", map[string]string{"name": "NEW"}, []string{"New Orleans, LA", "New York, NY"}},
		{"exact code", map[string]string{"state_code": "or"}, []string{"Portland, OR"}},
		{"and of both", map[string]string{"name": "port", "state_code": "ME"}, []string{"Portland, ME"}},
		{"no match", map[string]string{"name": "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, domain.CityKind.NewFilter(tt.params))
			require.NoError(t, err)
			keys := make([]string, 0, len(found))
			for _, c := range found {
				keys = append(keys, c.EnvelopeKey())
			}
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func TestEntityRepository_ListPagination(t *testing.T) {
	ctx := context.Background()
	repo := seedCities(t)

	all, total, err := repo.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, all, 5)
	assert.Equal(t, "Boston", all[0].Name)

	page, total, err := repo.List(ctx, domain.ListOptions{Page: 2, Limit: 2, SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "New York", page[0].Name)
	assert.Equal(t, "Portland, ME", page[1].EnvelopeKey())

	empty, _, err := repo.List(ctx, domain.ListOptions{Page: 10, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)

	desc, _, err := repo.List(ctx, domain.ListOptions{SortBy: "state_code", Order: domain.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, "OR", desc[0].StateCode)
}

func TestStateRepository_UniqueStateCode(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(zap.NewNop())

	_, err := repo.Create(ctx, domain.State{Name: "Texas", StateCode: "TX", Population: intPtr(29000000)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.State{Name: "Ohio", StateCode: "OH", Population: intPtr(11700000)})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.State{Name: "Texas Two", StateCode: "tx"})
	assert.True(t, errors.Is(err, errors.ErrConflict))

	_, err = repo.Update(ctx, domain.Key{Name: "Ohio"}, domain.Patch{"state_code": "TX"})
	assert.True(t, errors.Is(err, errors.ErrConflict))

	// собственный код при обновлении не конфликтует
	updated, err := repo.Update(ctx, domain.Key{Name: "Ohio"}, domain.Patch{"state_code": "OH", "capital": "Columbus"})
	require.NoError(t, err)
	assert.Equal(t, "Columbus", updated.Capital)

	byPopulation, _, err := repo.List(ctx, domain.ListOptions{SortBy: "population", Order: domain.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, "Texas", byPopulation[0].Name)
}

func TestStatsRepository(t *testing.T) {
	ctx := context.Background()
	cities := seedCities(t)
	countries := NewCountryRepository(zap.NewNop())
	_, err := countries.Create(ctx, domain.Country{Name: "Canada", ISOCode: "CA"})
	require.NoError(t, err)
	states := NewStateRepository(zap.NewNop())

	stats, err := NewStatsRepository(cities, countries, states).GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Cities)
	assert.Equal(t, 1, stats.Countries)
	assert.Equal(t, 0, stats.States)
	assert.False(t, stats.LastUpdated.IsZero())
}
