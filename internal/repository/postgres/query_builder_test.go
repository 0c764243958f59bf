package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-directory/internal/domain"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"new", "new"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c:\dir`, `c:\\dir`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeLike(tt.in))
	}
}

func TestBuildSearchQuery(t *testing.T) {
	filter := domain.CityKind.NewFilter(map[string]string{"name": "new_", "state_code": " ny "})

	query, args, err := buildSearchQuery(domain.CityKind, filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT id, name, state_code FROM cities WHERE")
	assert.Contains(t, query, "name ILIKE $1")
	assert.Contains(t, query, "UPPER(state_code) = UPPER($2)")
	assert.Contains(t, query, "ORDER BY name ASC, state_code ASC")
	assert.Equal(t, []interface{}{`%new\_%`, "ny"}, args)
}

func TestBuildListQuery(t *testing.T) {
	t.Run("without pagination", func(t *testing.T) {
		query, args, err := buildListQuery(domain.CountryKind, domain.ListOptions{}).ToSql()
		require.NoError(t, err)
		assert.Equal(t, "SELECT id, name, iso_code FROM countries ORDER BY name ASC", query)
		assert.Empty(t, args)
	})

	t.Run("paginated and sorted", func(t *testing.T) {
		opts := domain.ListOptions{Page: 3, Limit: 10, SortBy: "population", Order: domain.SortDesc}
		query, _, err := buildListQuery(domain.StateKind, opts).ToSql()
		require.NoError(t, err)
		assert.Contains(t, query, "ORDER BY population DESC NULLS LAST, name ASC")
		assert.Contains(t, query, "LIMIT 10 OFFSET 20")
	})

	t.Run("unknown sort column falls back to name", func(t *testing.T) {
		opts := domain.ListOptions{SortBy: "name; DROP TABLE cities"}
		query, _, err := buildListQuery(domain.CityKind, opts).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, query, "DROP")
		assert.Contains(t, query, "ORDER BY name ASC, state_code ASC")
	})
}

func TestBuildUpdateQuery(t *testing.T) {
	key := domain.Key{Name: "Boston", StateCode: "MA"}
	patch := domain.Patch{"name": "Cambridge"}

	query, args, err := buildUpdateQuery(domain.CityKind, key, patch, selectColumns(domain.CityKind)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE cities SET updated_at = NOW(), name = $1")
	assert.Contains(t, query, "WHERE name = $2 AND state_code = $3")
	assert.Contains(t, query, "RETURNING id, name, state_code")
	assert.Equal(t, []interface{}{"Cambridge", "Boston", "MA"}, args)
}

func TestInsertQuery(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO states (id, name, state_code, capital, population) VALUES (:id, :name, :state_code, :capital, :population)",
		insertQuery(domain.StateKind))
}

func TestUniqueConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "states_state_code_key"}
	constraint, ok := uniqueConstraint(fmt.Errorf("insert: %w", pgErr))
	assert.True(t, ok)
	assert.Equal(t, "states_state_code_key", constraint)

	pqErr := &pq.Error{Code: "23505", Constraint: "cities_name_state_code_key"}
	constraint, ok = uniqueConstraint(pqErr)
	assert.True(t, ok)
	assert.Equal(t, "cities_name_state_code_key", constraint)

	_, ok = uniqueConstraint(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = uniqueConstraint(errors.New("connection reset"))
	assert.False(t, ok)
}
