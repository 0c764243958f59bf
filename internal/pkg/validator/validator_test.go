package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/pkg/errors"
)

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		name        string
		kind        domain.Kind
		body        string
		expected    domain.Patch
		expectedErr string
	}{
		{
			name:     "valid city is normalized",
			kind:     domain.CityKind,
			body:     `{"name": "  Boston ", "state_code": "ma"}`,
			expected: domain.Patch{"name": "Boston", "state_code": "MA"},
		},
		{
			name:     "state with optional fields",
			kind:     domain.StateKind,
			body:     `{"name": "New York", "state_code": "NY", "capital": "Albany", "population": 19450000}`,
			expected: domain.Patch{"name": "New York", "state_code": "NY", "capital": "Albany", "population": 19450000},
		},
		{
			name:        "missing required fields in declaration order",
			kind:        domain.CityKind,
			body:        `{}`,
			expectedErr: "Missing required fields: name, state_code",
		},
		{
			name:        "unexpected fields sorted",
			kind:        domain.CountryKind,
			body:        `{"name": "Canada", "iso_code": "CA", "zeta": 1, "alpha": 2}`,
			expectedErr: "Unexpected fields: alpha, zeta",
		},
		{
			name:        "blank name",
			kind:        domain.CountryKind,
			body:        `{"name": "   ", "iso_code": "CA"}`,
			expectedErr: "Fields cannot be empty: name",
		},
		{
			name:        "bad state code",
			kind:        domain.CityKind,
			body:        `{"name": "Boston", "state_code": "MAS"}`,
			expectedErr: "state_code must be exactly 2 uppercase letters",
		},
		{
			name:        "bad iso code",
			kind:        domain.CountryKind,
			body:        `{"name": "Canada", "iso_code": "C4"}`,
			expectedErr: "iso_code must be 2-3 uppercase letters",
		},
		{
			name:        "name too long",
			kind:        domain.CountryKind,
			body:        `{"name": "` + strings.Repeat("a", 101) + `", "iso_code": "CA"}`,
			expectedErr: "name must be at most 100 characters",
		},
		{
			name:        "population below one",
			kind:        domain.StateKind,
			body:        `{"name": "Texas", "state_code": "TX", "population": 0}`,
			expectedErr: "population must be a positive integer",
		},
		{
			name:        "population not an integer",
			kind:        domain.StateKind,
			body:        `{"name": "Texas", "state_code": "TX", "population": 1.5}`,
			expectedErr: "population must be an integer",
		},
		{
			name:        "population beyond integer column",
			kind:        domain.StateKind,
			body:        `{"name": "Texas", "state_code": "TX", "population": 3000000000}`,
			expectedErr: "population must be at most 2147483647",
		},
		{
			name:        "population exponent overflow",
			kind:        domain.StateKind,
			body:        `{"name": "Texas", "state_code": "TX", "population": 1e30}`,
			expectedErr: "population must be at most 2147483647",
		},
		{
			name:     "population at integer column limit",
			kind:     domain.StateKind,
			body:     `{"name": "Texas", "state_code": "TX", "population": 2147483647}`,
			expected: domain.Patch{"name": "Texas", "state_code": "TX", "population": 2147483647},
		},
		{
			name:        "null optional field",
			kind:        domain.StateKind,
			body:        `{"name": "Texas", "state_code": "TX", "capital": null}`,
			expectedErr: "capital must be a string",
		},
		{
			name:        "null required field",
			kind:        domain.CityKind,
			body:        `{"name": null, "state_code": "TX"}`,
			expectedErr: "Fields cannot be empty: name",
		},
		{
			name:        "wrong type for name",
			kind:        domain.CityKind,
			body:        `{"name": 42, "state_code": "TX"}`,
			expectedErr: "name must be a string",
		},
		{
			name:        "not an object",
			kind:        domain.CityKind,
			body:        `["Boston"]`,
			expectedErr: "Request body must be a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := DecodeFields(tt.kind, []byte(tt.body))
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrValidation))
				appErr, ok := errors.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.expectedErr, appErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, patch)
		})
	}
}

func TestDecodePatch(t *testing.T) {
	t.Run("subset of fields", func(t *testing.T) {
		patch, err := DecodePatch(domain.StateKind, []byte(`{"capital": " Austin "}`))
		require.NoError(t, err)
		assert.Equal(t, domain.Patch{"capital": "Austin"}, patch)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := DecodePatch(domain.StateKind, []byte(`{}`))
		require.Error(t, err)
		appErr, _ := errors.As(err)
		assert.Equal(t, "No fields to update", appErr.Message)
	})

	t.Run("null optional field", func(t *testing.T) {
		_, err := DecodePatch(domain.StateKind, []byte(`{"population": null}`))
		require.Error(t, err)
		appErr, _ := errors.As(err)
		assert.Equal(t, "population must be an integer", appErr.Message)
	})

	t.Run("population out of range", func(t *testing.T) {
		_, err := DecodePatch(domain.StateKind, []byte(`{"population": 3000000000}`))
		require.Error(t, err)
		appErr, _ := errors.As(err)
		assert.Equal(t, "population must be at most 2147483647", appErr.Message)
	})

	t.Run("unexpected field", func(t *testing.T) {
		_, err := DecodePatch(domain.CityKind, []byte(`{"population": 5}`))
		require.Error(t, err)
		appErr, _ := errors.As(err)
		assert.Equal(t, "Unexpected fields: population", appErr.Message)
	})
}

func TestValidate_Struct(t *testing.T) {
	type query struct {
		Limit int    `json:"limit" validate:"min=0,max=1000"`
		Order string `json:"order" validate:"omitempty,oneof=asc desc"`
	}

	assert.NoError(t, Validate(query{Limit: 10, Order: "asc"}))

	err := Validate(query{Limit: 5000})
	require.Error(t, err)
	appErr, _ := errors.As(err)
	assert.Equal(t, "limit must be at most 1000", appErr.Message)

	err = Validate(query{Order: "up"})
	require.Error(t, err)
	appErr, _ = errors.As(err)
	assert.Equal(t, "order must be one of: asc, desc", appErr.Message)
}
