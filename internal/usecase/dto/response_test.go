package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-directory/internal/domain"
)

func TestListResponse_MarshalJSON(t *testing.T) {
	resp := ListResponse[domain.City]{
		Plural: "cities",
		Records: []domain.City{
			{ID: "1", Name: "Portland", StateCode: "ME"},
			{ID: "2", Name: "Portland", StateCode: "OR"},
		},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"cities": {
			"Portland, ME": {"id": "1", "name": "Portland", "state_code": "ME"},
			"Portland, OR": {"id": "2", "name": "Portland", "state_code": "OR"}
		},
		"count": 2
	}`, string(data))

	t.Run("paginated", func(t *testing.T) {
		resp := ListResponse[domain.Country]{
			Plural:  "countries",
			Records: []domain.Country{{ID: "1", Name: "Canada", ISOCode: "CA"}},
			Page:    2,
			Limit:   1,
			Total:   3,
		}
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"countries": {"Canada": {"id": "1", "name": "Canada", "iso_code": "CA"}},
			"count": 1, "page": 2, "limit": 1, "total": 3
		}`, string(data))
	})

	t.Run("empty", func(t *testing.T) {
		data, err := json.Marshal(ListResponse[domain.State]{Plural: "states"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"states": {}, "count": 0}`, string(data))
	})
}

func TestDecodeKey(t *testing.T) {
	key, err := DecodeKey(domain.CityKind, json.RawMessage(`{"name": "Boston", "state_code": "ma"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Key{Name: "Boston", StateCode: "MA"}, key)

	key, err = DecodeKey(domain.CountryKind, json.RawMessage(`" Canada "`))
	require.NoError(t, err)
	assert.Equal(t, domain.Key{Name: "Canada"}, key)

	_, err = DecodeKey(domain.CityKind, json.RawMessage(`"Boston"`))
	assert.Error(t, err)

	_, err = DecodeKey(domain.StateKind, json.RawMessage(`42`))
	assert.Error(t, err)
}

func TestListRequest_Options(t *testing.T) {
	assert.False(t, ListRequest{}.Options().Paginated())

	opts := ListRequest{Page: 3}.Options()
	assert.Equal(t, DefaultPageSize, opts.Limit)
	assert.Equal(t, 2*DefaultPageSize, opts.Offset())

	opts = ListRequest{Limit: 5, Order: "DESC"}.Options()
	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, domain.SortDesc, opts.Order)
}
