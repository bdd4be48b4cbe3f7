package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryResponseDecode(t *testing.T) {
	body := `{
		"message": "Found 2 offers matching your criteria.",
		"done": true,
		"offers": [
			{"id": 1, "title": "50% off shoes", "category": "fashion", "price": 50, "discount": 50, "rating": 4.5},
			{"title": "Mystery box", "category": "misc", "price": null, "discount": "lots"}
		]
	}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.True(t, resp.Done)
	require.Len(t, resp.Offers, 2)
	assert.Equal(t, Offer{Title: "50% off shoes", Category: "fashion", Price: 50, Discount: 50, Rating: 4.5}, resp.Offers[0])

	odd := resp.Offers[1]
	assert.Equal(t, "Mystery box", odd.Title)
	assert.True(t, math.IsNaN(odd.Price), "null price")
	assert.True(t, math.IsNaN(odd.Discount), "string discount")
	assert.True(t, math.IsNaN(odd.Rating), "missing rating")
}

func TestQueryResponseNullOffers(t *testing.T) {
	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(`{"message":"hi","done":true,"offers":null}`), &resp))
	assert.Empty(t, resp.Offers)

	data, err := json.Marshal(QueryResponse{Message: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi","done":false,"offers":[]}`, string(data))
}

func TestOfferMarshalNaN(t *testing.T) {
	data, err := json.Marshal(Offer{Title: "x", Price: math.NaN(), Discount: 10, Rating: 4})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"x","category":"","price":null,"discount":10,"rating":4}`, string(data))
}
