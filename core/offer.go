package core

import (
	"encoding/json"
	"math"
)

// Offer is a purchasable item returned by the agent.
//
// Numeric fields that are missing, null or not numbers in the JSON payload
// decode to NaN rather than failing the whole response.
type Offer struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"` // percentage, 0-100 expected
	Rating   float64 `json:"rating"`   // 0-5 expected
}

type rawOffer struct {
	Title    any `json:"title"`
	Category any `json:"category"`
	Price    any `json:"price"`
	Discount any `json:"discount"`
	Rating   any `json:"rating"`
}

// UnmarshalJSON decodes an offer leniently.
func (o *Offer) UnmarshalJSON(data []byte) error {
	var raw rawOffer
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Offer{
		Title:    textValue(raw.Title),
		Category: textValue(raw.Category),
		Price:    numberValue(raw.Price),
		Discount: numberValue(raw.Discount),
		Rating:   numberValue(raw.Rating),
	}
	return nil
}

// MarshalJSON writes NaN fields as null.
func (o Offer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title    string   `json:"title"`
		Category string   `json:"category"`
		Price    *float64 `json:"price"`
		Discount *float64 `json:"discount"`
		Rating   *float64 `json:"rating"`
	}{
		Title:    o.Title,
		Category: o.Category,
		Price:    finite(o.Price),
		Discount: finite(o.Discount),
		Rating:   finite(o.Rating),
	})
}

func textValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func numberValue(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		return math.NaN()
	}
	return f
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
