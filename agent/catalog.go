package agent

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/sonnes/offerchat/core"
)

// Catalog is the set of offers the agent searches.
type Catalog struct {
	Offers []core.Offer
}

type catalogFile struct {
	Offers []struct {
		Title    string  `yaml:"title"`
		Category string  `yaml:"category"`
		Price    float64 `yaml:"price"`
		Discount float64 `yaml:"discount"`
		Rating   float64 `yaml:"rating"`
	} `yaml:"offers"`
}

// DefaultCatalog returns the built-in demo offers.
func DefaultCatalog() *Catalog {
	return &Catalog{Offers: []core.Offer{
		{Title: "50% off shoes", Category: "fashion", Price: 50, Discount: 50, Rating: 4.5},
		{Title: "Discounted laptop", Category: "electronics", Price: 900, Discount: 10, Rating: 4.2},
		{Title: "Buy 1 Get 1 Free T-shirt", Category: "fashion", Price: 20, Discount: 50, Rating: 4.0},
		{Title: "Smartphone Sale", Category: "electronics", Price: 600, Discount: 15, Rating: 4.3},
	}}
}

// LoadCatalog reads a YAML catalog of the form:
//
//	offers:
//	  - title: 50% off shoes
//	    category: fashion
//	    price: 50
//	    discount: 50
//	    rating: 4.5
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	c := &Catalog{Offers: make([]core.Offer, 0, len(f.Offers))}
	for _, o := range f.Offers {
		c.Offers = append(c.Offers, core.Offer{
			Title:    o.Title,
			Category: o.Category,
			Price:    o.Price,
			Discount: o.Discount,
			Rating:   o.Rating,
		})
	}
	return c, nil
}

// Search returns the offers matching every set criterion, in catalog order.
func (c *Catalog) Search(cr Criteria) []core.Offer {
	out := make([]core.Offer, 0, len(c.Offers))
	for _, o := range c.Offers {
		if cr.Category != nil && o.Category != *cr.Category {
			continue
		}
		if cr.MaxPrice != nil && o.Price > *cr.MaxPrice {
			continue
		}
		if cr.MinDiscount != nil && o.Discount < *cr.MinDiscount {
			continue
		}
		if cr.MinRating != nil && o.Rating < *cr.MinRating {
			continue
		}
		out = append(out, o)
	}
	return slices.Clip(out)
}
