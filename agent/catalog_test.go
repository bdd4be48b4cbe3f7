package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(c *Catalog, cr Criteria) []string {
	var out []string
	for _, o := range c.Search(cr) {
		out = append(out, o.Title)
	}
	return out
}

func TestCatalogSearch(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.Search(Criteria{}), 4)
	assert.Equal(t, []string{"50% off shoes", "Buy 1 Get 1 Free T-shirt"},
		titles(c, Criteria{Category: ptr("fashion"), MaxPrice: ptr(60.0)}))
	assert.Equal(t, []string{"Smartphone Sale"},
		titles(c, Criteria{Category: ptr("electronics"), MinDiscount: ptr(15.0)}))
	assert.Equal(t, []string{"50% off shoes"},
		titles(c, Criteria{MinRating: ptr(4.4)}))
	assert.Empty(t, titles(c, Criteria{Category: ptr("groceries")}))
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`offers:
  - title: Winter jacket
    category: fashion
    price: 120
    discount: 30
    rating: 4.7
  - title: Headphones
    category: electronics
    price: 80.5
    discount: 25
    rating: 4.1
`), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, c.Offers, 2)
	assert.Equal(t, "Winter jacket", c.Offers[0].Title)
	assert.Equal(t, 80.5, c.Offers[1].Price)
	assert.Equal(t, 4.1, c.Offers[1].Rating)
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("offers: [\n"), 0o644))
	_, err = LoadCatalog(path)
	assert.ErrorContains(t, err, "parse")
}
