// Package agent is an offers agent: it turns free-text queries into search
// criteria, filters a catalog, and decides whether to answer or ask a
// follow-up question. Parsing and deciding are rule-based by default and can
// be handed to a language model. It serves the query API the chat client
// talks to.
package agent

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Criteria filters the catalog. Nil fields are unconstrained.
type Criteria struct {
	Category    *string  `json:"category,omitempty" yaml:"category,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty" yaml:"max_price,omitempty"`
	MinDiscount *float64 `json:"min_discount,omitempty" yaml:"min_discount,omitempty"`
	MinRating   *float64 `json:"min_rating,omitempty" yaml:"min_rating,omitempty"`
}

// String renders the criteria as compact JSON.
func (c Criteria) String() string {
	data, err := json.Marshal(c)
	if err != nil {
		return "{}"
	}
	return string(data)
}

var (
	underRE         = regexp.MustCompile(`under\s+\$?(\d+)`)
	belowRE         = regexp.MustCompile(`below\s+\$?(\d+)`)
	discountAboveRE = regexp.MustCompile(`discount\s+above\s+(\d+)`)
	percentOffRE    = regexp.MustCompile(`(\d+)%\s+off`)
	ratingAboveRE   = regexp.MustCompile(`rating\s+above\s+([\d.]+)`)
)

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"fashion", []string{"fashion", "clothes", "shirt", "shoes"}},
	{"electronics", []string{"electronics", "laptop", "phone", "smartphone"}},
}

// ParseCriteria extracts criteria from a query. Later patterns win when two
// set the same field, so "below" overrides "under".
func ParseCriteria(query string) Criteria {
	var c Criteria
	q := strings.ToLower(query)

	for _, kw := range categoryKeywords {
		if containsAny(q, kw.words) {
			c.Category = ptr(kw.category)
			break
		}
	}

	if v, ok := match(underRE, q); ok {
		c.MaxPrice = ptr(v)
	}
	if v, ok := match(belowRE, q); ok {
		c.MaxPrice = ptr(v)
	}
	if v, ok := match(discountAboveRE, q); ok {
		c.MinDiscount = ptr(v)
	}
	if v, ok := match(percentOffRE, q); ok {
		c.MinDiscount = ptr(v)
	}
	if v, ok := match(ratingAboveRE, q); ok {
		c.MinRating = ptr(v)
	}
	return c
}

// UpdateCriteria applies a follow-up answer. An affirmative answer that
// mentions rating raises the minimum rating by half a star; one that
// mentions discount raises the minimum discount by ten points.
func UpdateCriteria(c Criteria, reply string) Criteria {
	r := strings.ToLower(reply)
	if !strings.Contains(r, "yes") && !strings.Contains(r, "higher") {
		return c
	}
	switch {
	case strings.Contains(r, "rating"):
		c.MinRating = ptr(deref(c.MinRating) + 0.5)
	case strings.Contains(r, "discount"):
		c.MinDiscount = ptr(deref(c.MinDiscount) + 10)
	}
	return c
}

func match(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T { return &v }

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
