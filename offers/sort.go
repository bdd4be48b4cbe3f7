// Package offers implements the offer table: the current offer set, its sort
// state, and the projection of a sorted offer sequence into display rows.
//
// Sorting and formatting are pure functions so they can be exercised without
// any rendering surface; Table wires them to the sort state machine.
package offers

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sonnes/offerchat/core"
)

// Sort returns a sorted copy of in. The input slice is never reordered.
//
// FieldNone selects the default ordering (discount desc, then rating desc)
// and ignores order. Missing numeric values (NaN) sort last in either
// direction.
func Sort(in []core.Offer, field core.SortField, order core.SortOrder) []core.Offer {
	out := slices.Clone(in)
	slices.SortStableFunc(out, Comparator(field, order))
	return out
}

// DefaultOrder is Sort with FieldNone.
func DefaultOrder(in []core.Offer) []core.Offer {
	return Sort(in, core.FieldNone, core.OrderDesc)
}

// Comparator returns the comparison function used by Sort. The returned
// function holds a collator and must not be shared between goroutines.
func Comparator(field core.SortField, order core.SortOrder) func(a, b core.Offer) int {
	desc := order != core.OrderAsc

	switch {
	case field == core.FieldNone:
		return func(a, b core.Offer) int {
			if c := compareNumber(a.Discount, b.Discount, true); c != 0 {
				return c
			}
			return compareNumber(a.Rating, b.Rating, true)
		}
	case field.IsText():
		coll := collate.New(language.English, collate.IgnoreCase)
		return func(a, b core.Offer) int {
			c := coll.CompareString(strings.ToLower(textValue(a, field)), strings.ToLower(textValue(b, field)))
			if desc {
				return -c
			}
			return c
		}
	default:
		return func(a, b core.Offer) int {
			return compareNumber(numberValue(a, field), numberValue(b, field), desc)
		}
	}
}

// compareNumber orders two values, placing NaN after every number regardless
// of direction.
func compareNumber(a, b float64, desc bool) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	if desc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}

func textValue(o core.Offer, field core.SortField) string {
	if field == core.FieldCategory {
		return o.Category
	}
	return o.Title
}

func numberValue(o core.Offer, field core.SortField) float64 {
	switch field {
	case core.FieldPrice:
		return o.Price
	case core.FieldDiscount:
		return o.Discount
	case core.FieldRating:
		return o.Rating
	default:
		return math.NaN()
	}
}
