package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown sort field")
	ErrUnknownOrder = errors.New("unknown sort order")
)

// SortField names the offer field the table is sorted by.
type SortField string

const (
	FieldNone     SortField = "" // default ordering: discount desc, then rating desc
	FieldTitle    SortField = "title"
	FieldCategory SortField = "category"
	FieldPrice    SortField = "price"
	FieldDiscount SortField = "discount"
	FieldRating   SortField = "rating"
)

// Fields lists the sortable columns in display order.
var Fields = []SortField{FieldTitle, FieldCategory, FieldPrice, FieldDiscount, FieldRating}

// IsText reports whether the field compares as text.
func (f SortField) IsText() bool {
	return f == FieldTitle || f == FieldCategory
}

// Label is the column header text.
func (f SortField) Label() string {
	switch f {
	case FieldNone:
		return "Default (Discount & Rating)"
	case FieldTitle:
		return "Title"
	case FieldCategory:
		return "Category"
	case FieldPrice:
		return "Price"
	case FieldDiscount:
		return "Discount"
	case FieldRating:
		return "Rating"
	default:
		return string(f)
	}
}

// ParseSortField accepts a field name, case-insensitively. "", "none" and
// "default" select the default ordering.
func ParseSortField(s string) (SortField, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "none", "default":
		return FieldNone, nil
	default:
		for _, f := range Fields {
			if string(f) == v {
				return f, nil
			}
		}
		return FieldNone, fmt.Errorf("%w %q", ErrUnknownField, s)
	}
}

// SortOrder is the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Flip returns the opposite direction.
func (o SortOrder) Flip() SortOrder {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// Label is the human-facing direction name.
func (o SortOrder) Label() string {
	if o == OrderAsc {
		return "Low to High"
	}
	return "High to Low"
}

// ParseSortOrder accepts "asc" or "desc", case-insensitively.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return OrderAsc, nil
	case "desc":
		return OrderDesc, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownOrder, s)
	}
}

// SortState is the active sort field and direction of an offer table.
type SortState struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// DefaultSortState is the state a table starts in for every new offer set.
func DefaultSortState() SortState {
	return SortState{Field: FieldNone, Order: OrderDesc}
}

// Toggle applies a column selection. Selecting the active field flips the
// order; selecting any other field makes it active in descending order.
func (s SortState) Toggle(field SortField) SortState {
	if s.Field == field {
		return SortState{Field: field, Order: s.Order.Flip()}
	}
	return SortState{Field: field, Order: OrderDesc}
}
