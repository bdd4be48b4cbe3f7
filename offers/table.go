package offers

import (
	"slices"

	"github.com/sonnes/offerchat/core"
)

// Table owns the current offer set and its sort state. Every operation ends
// with a render that replaces the previous View wholesale.
//
// A Table is not safe for concurrent use; callers serialize access.
type Table struct {
	offers    []core.Offer
	state     core.SortState
	view      View
	observers []func(View)
}

// NewTable returns an empty table in the default sort state.
func NewTable() *Table {
	state := core.DefaultSortState()
	return &Table{state: state, view: View{State: state, Rows: []Row{}}}
}

// OnRender registers fn to receive every View the table produces.
func (t *Table) OnRender(fn func(View)) {
	t.observers = append(t.observers, fn)
}

// SetOffers replaces the offer set, resets the sort state and renders the
// offers in default order.
func (t *Table) SetOffers(offers []core.Offer) {
	t.offers = slices.Clone(offers)
	t.state = core.DefaultSortState()
	t.Render(DefaultOrder(t.offers))
}

// SortByField applies a column selection: the active field flips direction,
// any other field becomes active in descending order.
func (t *Table) SortByField(field core.SortField) {
	t.state = t.state.Toggle(field)
	t.Render(Sort(t.offers, t.state.Field, t.state.Order))
}

// SortByFieldAndOrder sorts by an explicit field and direction, bypassing the
// toggle. The result becomes the active sort state so later column
// selections toggle from it.
func (t *Table) SortByFieldAndOrder(field core.SortField, order core.SortOrder) {
	t.state = core.SortState{Field: field, Order: order}
	t.Render(Sort(t.offers, field, order))
}

// Render projects offers into rows under the current sort state. It does not
// touch the offer set or the sort state.
func (t *Table) Render(offers []core.Offer) {
	t.view = View{State: t.state, Rows: FormatRows(offers)}
	for _, fn := range t.observers {
		fn(t.view)
	}
}

// State returns the active sort state.
func (t *Table) State() core.SortState { return t.state }

// View returns the most recent render.
func (t *Table) View() View { return t.view }

// Offers returns a copy of the offer set in its original order.
func (t *Table) Offers() []core.Offer { return slices.Clone(t.offers) }

// Len is the number of offers in the current set.
func (t *Table) Len() int { return len(t.offers) }
