package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortField(t *testing.T) {
	tests := []struct {
		in      string
		want    SortField
		wantErr bool
	}{
		{"", FieldNone, false},
		{"default", FieldNone, false},
		{"none", FieldNone, false},
		{"Price", FieldPrice, false},
		{" title ", FieldTitle, false},
		{"rating", FieldRating, false},
		{"id", FieldNone, true},
	}
	for _, tt := range tests {
		got, err := ParseSortField(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownField, "ParseSortField(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseSortField(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseSortField(%q)", tt.in)
	}
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("ASC")
	require.NoError(t, err)
	assert.Equal(t, OrderAsc, o)

	_, err = ParseSortOrder("up")
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestSortStateToggle(t *testing.T) {
	s := DefaultSortState()
	assert.Equal(t, SortState{Field: FieldNone, Order: OrderDesc}, s)

	s = s.Toggle(FieldPrice)
	assert.Equal(t, SortState{Field: FieldPrice, Order: OrderDesc}, s)

	s = s.Toggle(FieldPrice)
	assert.Equal(t, SortState{Field: FieldPrice, Order: OrderAsc}, s)

	s = s.Toggle(FieldPrice)
	assert.Equal(t, SortState{Field: FieldPrice, Order: OrderDesc}, s)

	s = s.Toggle(FieldPrice).Toggle(FieldTitle)
	assert.Equal(t, SortState{Field: FieldTitle, Order: OrderDesc}, s, "switching field forces desc")
}
