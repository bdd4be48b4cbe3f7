package offers

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sonnes/offerchat/core"
)

// missing is shown in place of a numeric value the agent did not supply.
const missing = "-"

// Row is one offer formatted for display. Formatting is presentation-only;
// sorting always works on the numeric values of the offer set.
type Row struct {
	Title           string `json:"title"`
	Category        string `json:"category"`
	CategoryDisplay string `json:"category_display"`
	Price           string `json:"price"`
	Discount        string `json:"discount"`
	Rating          string `json:"rating"`
}

// Cells returns the row's display values in column order.
func (r Row) Cells() []string {
	return []string{r.Title, r.CategoryDisplay, r.Price, r.Discount, r.Rating}
}

// View is a rendered table: the sort state it was produced under and its
// rows, in display order.
type View struct {
	State core.SortState `json:"state"`
	Rows  []Row          `json:"rows"`
}

// FormatRows projects offers into rows, one per offer, preserving order.
func FormatRows(offers []core.Offer) []Row {
	caser := cases.Title(language.English, cases.NoLower)
	rows := make([]Row, len(offers))
	for i, o := range offers {
		rows[i] = formatRow(o, caser)
	}
	return rows
}

// FormatRow projects a single offer.
func FormatRow(o core.Offer) Row {
	return formatRow(o, cases.Title(language.English, cases.NoLower))
}

func formatRow(o core.Offer, caser cases.Caser) Row {
	return Row{
		Title:           o.Title,
		Category:        o.Category,
		CategoryDisplay: caser.String(o.Category),
		Price:           formatPrice(o.Price),
		Discount:        formatDiscount(o.Discount),
		Rating:          formatRating(o.Rating),
	}
}

func formatPrice(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return fmt.Sprintf("$%.2f", v)
}

func formatDiscount(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func formatRating(v float64) string {
	if math.IsNaN(v) {
		return missing
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
