package html

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
)

func buildTestTranscript() *core.Transcript {
	now := time.Date(2026, 1, 22, 9, 8, 6, 0, time.UTC)
	tr := &core.Transcript{SessionToken: "tok", CreatedAt: now}
	tr.Append(core.RoleUser, core.KindReply, core.FormatPlain, "fashion <b>under</b> $60", now)
	tr.Append(core.RoleAgent, core.KindReply, core.FormatMarkdown,
		"Found 2 offers matching your criteria.\n\n```json\n{\"category\": \"fashion\"}\n```", now)
	tr.Append(core.RoleUser, core.KindReply, core.FormatPlain, "again", now)
	tr.Append(core.RoleAgent, core.KindError, core.FormatPlain, "Error: HTTP error! status: 500. Please try again.", now)
	return tr
}

func buildView(state core.SortState) *offers.View {
	return &offers.View{
		State: state,
		Rows: offers.FormatRows([]core.Offer{
			{Title: "50% off shoes", Category: "fashion", Price: 50, Discount: 50, Rating: 4.5},
			{Title: "Buy 1 Get 1 Free T-shirt", Category: "fashion", Price: 20, Discount: 50, Rating: 4.0},
		}),
	}
}

func TestRenderPage(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	require.NoError(t, r.RenderPage(&buf, PageData{
		Transcript: buildTestTranscript(),
		Offers:     buildView(core.DefaultSortState()),
	}))

	html := buf.String()

	t.Run("page structure", func(t *testing.T) {
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<html lang=\"en\">")
		assert.Contains(t, html, "@tailwindcss/browser@4")
		assert.Contains(t, html, `action="/send"`)
		assert.Contains(t, html, `name="query"`)
	})

	t.Run("user text escaped", func(t *testing.T) {
		assert.Contains(t, html, "fashion &lt;b&gt;under&lt;/b&gt; $60")
		assert.NotContains(t, html, "<b>under</b>")
	})

	t.Run("agent markdown highlighted", func(t *testing.T) {
		assert.Contains(t, html, "Found 2 offers matching your criteria.")
		assert.Contains(t, html, "<pre")
		assert.Contains(t, html, "style=")
	})

	t.Run("failed turn", func(t *testing.T) {
		assert.Contains(t, html, "turn flex flex-col gap-2 failed")
		assert.Contains(t, html, "message agent error")
	})

	t.Run("table", func(t *testing.T) {
		assert.Contains(t, html, `id="offersTable"`)
		assert.Contains(t, html, "$50.00")
		assert.Contains(t, html, "Fashion")
		assert.Contains(t, html, `href="/sort?field=price"`)
		assert.Contains(t, html, "<option value=\"\" selected>Default (Discount &amp; Rating)</option>")
		assert.Less(t, strings.Index(html, "50% off shoes"), strings.Index(html, "Buy 1 Get 1 Free T-shirt"))
	})
}

func TestRenderPageWithoutOffers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().RenderPage(&buf, PageData{Transcript: buildTestTranscript()}))
	assert.NotContains(t, buf.String(), "offersTable")
}

func TestRenderOffersMarksSortedColumn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().RenderOffers(&buf, *buildView(core.SortState{Field: core.FieldRating, Order: core.OrderAsc})))

	html := buf.String()
	assert.Contains(t, html, `data-field="rating" class="cursor-pointer select-none px-3 py-2 text-left sorted asc`)
	assert.Contains(t, html, "Rating ▲")
	assert.Contains(t, html, `<option value="rating" selected>Rating</option>`)
	assert.Contains(t, html, `<option value="asc" selected>Low to High</option>`)
	assert.Contains(t, html, "2 offers, sorted by Rating (Low to High)")
	assert.NotContains(t, html, "Price ▲")
}

func TestRenderTranscriptFragment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().RenderTranscript(&buf, buildTestTranscript()))

	html := buf.String()
	assert.NotContains(t, html, "<!DOCTYPE html>")
	assert.Equal(t, 2, strings.Count(html, "message user"))
	assert.Contains(t, html, "9:08 AM")
}
