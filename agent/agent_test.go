package agent

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/offerchat/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAgent(c *Catalog) *Agent {
	return New(c, log.New(io.Discard))
}

func TestRunFirstQuery(t *testing.T) {
	a := newTestAgent(nil)
	resp := a.Run(t.Context(), "s1", "fashion under $60")

	assert.True(t, resp.Done)
	assert.True(t, strings.HasPrefix(resp.Message, "Found 2 offers matching your criteria.\nParsed initial criteria:"))
	assert.Contains(t, resp.Message, "```json\n{\"category\":\"fashion\",\"max_price\":60}\n```")
	require.Len(t, resp.Offers, 2)
	// Both have 50% discount; rating breaks the tie.
	assert.Equal(t, "50% off shoes", resp.Offers[0].Title)
	assert.Equal(t, "Buy 1 Get 1 Free T-shirt", resp.Offers[1].Title)
}

func TestRunNoMatches(t *testing.T) {
	resp := newTestAgent(nil).Run(t.Context(), "s1", "electronics under $10")
	assert.True(t, resp.Done)
	assert.Empty(t, resp.Offers)
	assert.Contains(t, resp.Message, "Found 0 offers")
}

func TestRunFollowUpUpdatesCriteria(t *testing.T) {
	a := newTestAgent(nil)
	a.Run(t.Context(), "s1", "fashion")

	resp := a.Run(t.Context(), "s1", "yes, higher rating")
	assert.Contains(t, resp.Message, "Updated criteria:")
	assert.Contains(t, resp.Message, `"min_rating":0.5`)

	// Sessions do not share criteria.
	other := a.Run(t.Context(), "s2", "yes, higher rating")
	assert.Contains(t, other.Message, "Parsed initial criteria:")
	assert.Equal(t, 2, a.Sessions())
}

func TestRunAsksWhenTooMany(t *testing.T) {
	c := &Catalog{}
	for i := range MaxOffers + 1 {
		c.Offers = append(c.Offers, core.Offer{Title: fmt.Sprintf("offer %d", i), Category: "fashion", Price: 10, Discount: 5, Rating: 4})
	}
	a := newTestAgent(c)

	resp := a.Run(t.Context(), "s1", "fashion")
	assert.False(t, resp.Done)
	assert.Equal(t, NarrowQuestion, resp.Message)
	assert.Empty(t, resp.Offers)

	resp = a.Run(t.Context(), "s1", "yes, higher discount")
	assert.True(t, resp.Done)
	assert.Empty(t, resp.Offers)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	h := newTestAgent(nil).Handler()

	t.Run("query", func(t *testing.T) {
		rec := post(h, `{"query":"laptop","session_token":"tok"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"done":true`)
		assert.Contains(t, rec.Body.String(), `"title":"Discounted laptop"`)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := post(h, `{"query":"laptop"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Missing session_token"}`, rec.Body.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := post(h, `{"query":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid request"}`, rec.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/query", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestQueryInProcess(t *testing.T) {
	a := newTestAgent(nil)

	resp, err := a.Query(t.Context(), core.QueryRequest{Query: "laptop", SessionToken: "tok"})
	require.NoError(t, err)
	assert.True(t, resp.Done)
	assert.Len(t, resp.Offers, 2)

	_, err = a.Query(t.Context(), core.QueryRequest{Query: "laptop"})
	assert.EqualError(t, err, "Missing session_token")
}
