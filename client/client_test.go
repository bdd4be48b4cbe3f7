package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/offerchat/core"
)

func TestQuery(t *testing.T) {
	var got core.QueryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Found 1 offers matching your criteria.","done":true,
			"offers":[{"title":"Smartphone Sale","category":"electronics","price":600,"discount":15,"rating":4.3}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Query(context.Background(), core.QueryRequest{Query: "phones", SessionToken: "tok"})
	require.NoError(t, err)

	assert.Equal(t, core.QueryRequest{Query: "phones", SessionToken: "tok"}, got)
	assert.True(t, resp.Done)
	require.Len(t, resp.Offers, 1)
	assert.Equal(t, "Smartphone Sale", resp.Offers[0].Title)
}

func TestQueryStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Missing session_token"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Query(context.Background(), core.QueryRequest{Query: "x"})
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Contains(t, se.Body, "Missing session_token")
	assert.Equal(t, "HTTP error! status: 400", err.Error())
}

func TestQueryMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Query(context.Background(), core.QueryRequest{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestQueryContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL).Query(ctx, core.QueryRequest{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadline exceeded")
}
