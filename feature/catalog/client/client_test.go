package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Config{
		BaseURL:           srv.URL,
		ApiKey:            "test-key",
		RequestsPerSecond: 1000,
		MaxRetries:        2,
		TimeoutSeconds:    5,
	})
	c.backoff = func(int) time.Duration { return time.Millisecond }
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListSets_Paginates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sets", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		switch page {
		case 1:
			writeJSON(t, w, envelope[Set]{Data: []Set{{ID: "base1", Total: 102}, {ID: "base2", Total: 64}}, TotalCount: 3})
		case 2:
			writeJSON(t, w, envelope[Set]{Data: []Set{{ID: "base3", Total: 62}}, TotalCount: 3})
		default:
			t.Fatalf("unexpected page %d", page)
		}
	})

	sets, err := c.ListSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 3)
	assert.Equal(t, "base3", sets[2].ID)
}

func TestCardsPage_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/cards", r.URL.Path)
		assert.Equal(t, "set.id:base1", q.Get("q"))
		assert.Equal(t, "number", q.Get("orderBy"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "250", q.Get("pageSize"))

		_, _ = w.Write([]byte(`{"data":[{"id":"base1-4","name":"Charizard","number":"4",
			"tcgplayer":{"prices":{"holofoil":{"low":200.5,"market":350,"high":null}}}}],"totalCount":102}`))
	})

	page, err := c.CardsPage(context.Background(), "base1", 2)
	require.NoError(t, err)
	require.Len(t, page.Cards, 1)
	assert.Equal(t, 102, page.TotalCount)

	blob := page.Cards[0].TCGPlayer.Prices["holofoil"]
	require.NotNil(t, blob.Market)
	assert.Equal(t, 350.0, *blob.Market)
	assert.Nil(t, blob.High)
}

func TestSetCards_StopsOnShortPage(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(t, w, envelope[Card]{Data: []Card{{ID: "a"}, {ID: "b"}}, TotalCount: 2})
	})

	cards, err := c.SetCards(context.Background(), "tiny")
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCardsByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "(id:base1-1 OR id:base1-2)", r.URL.Query().Get("q"))
		writeJSON(t, w, envelope[Card]{Data: []Card{{ID: "base1-1"}, {ID: "base1-2"}}})
	})

	cards, err := c.CardsByID(context.Background(), []string{"base1-1", "base1-2"})
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	none, err := c.CardsByID(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, none)

	_, err = c.CardsByID(context.Background(), make([]string, MaxPageSize+1))
	assert.Error(t, err)
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, envelope[Set]{Data: []Set{{ID: "base1"}}, TotalCount: 1})
	})

	sets, err := c.ListSets(context.Background())
	require.NoError(t, err)
	assert.Len(t, sets, 1)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.CardsPage(context.Background(), "base1", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_NoRetryOnClientError(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.CardsPage(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{BaseURL: "https://example.test/v2/", PageSize: 1000})
	assert.Equal(t, "https://example.test/v2", c.baseURL)
	assert.Equal(t, MaxPageSize, c.PageSize())
}
