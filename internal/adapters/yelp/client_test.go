package yelp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropath/internal/adapters/apiclient"
	"gastropath/internal/adapters/yelp"
)

func newClient(t *testing.T, h http.HandlerFunc) *yelp.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	cl, err := yelp.New(ts.URL, "yelp-key", apiclient.NewClient(2*time.Second))
	require.NoError(t, err)
	return cl
}

func TestSearch_Categories(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/businesses/search", r.URL.Path)
		assert.Equal(t, "Bearer yelp-key", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "Trattoria X", q.Get("term"))
		assert.Equal(t, "Rome", q.Get("location"))
		assert.Equal(t, "1", q.Get("limit"))
		_, _ = w.Write([]byte(`{"businesses":[{"categories":[{"alias":"italian","title":"Italian"},{"alias":"pizza","title":"Pizza"}]}]}`))
	})

	got, err := cl.Search(context.Background(), "Trattoria X", "Rome", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Categories, 2)
	assert.Equal(t, "Italian", got[0].Categories[0].Title)
	assert.Equal(t, "Pizza", got[0].Categories[1].Title)
}

func TestSearch_NoBusinesses(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"businesses":[],"total":0}`))
	})
	got, err := cl.Search(context.Background(), "x", "y", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_ProviderError(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"LOCATION_NOT_FOUND","description":"Could not execute search, try specifying a more exact location."}}`))
	})
	_, err := cl.Search(context.Background(), "x", "No city available", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOCATION_NOT_FOUND")
}

func TestSearch_BadStatusWithoutBody(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := cl.Search(context.Background(), "x", "y", 1)
	assert.Error(t, err)
}
