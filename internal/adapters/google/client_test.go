package google_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropath/internal/adapters/apiclient"
	"gastropath/internal/adapters/google"
	"gastropath/internal/domain"
)

func newClient(t *testing.T, h http.HandlerFunc) *google.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	cl, err := google.New(ts.URL, "test-key", apiclient.NewClient(2*time.Second))
	require.NoError(t, err)
	return cl
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := google.New("http://x", "", http.DefaultClient)
	assert.Error(t, err)
}

func TestClient_FindByIdentifier_UsesFtid(t *testing.T) {
	var got url.Values
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/details/json", r.URL.Path)
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"result":{"name":"Trattoria X"},"status":"OK"}`))
	})

	res, err := cl.FindByIdentifier(context.Background(), "0x1:0x2", domain.DetailFields)
	require.NoError(t, err)
	assert.Equal(t, "Trattoria X", res.Get("name").StringOr(""))
	assert.Equal(t, "0x1:0x2", got.Get("ftid"))
	assert.Equal(t, "test-key", got.Get("key"))
	assert.Equal(t, "name,formatted_address,website,price_level,address_component,photos,url", got.Get("fields"))
}

func TestClient_FetchDetails_UsesPlaceID(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pid-1", r.URL.Query().Get("place_id"))
		_, _ = w.Write([]byte(`{"result":{"name":"A"}}`))
	})
	_, err := cl.FetchDetails(context.Background(), "pid-1", domain.DetailFields)
	require.NoError(t, err)
}

func TestClient_FindCandidates(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/findplacefromtext/json", r.URL.Path)
		assert.Equal(t, "pizza & co", q.Get("input"))
		assert.Equal(t, "textquery", q.Get("inputtype"))
		_, _ = w.Write([]byte(`{"candidates":[{"place_id":"first"},{"place_id":"second"}],"status":"OK"}`))
	})
	ids, err := cl.FindCandidates(context.Background(), "pizza & co")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ids)
}

func TestClient_ErrorMessage(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error_message":"The provided API key is invalid.","status":"REQUEST_DENIED"}`))
	})
	_, err := cl.FindCandidates(context.Background(), "x")
	assert.ErrorContains(t, err, "REQUEST_DENIED")
}

func TestClient_BadStatus(t *testing.T) {
	cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})
	_, err := cl.FetchDetails(context.Background(), "x", domain.DetailFields)

	var se *domain.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
}

func TestClient_PhotoURL(t *testing.T) {
	cl, err := google.New("https://maps.googleapis.com/maps/api/place/", "k", http.DefaultClient)
	require.NoError(t, err)

	u, err := url.Parse(cl.PhotoURL("ref/1"))
	require.NoError(t, err)
	assert.Equal(t, "/maps/api/place/photo", u.Path)
	q := u.Query()
	assert.Equal(t, "800", q.Get("maxwidth"))
	assert.Equal(t, "ref/1", q.Get("photoreference"))
	assert.Equal(t, "k", q.Get("key"))
}
