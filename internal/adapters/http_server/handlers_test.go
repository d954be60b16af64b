package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "gastropath/internal/adapters/http_server"
	"gastropath/internal/domain"
)

type fakeAdder struct {
	got []domain.LocationReference
	out domain.Outcome
	err error
}

func (f *fakeAdder) Add(ctx context.Context, ref domain.LocationReference) (domain.Outcome, error) {
	f.got = append(f.got, ref)
	return f.out, f.err
}

func newServer(a httpserver.Adder, l httpserver.Limiter) http.Handler {
	srv := httpserver.New(l)
	srv.MountHandlers(&httpserver.Handlers{P: a})
	return srv.Mux()
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/add_restaurant", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h := newServer(&fakeAdder{}, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", decode(t, rr)["status"])
}

func TestAddRestaurant_Created(t *testing.T) {
	a := &fakeAdder{out: domain.Outcome{Created: true}}
	rr := post(newServer(a, nil), `{"url":"https://maps.app.goo.gl/example"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Restaurant added successfully", body["message"])
	assert.Equal(t, []domain.LocationReference{"https://maps.app.goo.gl/example"}, a.got)
}

func TestAddRestaurant_UppercaseKeyAndAlreadyPresent(t *testing.T) {
	a := &fakeAdder{out: domain.Outcome{Created: false}}
	rr := post(newServer(a, nil), `{"URL":"https://maps.app.goo.gl/abc"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Restaurant already present", decode(t, rr)["message"])
	require.Len(t, a.got, 1)
}

func TestAddRestaurant_BadBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":    `url=https://maps.app.goo.gl/x`,
		"missing url": `{"link":"x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			a := &fakeAdder{}
			rr := post(newServer(a, nil), body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			out := decode(t, rr)
			assert.Equal(t, map[string]any{"url": "https://maps.app.goo.gl/example"}, out["expected_format"])
			assert.Empty(t, a.got)
		})
	}
}

func TestAddRestaurant_ErrorMapping(t *testing.T) {
	cases := []struct {
		kind   domain.ErrorKind
		status int
	}{
		{domain.TooLong, http.StatusBadRequest},
		{domain.InvalidFormat, http.StatusBadRequest},
		{domain.UntrustedDomain, http.StatusBadRequest},
		{domain.InvalidPath, http.StatusBadRequest},
		{domain.NotFound, http.StatusNotFound},
		{domain.NetworkFailure, http.StatusBadGateway},
		{domain.UpstreamFailure, http.StatusBadGateway},
		{domain.PersistFailure, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			a := &fakeAdder{err: domain.NewError(tc.kind, "boom")}
			rr := post(newServer(a, nil), `{"url":"https://maps.app.goo.gl/x"}`)
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
			assert.Equal(t, string(tc.kind), decode(t, rr)["kind"])
		})
	}
}

func TestRateLimit_Rejects(t *testing.T) {
	a := &fakeAdder{out: domain.Outcome{Created: true}}
	h := newServer(a, httpserver.NewMemoryLimiter(1, 2))

	var codes []int
	for i := 0; i < 3; i++ {
		codes = append(codes, post(h, `{"url":"https://maps.app.goo.gl/x"}`).Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Len(t, a.got, 2)
}
