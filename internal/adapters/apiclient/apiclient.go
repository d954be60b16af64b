// Package apiclient sends one outbound request, records it and buffers the reply.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gastropath/internal/adapters/observability"
	"gastropath/internal/domain"
	"gastropath/internal/payload"
)

const maxBody = 4 << 20

const userAgent = "gastropath/1.0"

// Reply is a fully read response.
type Reply struct {
	Status int
	Header http.Header
	Body   []byte
	URL    string // final URL after redirects
}

func (r *Reply) OK() bool { return r.Status >= 200 && r.Status < 300 }

func (r *Reply) Decode(out any) error { return json.Unmarshal(r.Body, out) }

func (r *Reply) Tree() (payload.Node, error) { return payload.Parse(r.Body) }

// StatusError returns a *domain.StatusError describing a non-2xx reply.
func (r *Reply) StatusError(service string) error {
	return &domain.StatusError{Service: service, Status: r.Status, Body: strings.TrimSpace(string(r.Body))}
}

// Do executes req exactly once. Transport failures are returned as errors;
// any HTTP status, including non-2xx, is a Reply.
func Do(hc *http.Client, req *http.Request, service, endpoint string) (*Reply, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("%s %s: %w", service, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", service, endpoint, err)
	}
	return &Reply{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
		URL:    resp.Request.URL.String(),
	}, nil
}

// Get builds and sends a GET request with the given headers.
func Get(ctx context.Context, hc *http.Client, url, service, endpoint string, headers map[string]string) (*Reply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return Do(hc, req, service, endpoint)
}

// NewClient returns the shared pooled client used by every adapter.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Instrument returns a copy of hc whose transport records every call made
// through it, for SDKs that build their own requests.
func Instrument(hc *http.Client, service, endpoint string) *http.Client {
	out := *hc
	out.Transport = observed{next: transport(hc), service: service, endpoint: endpoint}
	return &out
}

// Rebase returns a copy of hc that sends requests under from to the same
// path under to. It returns hc unchanged when to is empty or equal to from.
func Rebase(hc *http.Client, from, to string) (*http.Client, error) {
	from, to = strings.TrimRight(from, "/"), strings.TrimRight(to, "/")
	if to == "" || to == from {
		return hc, nil
	}
	target, err := url.Parse(to)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("rebase: invalid base URL %q", to)
	}
	out := *hc
	out.Transport = rebased{next: transport(hc), from: from, to: target}
	return &out, nil
}

func transport(hc *http.Client) http.RoundTripper {
	if hc.Transport != nil {
		return hc.Transport
	}
	return http.DefaultTransport
}

type observed struct {
	next              http.RoundTripper
	service, endpoint string
}

func (o observed) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := o.next.RoundTrip(req)
	if err != nil {
		observability.ObserveExternal(o.service, o.endpoint, 0, time.Since(start))
		return nil, err
	}
	observability.ObserveExternal(o.service, o.endpoint, resp.StatusCode, time.Since(start))
	return resp, nil
}

type rebased struct {
	next http.RoundTripper
	from string
	to   *url.URL
}

func (r rebased) RoundTrip(req *http.Request) (*http.Response, error) {
	rest, ok := strings.CutPrefix(req.URL.String(), r.from)
	if !ok {
		return r.next.RoundTrip(req)
	}
	u, err := url.Parse(r.to.String() + rest)
	if err != nil {
		return nil, err
	}
	out := req.Clone(req.Context())
	out.URL = u
	out.Host = u.Host
	return r.next.RoundTrip(out)
}
