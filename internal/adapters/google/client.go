// Package google talks to the Google Places web service.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"gastropath/internal/adapters/apiclient"
	"gastropath/internal/payload"
)

const photoMaxWidth = "800"

type Client struct {
	base string
	hc   *http.Client
	key  string
}

func New(base, key string, hc *http.Client) (*Client, error) {
	if key == "" {
		return nil, errors.New("google: API key is required")
	}
	return &Client{base: strings.TrimRight(base, "/"), hc: hc, key: key}, nil
}

// FindByIdentifier fetches details keyed by a feature id (ftid).
func (c *Client) FindByIdentifier(ctx context.Context, id string, fields []string) (payload.Node, error) {
	return c.details(ctx, "ftid", id, fields)
}

// FetchDetails fetches details keyed by a place_id.
func (c *Client) FetchDetails(ctx context.Context, id string, fields []string) (payload.Node, error) {
	return c.details(ctx, "place_id", id, fields)
}

// FindCandidates runs a text search and returns candidate place ids in
// provider order.
func (c *Client) FindCandidates(ctx context.Context, text string) ([]string, error) {
	q := url.Values{}
	q.Set("input", text)
	q.Set("inputtype", "textquery")
	q.Set("fields", "place_id")
	q.Set("key", c.key)

	tree, err := c.get(ctx, "/findplacefromtext/json", "findplacefromtext", q)
	if err != nil {
		return nil, err
	}
	candidates, _ := tree.Get("candidates").Array()
	ids := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		if id, ok := cand.Get("place_id").String(); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// PhotoURL builds the photo endpoint URL for a photo reference.
func (c *Client) PhotoURL(reference string) string {
	q := url.Values{}
	q.Set("maxwidth", photoMaxWidth)
	q.Set("photoreference", reference)
	q.Set("key", c.key)
	return c.base + "/photo?" + q.Encode()
}

func (c *Client) details(ctx context.Context, param, id string, fields []string) (payload.Node, error) {
	q := url.Values{}
	q.Set(param, id)
	q.Set("fields", strings.Join(fields, ","))
	q.Set("key", c.key)

	tree, err := c.get(ctx, "/details/json", "details", q)
	if err != nil {
		return payload.Node{}, err
	}
	return tree.Get("result"), nil
}

// get decodes the reply as a tree. A reply carrying error_message is an
// error whatever its status.
func (c *Client) get(ctx context.Context, path, endpoint string, q url.Values) (payload.Node, error) {
	rep, err := apiclient.Get(ctx, c.hc, c.base+path+"?"+q.Encode(), "google", endpoint,
		map[string]string{"Accept": "application/json"})
	if err != nil {
		return payload.Node{}, err
	}
	tree, err := rep.Tree()
	if err != nil {
		if !rep.OK() {
			return payload.Node{}, rep.StatusError("google")
		}
		return payload.Node{}, fmt.Errorf("google %s: decode: %w", endpoint, err)
	}
	if msg, ok := tree.Get("error_message").String(); ok {
		return payload.Node{}, fmt.Errorf("google places api error: %s (status %s)", msg, tree.Get("status").StringOr("unknown"))
	}
	if !rep.OK() {
		return payload.Node{}, rep.StatusError("google")
	}
	return tree, nil
}
