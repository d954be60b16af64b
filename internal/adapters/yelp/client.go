// Package yelp searches the Yelp Fusion business directory.
package yelp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gastropath/internal/adapters/apiclient"
	"gastropath/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
}

func New(base, key string, hc *http.Client) (*Client, error) {
	if key == "" {
		return nil, errors.New("yelp: API key is required")
	}
	return &Client{base: strings.TrimRight(base, "/"), hc: hc, key: key}, nil
}

type searchReply struct {
	Businesses []struct {
		Categories []struct {
			Alias string `json:"alias"`
			Title string `json:"title"`
		} `json:"categories"`
	} `json:"businesses"`
	Error *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Search returns up to limit businesses matching term near location. A
// provider-reported error object is returned as an error.
func (c *Client) Search(ctx context.Context, term, location string, limit int) ([]domain.Business, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("location", location)
	q.Set("limit", strconv.Itoa(limit))

	rep, err := apiclient.Get(ctx, c.hc, c.base+"/businesses/search?"+q.Encode(), "yelp", "businesses_search",
		map[string]string{
			"Authorization": "Bearer " + c.key,
			"Accept":        "application/json",
		})
	if err != nil {
		return nil, err
	}

	var body searchReply
	if err := rep.Decode(&body); err != nil {
		if !rep.OK() {
			return nil, rep.StatusError("yelp")
		}
		return nil, fmt.Errorf("yelp: decode: %w", err)
	}
	if body.Error != nil {
		desc := body.Error.Description
		if desc == "" {
			desc = "Unknown error"
		}
		return nil, fmt.Errorf("yelp api error %s: %s", body.Error.Code, desc)
	}
	if !rep.OK() {
		return nil, rep.StatusError("yelp")
	}

	out := make([]domain.Business, 0, len(body.Businesses))
	for _, b := range body.Businesses {
		biz := domain.Business{Categories: make([]domain.Category, 0, len(b.Categories))}
		for _, cat := range b.Categories {
			biz.Categories = append(biz.Categories, domain.Category{Title: cat.Title})
		}
		out = append(out, biz)
	}
	return out, nil
}
