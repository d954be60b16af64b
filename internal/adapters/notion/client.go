// Package notion stores restaurant records as pages of a Notion database.
package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"

	"gastropath/internal/adapters/apiclient"
	"gastropath/internal/domain"
)

const (
	// DefaultBase is the API root the SDK addresses.
	DefaultBase    = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"
	pageIcon       = "🍽️"
)

type Client struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
}

// New builds the SDK client on hc. A base other than DefaultBase redirects
// every API call under it.
func New(base, key, databaseID, version string, hc *http.Client) (*Client, error) {
	if key == "" || databaseID == "" {
		return nil, errors.New("notion: API key and database id are required")
	}
	if version == "" {
		version = DefaultVersion
	}
	hc, err := apiclient.Rebase(hc, DefaultBase, base)
	if err != nil {
		return nil, fmt.Errorf("notion: %w", err)
	}
	api := notionapi.NewClient(notionapi.Token(key),
		notionapi.WithHTTPClient(apiclient.Instrument(hc, "notion", "api")),
		notionapi.WithVersion(version),
	)
	return &Client{api: api, databaseID: notionapi.DatabaseID(databaseID)}, nil
}

// Query returns the ids of pages whose Name title equals name exactly.
func (c *Client) Query(ctx context.Context, name string) ([]string, error) {
	resp, err := c.api.Database.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: "Name",
			RichText: &notionapi.TextFilterCondition{Equals: name},
		},
	})
	if err != nil {
		return nil, statusError("database query", err)
	}
	ids := make([]string, 0, len(resp.Results))
	for _, p := range resp.Results {
		if p.ID != "" {
			ids = append(ids, string(p.ID))
		}
	}
	return ids, nil
}

// Create adds one page to the database, with an external cover when coverURL is set.
func (c *Client) Create(ctx context.Context, rec domain.EnrichedRecord, coverURL *string) error {
	icon := notionapi.Emoji(pageIcon)
	req := &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{Type: "database_id", DatabaseID: c.databaseID},
		Properties: Properties(rec),
		Icon:       &notionapi.Icon{Type: "emoji", Emoji: &icon},
	}
	if coverURL != nil && *coverURL != "" {
		req.Cover = &notionapi.Image{Type: "external", External: &notionapi.FileObject{URL: *coverURL}}
	}
	if _, err := c.api.Page.Create(ctx, req); err != nil {
		return statusError("page create", err)
	}
	return nil
}

// Properties maps a record onto the database schema. Price range is left out
// when the rendered level is empty, since Notion rejects blank select options.
func Properties(rec domain.EnrichedRecord) notionapi.Properties {
	props := notionapi.Properties{
		"Name":         notionapi.TitleProperty{Title: richText(rec.Name)},
		"City":         notionapi.RichTextProperty{RichText: richText(rec.City)},
		"Country":      notionapi.RichTextProperty{RichText: richText(rec.Country)},
		"Cuisine Type": notionapi.RichTextProperty{RichText: richText(rec.Cuisine)},
		"Google Maps":  notionapi.URLProperty{URL: rec.MapsLink},
		"Website":      notionapi.URLProperty{URL: rec.Website},
	}
	if rec.PriceLevel != "" {
		props["Price range"] = notionapi.SelectProperty{Select: notionapi.Option{Name: rec.PriceLevel}}
	}
	return props
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{Type: "text", Text: &notionapi.Text{Content: s}}}
}

// statusError turns an API error reply into a *domain.StatusError so the
// status and message reach the caller.
func statusError(op string, err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("notion %s: %w", op, &domain.StatusError{
			Service: "notion",
			Status:  apiErr.Status,
			Body:    fmt.Sprintf("%s: %s", apiErr.Code, apiErr.Message),
		})
	}
	return fmt.Errorf("notion %s: %w", op, err)
}
