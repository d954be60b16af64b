package shortlink

import (
	"context"
	"net/http"

	"gastropath/internal/adapters/apiclient"
)

// Expander follows a short link's redirects with the shared client.
type Expander struct {
	hc *http.Client
}

func New(hc *http.Client) *Expander { return &Expander{hc: hc} }

// Expand issues one GET and returns the URL the client ended up at. The
// final status is not inspected.
func (e *Expander) Expand(ctx context.Context, shortURL string) (string, error) {
	rep, err := apiclient.Get(ctx, e.hc, shortURL, "shortlink", "expand", nil)
	if err != nil {
		return "", err
	}
	return rep.URL, nil
}
