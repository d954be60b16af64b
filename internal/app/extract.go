package app

import (
	"net/url"

	"gastropath/internal/domain"
)

// identifierParams are checked in priority order.
var identifierParams = []string{"ftid", "place_id"}

const textParam = "q"

// ExtractQuery recovers a place identifier from a long-form map URL, falling
// back to the q parameter and finally to the whole URL as search text.
func ExtractQuery(longURL string) domain.PlaceQuery {
	u, err := url.Parse(longURL)
	if err != nil {
		return domain.ByText(longURL)
	}
	q := u.Query()
	for _, p := range identifierParams {
		if id := q.Get(p); id != "" {
			return domain.ByIdentifier(id)
		}
	}
	if text := q.Get(textParam); text != "" {
		return domain.ByText(text)
	}
	return domain.ByText(longURL)
}
