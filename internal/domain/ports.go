package domain

import (
	"context"

	"gastropath/internal/payload"
)

type PlacesProvider interface {
	FindByIdentifier(ctx context.Context, id string, fields []string) (payload.Node, error)
	FindCandidates(ctx context.Context, text string) ([]string, error)
	FetchDetails(ctx context.Context, id string, fields []string) (payload.Node, error)
}

// PhotoLinker turns a provider photo reference into a fetchable image URL.
type PhotoLinker interface {
	PhotoURL(reference string) string
}

type LinkExpander interface {
	Expand(ctx context.Context, shortURL string) (string, error)
}

type ImageHost interface {
	Upload(ctx context.Context, sourceImageURL string) (string, error)
}

type BusinessDirectory interface {
	Search(ctx context.Context, term, location string, limit int) ([]Business, error)
}

type RecordStore interface {
	// Query returns ids of records whose name is exactly name.
	Query(ctx context.Context, name string) ([]string, error)
	Create(ctx context.Context, rec EnrichedRecord, coverURL *string) error
}
