package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"gastropath/internal/adapters/observability"
	"gastropath/internal/domain"
)

type Enricher struct {
	photos    domain.PhotoLinker
	images    domain.ImageHost
	directory domain.BusinessDirectory
}

func NewEnricher(p domain.PhotoLinker, img domain.ImageHost, dir domain.BusinessDirectory) *Enricher {
	return &Enricher{photos: p, images: img, directory: dir}
}

// Enrich runs the cover and cuisine lookups side by side. Neither can fail
// the caller: failures become an absent cover or the unknown cuisine marker.
func (e *Enricher) Enrich(ctx context.Context, d domain.PlaceDetails) domain.EnrichedRecord {
	var (
		cover   *string
		cuisine = domain.UnknownCuisine
		g       errgroup.Group
	)
	g.Go(func() error {
		cover = e.Cover(ctx, d.PhotoReference)
		return nil
	})
	g.Go(func() error {
		cuisine = e.Cuisine(ctx, d.Name, d.City)
		return nil
	})
	_ = g.Wait()

	return d.Enrich(cuisine, cover)
}

// Cover uploads the referenced photo and returns its hosted URL, or nil.
func (e *Enricher) Cover(ctx context.Context, ref *string) *string {
	logger := zerolog.Ctx(ctx)
	if ref == nil || *ref == "" {
		logger.Warn().Msg("no photo reference provided, skipping cover")
		observability.ObserveEnrichmentFailure("cover")
		return nil
	}

	secure, err := e.images.Upload(ctx, e.photos.PhotoURL(*ref))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to upload image")
		observability.ObserveEnrichmentFailure("cover")
		return nil
	}
	logger.Debug().Str("cover", secure).Msg("cover uploaded")
	return &secure
}

// Cuisine returns the first directory match's category titles joined for
// display. No match, transport errors and provider errors all yield the
// unknown marker.
func (e *Enricher) Cuisine(ctx context.Context, name, city string) string {
	logger := zerolog.Ctx(ctx).With().Str("name", name).Str("city", city).Logger()

	matches, err := e.directory.Search(ctx, name, city, 1)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to get cuisine type")
		observability.ObserveEnrichmentFailure("cuisine")
		return domain.UnknownCuisine
	}
	if len(matches) == 0 {
		logger.Warn().Msg("no cuisine type found")
		observability.ObserveEnrichmentFailure("cuisine")
		return domain.UnknownCuisine
	}

	titles := make([]string, 0, len(matches[0].Categories))
	for _, c := range matches[0].Categories {
		if c.Title != "" {
			titles = append(titles, c.Title)
		}
	}
	if len(titles) == 0 {
		logger.Warn().Msg("match has no categories")
		observability.ObserveEnrichmentFailure("cuisine")
		return domain.UnknownCuisine
	}
	logger.Debug().Strs("cuisine", titles).Msg("found cuisine types")
	return strings.Join(titles, domain.CuisineSeparator)
}
