package app

import (
	"context"

	"github.com/rs/zerolog"

	"gastropath/internal/domain"
	"gastropath/internal/payload"
)

type Resolver struct {
	places domain.PlacesProvider
}

func NewResolver(p domain.PlacesProvider) *Resolver {
	return &Resolver{places: p}
}

// Resolve looks a place up either directly by identifier or by text search
// followed by a detail fetch of the first candidate. A result without a name
// is reported as NotFound.
func (r *Resolver) Resolve(ctx context.Context, q domain.PlaceQuery) (domain.PlaceDetails, error) {
	logger := zerolog.Ctx(ctx)

	var (
		res payload.Node
		err error
	)
	if id, ok := q.Identifier(); ok {
		logger.Debug().Str("id", id).Msg("resolving place by identifier")
		res, err = r.places.FindByIdentifier(ctx, id, domain.DetailFields)
		if err != nil {
			return domain.PlaceDetails{}, domain.WrapError(domain.UpstreamFailure, "place lookup by identifier failed", err)
		}
	} else {
		res, err = r.resolveByText(ctx, q.Text())
		if err != nil {
			return domain.PlaceDetails{}, err
		}
	}

	d := Normalize(res)
	if d.Name == domain.SentinelName {
		return domain.PlaceDetails{}, domain.NewError(domain.NotFound, "Place details not found: Unknown place")
	}
	logger.Debug().Str("name", d.Name).Str("city", d.City).Msg("place resolved")
	return d, nil
}

func (r *Resolver) resolveByText(ctx context.Context, text string) (payload.Node, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("query", text).Msg("resolving place by text")

	ids, err := r.places.FindCandidates(ctx, text)
	if err != nil {
		return payload.Node{}, domain.WrapError(domain.UpstreamFailure, "place search failed", err)
	}
	if len(ids) == 0 || ids[0] == "" {
		return payload.Node{}, domain.NewError(domain.NotFound, "No place_id found")
	}

	res, err := r.places.FetchDetails(ctx, ids[0], domain.DetailFields)
	if err != nil {
		return payload.Node{}, domain.WrapError(domain.UpstreamFailure, "place details fetch failed", err)
	}
	return res, nil
}
