package app

import (
	"context"
	"regexp"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gastropath/internal/adapters/observability"
	"gastropath/internal/domain"
)

// Pipeline turns a location reference into a persisted, enriched record:
// sanitize, expand, extract, resolve, enrich, upsert.
type Pipeline struct {
	expander domain.LinkExpander
	resolver *Resolver
	enricher *Enricher
	upserter *Upserter
}

func NewPipeline(x domain.LinkExpander, r *Resolver, e *Enricher, u *Upserter) *Pipeline {
	return &Pipeline{expander: x, resolver: r, enricher: e, upserter: u}
}

func (p *Pipeline) Add(ctx context.Context, ref domain.LocationReference) (domain.Outcome, error) {
	logger := log.Logger.With().Str("request_id", requestID(ctx)).Logger()
	ctx = logger.WithContext(ctx)

	out, err := p.add(ctx, ref)
	if err != nil {
		logger.Error().Err(err).Str("kind", string(domain.KindOf(err))).Msg("add restaurant failed")
		observability.ObservePipeline(string(domain.KindOf(err)))
		return domain.Outcome{}, err
	}
	if out.Created {
		observability.ObservePipeline("created")
	} else {
		observability.ObservePipeline("present")
	}
	return out, nil
}

func (p *Pipeline) add(ctx context.Context, ref domain.LocationReference) (domain.Outcome, error) {
	q, err := p.Query(ctx, ref)
	if err != nil {
		return domain.Outcome{}, err
	}

	details, err := p.resolver.Resolve(ctx, q)
	if err != nil {
		return domain.Outcome{}, err
	}

	rec := p.enricher.Enrich(ctx, details)

	created, err := p.upserter.Upsert(ctx, rec)
	if err != nil {
		return domain.Outcome{}, err
	}
	return domain.Outcome{Record: rec, Created: created}, nil
}

// Query sanitizes and expands URL references and extracts the place query.
// Only input without any URL structure is searched as free text; everything
// else must pass SanitizeURL.
func (p *Pipeline) Query(ctx context.Context, ref domain.LocationReference) (domain.PlaceQuery, error) {
	logger := zerolog.Ctx(ctx)
	raw := strings.TrimSpace(string(ref))
	if raw == "" {
		return domain.PlaceQuery{}, domain.NewError(domain.InvalidFormat, "empty location reference")
	}
	if !looksLikeURL(raw) {
		return domain.ByText(raw), nil
	}

	sanitized, err := SanitizeURL(raw)
	if err != nil {
		return domain.PlaceQuery{}, err
	}
	logger.Info().Str("url", sanitized).Msg("sanitized URL")

	expanded, err := p.expander.Expand(ctx, sanitized)
	if err != nil {
		return domain.PlaceQuery{}, domain.WrapError(domain.NetworkFailure, "failed to expand short URL", err)
	}
	logger.Info().Str("url", expanded).Msg("expanded URL")

	q := ExtractQuery(expanded)
	logger.Debug().Stringer("query", q).Msg("extracted place query")
	return q, nil
}

var schemePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// looksLikeURL reports input with a scheme, a network-path prefix, or a
// leading host-like segment such as "maps.app.goo.gl/abc".
func looksLikeURL(s string) bool {
	if strings.HasPrefix(s, "//") || schemePrefix.MatchString(s) {
		return true
	}
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	host, _, hasPath := strings.Cut(s, "/")
	return hasPath && strings.Contains(host, ".")
}

func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
