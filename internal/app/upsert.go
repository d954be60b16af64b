package app

import (
	"context"

	"github.com/rs/zerolog"

	"gastropath/internal/domain"
)

type Upserter struct {
	store domain.RecordStore
}

func NewUpserter(s domain.RecordStore) *Upserter {
	return &Upserter{store: s}
}

// Upsert creates rec unless a record with the same name exists. Existing
// records are never updated (first write wins). The check and the create are
// two separate calls, so concurrent requests for one new name can both create.
func (u *Upserter) Upsert(ctx context.Context, rec domain.EnrichedRecord) (created bool, err error) {
	logger := zerolog.Ctx(ctx).With().Str("name", rec.Name).Logger()

	ids, err := u.store.Query(ctx, rec.Name)
	if err != nil {
		return false, domain.WrapError(domain.PersistFailure, "record lookup failed", err)
	}
	if len(ids) > 0 {
		logger.Info().Str("record_id", ids[0]).Msg("record already present, skipping create")
		return false, nil
	}

	if err := u.store.Create(ctx, rec, rec.CoverURL); err != nil {
		return false, domain.WrapError(domain.PersistFailure, "failed to create record", err)
	}
	logger.Info().Msg("record created")
	return true, nil
}
