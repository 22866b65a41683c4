package redis

import (
	"context"
	"time"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

// CachedRepository is a read-through cache in front of an analysis
// repository. Records are immutable once saved, so entries are never
// invalidated; unknown ids are remembered briefly as misses.
type CachedRepository struct {
	inner  analysis.Repository
	cache  Cache
	ttl    time.Duration
	logger logging.Logger
}

func NewCachedRepository(inner analysis.Repository, cache Cache, ttl time.Duration, log logging.Logger) *CachedRepository {
	return &CachedRepository{inner: inner, cache: cache, ttl: ttl, logger: log}
}

func recordKey(id string) string {
	return "analysis:" + id
}

func (r *CachedRepository) Save(ctx context.Context, rec *types.Record) error {
	if err := r.inner.Save(ctx, rec); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, recordKey(rec.ID), rec, r.ttl); err != nil {
		r.logger.Warn("failed to cache analysis record", logging.String(logging.FieldAnalysisID, rec.ID), logging.Err(err))
	}
	return nil
}

func (r *CachedRepository) FindByID(ctx context.Context, id string) (*types.Record, error) {
	var rec types.Record
	err := r.cache.GetOrSet(ctx, recordKey(id), &rec, r.ttl, func(ctx context.Context) (interface{}, error) {
		found, err := r.inner.FindByID(ctx, id)
		if errors.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return found, nil
	})
	switch {
	case err == nil:
		return &rec, nil
	case err == ErrCacheMiss:
		return nil, errors.NotFound("analysis not found").WithDetail(id)
	case errors.IsCode(err, errors.ErrCodeCacheError), errors.IsCode(err, errors.ErrCodeSerialization):
		r.logger.Warn("record cache unavailable", logging.Err(err))
		return r.inner.FindByID(ctx, id)
	default:
		return nil, err
	}
}

func (r *CachedRepository) List(ctx context.Context, limit, offset int) ([]*types.Record, int64, error) {
	return r.inner.List(ctx, limit, offset)
}

//Personal.AI order the ending
