package analysis

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Source names reported in responses and metrics.
const (
	SourceCache   = "cache"
	SourceArchive = "archive"
	SourceOrigin  = "rcsb"
	SourceUpload  = "upload"
)

// DefaultFetchTimeout bounds a shared resolution when no timeout is set.
const DefaultFetchTimeout = 30 * time.Second

// Fetched is structure text together with the tier that served it.
type Fetched struct {
	Data   []byte
	Source string
}

// TieredSource resolves structure text from the cache, then the archive,
// then the origin, backfilling the faster tiers on the way out. Concurrent
// lookups of one id share a single resolution, which runs detached from any
// one caller so a cancelled caller does not fail the others. Cache and
// archive failures degrade to a miss; only an origin failure is returned.
type TieredSource struct {
	cache   TextStore
	archive TextStore
	origin  Fetcher
	metrics Metrics
	logger  logging.Logger
	timeout time.Duration
	group   singleflight.Group
}

// SourceOption configures a TieredSource.
type SourceOption func(*TieredSource)

// WithCache adds the fastest tier.
func WithCache(c TextStore) SourceOption {
	return func(s *TieredSource) { s.cache = c }
}

// WithArchive adds the durable tier between the cache and the origin.
func WithArchive(a TextStore) SourceOption {
	return func(s *TieredSource) { s.archive = a }
}

// WithSourceMetrics records a fetch observation per tier lookup.
func WithSourceMetrics(m Metrics) SourceOption {
	return func(s *TieredSource) { s.metrics = m }
}

// WithFetchTimeout bounds the shared resolution of one id.
func WithFetchTimeout(d time.Duration) SourceOption {
	return func(s *TieredSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewTieredSource returns a source backed by origin and the optional tiers.
func NewTieredSource(origin Fetcher, log logging.Logger, opts ...SourceOption) *TieredSource {
	s := &TieredSource{origin: origin, logger: log, metrics: nopMetrics{}, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the text of pdbID, which must already be normalized. The
// caller stops waiting when ctx is done; the shared resolution keeps running
// for the other waiters.
func (s *TieredSource) Fetch(ctx context.Context, pdbID string) (*Fetched, error) {
	ch := s.group.DoChan(pdbID, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.resolve(fctx, pdbID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("structure fetch shared", logging.String(logging.FieldPDBID, pdbID))
		}
		return res.Val.(*Fetched), nil
	}
}

func (s *TieredSource) resolve(ctx context.Context, pdbID string) (*Fetched, error) {
	if data, ok := s.lookup(ctx, s.cache, SourceCache, pdbID); ok {
		return &Fetched{Data: data, Source: SourceCache}, nil
	}
	if data, ok := s.lookup(ctx, s.archive, SourceArchive, pdbID); ok {
		s.backfill(ctx, s.cache, SourceCache, pdbID, data)
		return &Fetched{Data: data, Source: SourceArchive}, nil
	}

	data, err := s.origin.Fetch(ctx, pdbID)
	if err != nil {
		result := "error"
		if errors.IsNotFound(err) {
			result = "not_found"
		}
		s.metrics.RecordFetch(SourceOrigin, result)
		return nil, err
	}
	s.metrics.RecordFetch(SourceOrigin, "hit")

	s.backfill(ctx, s.archive, SourceArchive, pdbID, data)
	s.backfill(ctx, s.cache, SourceCache, pdbID, data)
	return &Fetched{Data: data, Source: SourceOrigin}, nil
}

func (s *TieredSource) lookup(ctx context.Context, tier TextStore, name, pdbID string) ([]byte, bool) {
	if tier == nil {
		return nil, false
	}
	data, err := tier.Get(ctx, pdbID)
	switch {
	case err == nil:
		s.metrics.RecordFetch(name, "hit")
		return data, true
	case errors.IsNotFound(err):
		s.metrics.RecordFetch(name, "miss")
	default:
		s.metrics.RecordFetch(name, "error")
		s.logger.Warn("structure tier unavailable",
			logging.String("tier", name),
			logging.String(logging.FieldPDBID, pdbID),
			logging.Err(err))
	}
	return nil, false
}

func (s *TieredSource) backfill(ctx context.Context, tier TextStore, name, pdbID string, data []byte) {
	if tier == nil {
		return
	}
	if err := tier.Put(ctx, pdbID, data); err != nil {
		s.logger.Warn("structure backfill failed",
			logging.String("tier", name),
			logging.String(logging.FieldPDBID, pdbID),
			logging.Err(err))
	}
}

//Personal.AI order the ending
