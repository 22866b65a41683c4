// Package analysis is the application service behind every ProteinScope
// surface. It resolves structure text through the tiered source, runs the
// computational core and records, publishes and measures each analysis.
package analysis

import (
	"context"
	"time"

	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

// Fetcher downloads structure text from the origin archive.
type Fetcher interface {
	Fetch(ctx context.Context, pdbID string) ([]byte, error)
}

// TextStore is a tier that holds raw structure text. A miss is reported as
// an error for which errors.IsNotFound is true.
type TextStore interface {
	Get(ctx context.Context, pdbID string) ([]byte, error)
	Put(ctx context.Context, pdbID string, data []byte) error
}

// Repository persists analysis records.
type Repository interface {
	Save(ctx context.Context, rec *types.Record) error
	FindByID(ctx context.Context, id string) (*types.Record, error)
	List(ctx context.Context, limit, offset int) ([]*types.Record, int64, error)
}

// EventPublisher emits completion events.
type EventPublisher interface {
	PublishCompleted(ctx context.Context, ev *types.CompletedEvent) error
}

// RequestPublisher enqueues analysis requests for the worker.
type RequestPublisher interface {
	PublishRequests(ctx context.Context, msgs []types.RequestedMessage) error
}

// Metrics receives analysis and fetch observations.
type Metrics interface {
	ObserveAnalysis(mode, status string, duration time.Duration, atoms int)
	ObserveContacts(mode string, pairs int)
	RecordFetch(source, result string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveAnalysis(string, string, time.Duration, int) {}
func (nopMetrics) ObserveContacts(string, int)                       {}
func (nopMetrics) RecordFetch(string, string)                        {}

//Personal.AI order the ending
