package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, pdbID string) ([]byte, error) {
	args := m.Called(ctx, pdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, pdbID string) ([]byte, error) {
	args := m.Called(ctx, pdbID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockStore) Put(ctx context.Context, pdbID string, data []byte) error {
	args := m.Called(ctx, pdbID, data)
	return args.Error(0)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Save(ctx context.Context, rec *types.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*types.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Record), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, limit, offset int) ([]*types.Record, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*types.Record), args.Get(1).(int64), args.Error(2)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishCompleted(ctx context.Context, ev *types.CompletedEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type mockRequests struct {
	mock.Mock
}

func (m *mockRequests) PublishRequests(ctx context.Context, msgs []types.RequestedMessage) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

// recordingMetrics captures observations for assertions.
type recordingMetrics struct {
	mu       sync.Mutex
	analyses []string
	fetches  []string
	contacts int
}

func (r *recordingMetrics) ObserveAnalysis(mode, status string, _ time.Duration, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, mode+"/"+status)
}

func (r *recordingMetrics) ObserveContacts(_ string, pairs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts += pairs
}

func (r *recordingMetrics) RecordFetch(source, result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches = append(r.fetches, source+"/"+result)
}

//Personal.AI order the ending
