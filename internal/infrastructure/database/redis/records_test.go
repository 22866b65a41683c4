package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
	"github.com/turtacn/ProteinScope/pkg/types/common"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Save(ctx context.Context, rec *types.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*types.Record, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*types.Record)
	return rec, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, limit, offset int) ([]*types.Record, int64, error) {
	args := m.Called(ctx, limit, offset)
	recs, _ := args.Get(0).([]*types.Record)
	return recs, args.Get(1).(int64), args.Error(2)
}

const recordID = "0b9d2c1e-6a53-4f4e-9a43-0f1c3d2e8b11"

func sampleRecord() *types.Record {
	return &types.Record{
		ID:        recordID,
		PDBID:     "1UBQ",
		VizMode:   "backbone",
		AtomCount: 660,
		Summary:   types.ProteinInfo{MolecularWeight: 8564.8, AtomCount: 660, ResidueCount: 76},
		CreatedAt: common.Timestamp(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func newCachedRepository(t *testing.T) (*CachedRepository, *mockRepository, redismock.ClientMock) {
	t.Helper()
	db, rmock := redismock.NewClientMock()
	log := logging.NewNopLogger()
	cache := NewRedisCache(NewClientFromUniversal(db, config.RedisConfig{}, log), log, WithPrefix("ps:"), WithoutJitter())
	inner := &mockRepository{}
	return NewCachedRepository(inner, cache, time.Hour, log), inner, rmock
}

func TestCachedRepository_SaveWritesThrough(t *testing.T) {
	repo, inner, rmock := newCachedRepository(t)
	rec := sampleRecord()
	payload, _ := json.Marshal(rec)

	inner.On("Save", mock.Anything, rec).Return(nil)
	rmock.ExpectSet("ps:analysis:"+recordID, payload, time.Hour).SetVal("OK")

	require.NoError(t, repo.Save(context.Background(), rec))
	inner.AssertExpectations(t)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedRepository_SaveFailureSkipsCache(t *testing.T) {
	repo, inner, rmock := newCachedRepository(t)
	rec := sampleRecord()
	inner.On("Save", mock.Anything, rec).Return(errors.New(errors.ErrCodeDatabaseError, "insert failed"))

	err := repo.Save(context.Background(), rec)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatabaseError))
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedRepository_FindHitSkipsInner(t *testing.T) {
	repo, inner, rmock := newCachedRepository(t)
	payload, _ := json.Marshal(sampleRecord())
	rmock.ExpectGet("ps:analysis:" + recordID).SetVal(string(payload))

	rec, err := repo.FindByID(context.Background(), recordID)
	require.NoError(t, err)
	assert.Equal(t, "1UBQ", rec.PDBID)
	assert.Equal(t, 660, rec.AtomCount)
	inner.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCachedRepository_FindMissLoads(t *testing.T) {
	repo, inner, rmock := newCachedRepository(t)
	rec := sampleRecord()
	payload, _ := json.Marshal(rec)

	rmock.ExpectGet("ps:analysis:" + recordID).RedisNil()
	inner.On("FindByID", mock.Anything, recordID).Return(rec, nil)
	rmock.ExpectSet("ps:analysis:"+recordID, payload, time.Hour).SetVal("OK")

	got, err := repo.FindByID(context.Background(), recordID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Summary, got.Summary)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedRepository_FindUnknownCachesMiss(t *testing.T) {
	repo, inner, rmock := newCachedRepository(t)

	rmock.ExpectGet("ps:analysis:" + recordID).RedisNil()
	inner.On("FindByID", mock.Anything, recordID).Return(nil, errors.NotFound("analysis not found"))
	rmock.ExpectSet("ps:analysis:"+recordID, nullMarker, 30*time.Second).SetVal("OK")

	_, err := repo.FindByID(context.Background(), recordID)
	assert.True(t, errors.IsNotFound(err))
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestCachedRepository_CacheDownFallsBack(t *testing.T) {
	repo, inner, rmock := newCachedRepository(t)
	rec := sampleRecord()

	rmock.ExpectGet("ps:analysis:" + recordID).SetErr(stderrors.New("connection refused"))
	inner.On("FindByID", mock.Anything, recordID).Return(rec, nil)

	got, err := repo.FindByID(context.Background(), recordID)
	require.NoError(t, err)
	assert.Same(t, rec, got)
}

func TestCachedRepository_ListPassesThrough(t *testing.T) {
	repo, inner, _ := newCachedRepository(t)
	recs := []*types.Record{sampleRecord()}
	inner.On("List", mock.Anything, 20, 0).Return(recs, int64(1), nil)

	got, total, err := repo.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, recs, got)
}

//Personal.AI order the ending
