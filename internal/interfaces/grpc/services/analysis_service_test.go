package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Analyze(ctx context.Context, req *types.AnalyzeRequest) (*types.AnalyzeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*types.AnalyzeResponse)
	return resp, args.Error(1)
}

func (m *mockService) AnalyzeText(ctx context.Context, in *analysis.TextInput) (*types.AnalyzeResponse, error) {
	args := m.Called(ctx, in)
	resp, _ := args.Get(0).(*types.AnalyzeResponse)
	return resp, args.Error(1)
}

func (m *mockService) Examples() []types.Example { return m.Called().Get(0).([]types.Example) }

func (m *mockService) Get(ctx context.Context, id string) (*types.Record, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*types.Record)
	return rec, args.Error(1)
}

func (m *mockService) List(ctx context.Context, page common.Pagination) ([]*types.Record, int64, error) {
	args := m.Called(ctx, page)
	recs, _ := args.Get(0).([]*types.Record)
	return recs, args.Get(1).(int64), args.Error(2)
}

func (m *mockService) Enqueue(ctx context.Context, req *types.BatchRequest) (*types.BatchResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*types.BatchResponse)
	return resp, args.Error(1)
}

func (m *mockService) Process(ctx context.Context, msg types.RequestedMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func mustStruct(t *testing.T, m map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestAnalyze_ByPDBID(t *testing.T) {
	svc := &mockService{}
	svc.On("Analyze", mock.Anything, &types.AnalyzeRequest{PDBID: "1UBQ", VizMode: "surface", Format: types.FormatPlotly}).
		Return(&types.AnalyzeResponse{
			PDBID:       "1UBQ",
			VizMode:     "surface",
			ProteinInfo: types.ProteinInfo{AtomCount: 660, Charge: 0.3},
			PlotData:    json.RawMessage(`{"data":[{"type":"mesh3d"}]}`),
		}, nil)

	out, err := NewAnalysisService(svc, nil).Analyze(context.Background(),
		mustStruct(t, map[string]interface{}{"pdb_id": "1UBQ", "viz_mode": "surface", "format": "plotly"}))
	require.NoError(t, err)

	m := out.AsMap()
	assert.Equal(t, "1UBQ", m["pdb_id"])
	info := m["protein_info"].(map[string]interface{})
	assert.Equal(t, float64(660), info["atom_count"])
	plot := m["plot_data"].(map[string]interface{})
	assert.Len(t, plot["data"], 1)
}

func TestAnalyze_Upload(t *testing.T) {
	svc := &mockService{}
	svc.On("AnalyzeText", mock.Anything, mock.MatchedBy(func(in *analysis.TextInput) bool {
		return in.ID == "mine" && string(in.Data) == "ATOM" && in.Format == types.FormatScene
	})).Return(&types.AnalyzeResponse{PDBID: "mine"}, nil)

	_, err := NewAnalysisService(svc, nil).Analyze(context.Background(),
		mustStruct(t, map[string]interface{}{"pdb_text": "ATOM", "id": "mine"}))
	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestAnalyze_ErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{errors.New(errors.ErrCodeInvalidPDBID, "invalid PDB ID"), codes.InvalidArgument},
		{errors.New(errors.ErrCodeStructureNotFound, "structure not found"), codes.NotFound},
		{errors.New(errors.ErrCodeStructureFetchFailed, "structure download failed"), codes.Unavailable},
		{errors.New(errors.ErrCodeDatabaseError, "secret dsn"), codes.Internal},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{context.Canceled, codes.Canceled},
		{assert.AnError, codes.Internal},
	}
	for _, tc := range cases {
		svc := &mockService{}
		svc.On("Analyze", mock.Anything, mock.Anything).Return(nil, tc.err)

		_, err := NewAnalysisService(svc, nil).Analyze(context.Background(), mustStruct(t, map[string]interface{}{"pdb_id": "1UBQ"}))
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, tc.code, st.Code(), tc.err.Error())
		if tc.code == codes.Internal {
			assert.Equal(t, "internal server error", st.Message())
		}
	}
}

func TestAnalyze_NilRequest(t *testing.T) {
	_, err := NewAnalysisService(&mockService{}, nil).Analyze(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestExamples(t *testing.T) {
	svc := &mockService{}
	svc.On("Examples").Return(analysis.Examples())

	out, err := NewAnalysisService(svc, nil).Examples(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	list := out.AsMap()["examples"].([]interface{})
	require.Len(t, list, 5)
	assert.Equal(t, "1HHB", list[0].(map[string]interface{})["id"])
}

func TestToStatus_KeepsCodeInMessage(t *testing.T) {
	err := toStatus(errors.New(errors.ErrCodeInvalidPDBID, "invalid PDB ID").WithDetail("XYZ"))
	assert.Equal(t, "[STRUCT_004] invalid PDB ID: XYZ", status.Convert(err).Message())
	assert.Nil(t, toStatus(nil))
}

//Personal.AI order the ending
