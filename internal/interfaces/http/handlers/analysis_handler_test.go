package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

func decode[T any](t *testing.T, body []byte) common.APIResponse[T] {
	t.Helper()
	var resp common.APIResponse[T]
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func sampleResponse() *types.AnalyzeResponse {
	return &types.AnalyzeResponse{
		ID:      "a1",
		PDBID:   "1CRN",
		VizMode: "backbone",
		Format:  types.FormatScene,
		ProteinInfo: types.ProteinInfo{
			AtomCount:    327,
			ResidueCount: 46,
			Composition:  map[string]int{"THR": 7},
		},
		SecondaryStructure: types.SecondaryStructure{Helix: 14, Sheet: 8, Coil: 24},
		PlotData:           json.RawMessage(`{"series":[],"layout":{}}`),
	}
}

func TestAnalyze_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("Analyze", mock.Anything, &types.AnalyzeRequest{PDBID: "1crn", VizMode: "backbone", Format: types.FormatScene}).
		Return(sampleResponse(), nil)

	w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyze", `{"pdb_id":"1crn","viz_mode":"backbone"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[types.AnalyzeResponse](t, w.Body.Bytes())
	assert.True(t, resp.Success)
	assert.Equal(t, "1CRN", resp.Data.PDBID)
	assert.Equal(t, 14, resp.Data.SecondaryStructure.Helix)
	assert.Equal(t, w.Header().Get("X-Request-ID"), resp.RequestID)
	svc.AssertExpectations(t)
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid id", errors.New(errors.ErrCodeInvalidPDBID, "invalid PDB ID").WithDetail("XX"), http.StatusBadRequest, "STRUCT_004"},
		{"parse failed", errors.New(errors.ErrCodeStructureParseFailed, "failed to parse structure"), http.StatusBadRequest, "STRUCT_002"},
		{"too large", errors.New(errors.ErrCodeStructureTooLarge, "too many atoms"), http.StatusBadRequest, "STRUCT_003"},
		{"not found", errors.New(errors.ErrCodeStructureNotFound, "structure not found"), http.StatusNotFound, "STRUCT_005"},
		{"upstream", errors.New(errors.ErrCodeStructureFetchFailed, "structure service returned 503"), http.StatusBadGateway, "STRUCT_006"},
		{"internal", errors.New(errors.ErrCodeDatabaseError, "pq: connection refused"), http.StatusInternalServerError, "COMMON_001"},
		{"plain error", assert.AnError, http.StatusInternalServerError, "COMMON_001"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Analyze", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyze", `{"pdb_id":"1CRN"}`)

			assert.Equal(t, tc.status, w.Code)
			resp := decode[any](t, w.Body.Bytes())
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
			if tc.status == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", resp.Error.Message)
			}
		})
	}
}

func TestAnalyze_MalformedBody(t *testing.T) {
	svc := &mockService{}
	w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyze", `{"pdb_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "COMMON_002", decode[any](t, w.Body.Bytes()).Error.Code)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyze_PlotlyFormat(t *testing.T) {
	svc := &mockService{}
	svc.On("Analyze", mock.Anything, mock.MatchedBy(func(r *types.AnalyzeRequest) bool {
		return r.Format == types.FormatPlotly
	})).Return(sampleResponse(), nil)

	w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyze", `{"pdb_id":"1CRN","format":"PLOTLY"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestUpload(t *testing.T) {
	svc := &mockService{}
	svc.On("AnalyzeText", mock.Anything, mock.MatchedBy(func(in *analysis.TextInput) bool {
		return in.ID == "MYPROT" && in.VizMode == "atoms" && in.Format == types.FormatScene &&
			string(in.Data) == "ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00  0.00           C\n"
	})).Return(sampleResponse(), nil)

	w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyze/upload?id=myprot&mode=atoms",
		"ATOM      1  CA  ALA A   1       0.000   0.000   0.000  1.00  0.00           C\n")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestUpload_Empty(t *testing.T) {
	svc := &mockService{}
	svc.On("AnalyzeText", mock.Anything, mock.Anything).
		Return(nil, errors.New(errors.ErrCodeStructureEmpty, "no structure data supplied"))

	w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyze/upload", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "STRUCT_001", decode[any](t, w.Body.Bytes()).Error.Code)
}

func TestBatch(t *testing.T) {
	svc := &mockService{}
	svc.On("Enqueue", mock.Anything, &types.BatchRequest{PDBIDs: []string{"1UBQ", "bad"}, VizMode: "surface"}).
		Return(&types.BatchResponse{
			Accepted: []types.RequestedMessage{{RequestID: "r1", PDBID: "1UBQ", VizMode: "surface"}},
			Rejected: []types.BatchRejection{{PDBID: "bad", Code: "STRUCT_004", Message: "invalid PDB ID"}},
		}, nil)

	w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyses/batch", `{"pdb_ids":["1UBQ","bad"],"viz_mode":"surface"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	resp := decode[types.BatchResponse](t, w.Body.Bytes())
	require.Len(t, resp.Data.Accepted, 1)
	assert.Equal(t, "r1", resp.Data.Accepted[0].RequestID)
	assert.Len(t, resp.Data.Rejected, 1)
}

func TestBatch_Disabled(t *testing.T) {
	svc := &mockService{}
	svc.On("Enqueue", mock.Anything, mock.Anything).
		Return(nil, errors.New(errors.ErrCodeFeatureDisabled, "batch analysis is not enabled"))

	w := doRequest(newTestEngine(svc), http.MethodPost, "/api/v1/analyses/batch", `{"pdb_ids":["1UBQ"]}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "COMMON_015", decode[any](t, w.Body.Bytes()).Error.Code)
}

func TestGetAnalysis(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, "3f2a").Return(&types.Record{ID: "3f2a", PDBID: "1TIM", AtomCount: 3740}, nil)
	svc.On("Get", mock.Anything, "missing").Return(nil, errors.NotFound("analysis not found"))
	r := newTestEngine(svc)

	w := doRequest(r, http.MethodGet, "/api/v1/analyses/3f2a", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3740, decode[types.Record](t, w.Body.Bytes()).Data.AtomCount)

	w = doRequest(r, http.MethodGet, "/api/v1/analyses/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAnalyses(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, common.Pagination{Limit: 2, Offset: 4}).
		Return([]*types.Record{{ID: "a"}, {ID: "b"}}, int64(9), nil)
	svc.On("List", mock.Anything, common.Pagination{Limit: common.MaxPageLimit}).
		Return([]*types.Record{}, int64(0), nil)
	r := newTestEngine(svc)

	w := doRequest(r, http.MethodGet, "/api/v1/analyses?limit=2&offset=4", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]types.Record](t, w.Body.Bytes())
	assert.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, int64(9), resp.Pagination.Total)

	w = doRequest(r, http.MethodGet, "/api/v1/analyses?limit=100000&offset=-3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestExamples(t *testing.T) {
	svc := &mockService{}
	svc.On("Examples").Return(analysis.Examples())
	r := newTestEngine(svc)

	w := doRequest(r, http.MethodGet, "/api/v1/examples", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]types.Example](t, w.Body.Bytes())
	require.Len(t, resp.Data, 5)
	assert.Equal(t, "1HHB", resp.Data[0].ID)

	w = doRequest(r, http.MethodGet, "/examples", "")
	require.Equal(t, http.StatusOK, w.Code)
	var bare []types.Example
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bare))
	assert.Equal(t, "1TIM", bare[4].ID)
}

func TestLegacyAnalyze(t *testing.T) {
	svc := &mockService{}
	svc.On("Analyze", mock.Anything, mock.MatchedBy(func(r *types.AnalyzeRequest) bool {
		return r.PDBID == "1CRN" && r.Format == types.FormatPlotly
	})).Return(sampleResponse(), nil)

	w := doRequest(newTestEngine(svc), http.MethodPost, "/analyze", `{"pdb_id":"1CRN","viz_mode":"backbone"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "protein_info")
	assert.Contains(t, body, "plot_data")
	assert.NotContains(t, body, "success")
	assert.JSONEq(t, `"backbone"`, string(body["viz_mode"]))
}

func TestLegacyAnalyze_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want string
		code int
	}{
		{"missing id", `{"pdb_id":""}`, errors.New(errors.ErrCodeInvalidPDBID, "Please provide a PDB ID"), "Please provide a PDB ID", http.StatusBadRequest},
		{"fetch", `{"pdb_id":"9zzz"}`, errors.New(errors.ErrCodeStructureNotFound, "structure not found"), "Could not fetch PDB structure for 9ZZZ", http.StatusBadRequest},
		{"parse", `{"pdb_id":"1CRN"}`, errors.New(errors.ErrCodeStructureEmpty, "structure contains no atoms"), "Could not parse PDB structure", http.StatusBadRequest},
		{"internal", `{"pdb_id":"1CRN"}`, assert.AnError, "internal server error", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Analyze", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := doRequest(newTestEngine(svc), http.MethodPost, "/analyze", tc.body)
			assert.Equal(t, tc.code, w.Code)
			var body types.LegacyError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.want, body.Error)
		})
	}
}

func TestLegacyAnalyze_NoBody(t *testing.T) {
	w := doRequest(newTestEngine(&mockService{}), http.MethodPost, "/analyze", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Please provide a PDB ID"}`, w.Body.String())
}

//Personal.AI order the ending
