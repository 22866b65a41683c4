package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

// AnalysesClient calls the /api/v1 analysis routes.
type AnalysesClient struct {
	client *Client
}

// UploadRequest analyses structure text supplied by the caller.
type UploadRequest struct {
	ID      string
	VizMode string
	Format  types.Format
	Data    []byte
}

// RecordPage is one page of persisted analyses.
type RecordPage struct {
	Records    []*types.Record
	Pagination common.Pagination
}

// Analyze fetches and analyses one structure by PDB id.
func (a *AnalysesClient) Analyze(ctx context.Context, req *types.AnalyzeRequest) (*types.AnalyzeResponse, error) {
	if req == nil || strings.TrimSpace(req.PDBID) == "" {
		return nil, errors.New(errors.ErrCodeInvalidPDBID, "Please provide a PDB ID")
	}
	r, err := jsonRequest(http.MethodPost, apiPrefix+"/analyze", req)
	if err != nil {
		return nil, err
	}
	env, err := call[*types.AnalyzeResponse](ctx, a.client, r)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Upload analyses raw PDB text.
func (a *AnalysesClient) Upload(ctx context.Context, req *UploadRequest) (*types.AnalyzeResponse, error) {
	if req == nil || len(req.Data) == 0 {
		return nil, errors.New(errors.ErrCodeStructureEmpty, "structure text is empty")
	}
	q := url.Values{}
	if req.ID != "" {
		q.Set("id", req.ID)
	}
	if req.VizMode != "" {
		q.Set("mode", req.VizMode)
	}
	if req.Format != "" {
		q.Set("format", string(req.Format))
	}
	r := &request{
		method:      http.MethodPost,
		path:        apiPrefix + "/analyze/upload",
		query:       q,
		body:        req.Data,
		contentType: "chemical/x-pdb",
	}
	env, err := call[*types.AnalyzeResponse](ctx, a.client, r)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Examples returns the example catalog.
func (a *AnalysesClient) Examples(ctx context.Context) ([]types.Example, error) {
	env, err := call[[]types.Example](ctx, a.client, &request{method: http.MethodGet, path: apiPrefix + "/examples"})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Get returns one persisted analysis.
func (a *AnalysesClient) Get(ctx context.Context, id string) (*types.Record, error) {
	if id == "" {
		return nil, errors.InvalidParam("analysis id is required")
	}
	path := apiPrefix + "/analyses/" + url.PathEscape(id)
	env, err := call[*types.Record](ctx, a.client, &request{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// List returns persisted analyses, newest first.
func (a *AnalysesClient) List(ctx context.Context, limit, offset int) (*RecordPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	env, err := call[[]*types.Record](ctx, a.client, &request{method: http.MethodGet, path: apiPrefix + "/analyses", query: q})
	if err != nil {
		return nil, err
	}
	page := &RecordPage{Records: env.Data}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

// Batch enqueues analyses for the worker.
func (a *AnalysesClient) Batch(ctx context.Context, req *types.BatchRequest) (*types.BatchResponse, error) {
	if req == nil || len(req.PDBIDs) == 0 {
		return nil, errors.InvalidParam("pdb_ids must not be empty")
	}
	r, err := jsonRequest(http.MethodPost, apiPrefix+"/analyses/batch", req)
	if err != nil {
		return nil, err
	}
	env, err := call[*types.BatchResponse](ctx, a.client, r)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

//Personal.AI order the ending
