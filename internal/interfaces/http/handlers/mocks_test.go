package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/interfaces/http/middleware"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockService struct {
	mock.Mock
}

var _ analysis.Service = (*mockService)(nil)

func (m *mockService) Analyze(ctx context.Context, req *types.AnalyzeRequest) (*types.AnalyzeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*types.AnalyzeResponse)
	return resp, args.Error(1)
}

func (m *mockService) AnalyzeText(ctx context.Context, input *analysis.TextInput) (*types.AnalyzeResponse, error) {
	args := m.Called(ctx, input)
	resp, _ := args.Get(0).(*types.AnalyzeResponse)
	return resp, args.Error(1)
}

func (m *mockService) Examples() []types.Example {
	return m.Called().Get(0).([]types.Example)
}

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

func newTestEngine(svc analysis.Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	h := NewAnalysisHandler(svc)
	h.RegisterRoutes(r.Group("/api/v1"))
	h.RegisterLegacyRoutes(r)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

//Personal.AI order the ending
