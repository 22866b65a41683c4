package handlers

import (
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

// AnalysisHandler serves the analysis routes.
type AnalysisHandler struct {
	service analysis.Service
}

// NewAnalysisHandler creates a handler backed by service.
func NewAnalysisHandler(service analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// RegisterRoutes mounts the versioned routes on rg. limited wraps the routes
// that may reach the structure download service.
func (h *AnalysisHandler) RegisterRoutes(rg *gin.RouterGroup, limited ...gin.HandlerFunc) {
	rg.POST("/analyze", append(limited, h.Analyze)...)
	rg.POST("/analyze/upload", append(limited, h.Upload)...)
	rg.POST("/analyses/batch", append(limited, h.Batch)...)
	rg.GET("/analyses/:id", h.Get)
	rg.GET("/analyses", h.List)
	rg.GET("/examples", h.Examples)
}

// RegisterLegacyRoutes mounts the unversioned routes on the engine root.
func (h *AnalysisHandler) RegisterLegacyRoutes(r gin.IRoutes, limited ...gin.HandlerFunc) {
	r.POST("/analyze", append(limited, h.LegacyAnalyze)...)
	r.GET("/examples", h.LegacyExamples)
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	req.Format = types.ParseFormat(string(req.Format))

	resp, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, resp)
}

// Upload handles POST /api/v1/analyze/upload with a raw PDB text body.
func (h *AnalysisHandler) Upload(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, bindError(err))
		return
	}
	resp, err := h.service.AnalyzeText(c.Request.Context(), &analysis.TextInput{
		ID:      strings.ToUpper(strings.TrimSpace(c.Query("id"))),
		Data:    data,
		VizMode: c.Query("mode"),
		Format:  types.ParseFormat(c.Query("format")),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, resp)
}

// Batch handles POST /api/v1/analyses/batch.
func (h *AnalysisHandler) Batch(c *gin.Context) {
	var req types.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, bindError(err))
		return
	}
	resp, err := h.service.Enqueue(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusAccepted, resp)
}

// Get handles GET /api/v1/analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeSuccess(c, http.StatusOK, rec)
}

// List handles GET /api/v1/analyses.
func (h *AnalysisHandler) List(c *gin.Context) {
	page := parsePagination(c)
	recs, total, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		writeError(c, err)
		return
	}
	page.Total = total
	writePaginated(c, recs, page)
}

// Examples handles GET /api/v1/examples.
func (h *AnalysisHandler) Examples(c *gin.Context) {
	writeSuccess(c, http.StatusOK, h.service.Examples())
}

// LegacyAnalyze handles POST /analyze. It answers with the bare body the
// browser front end expects and defaults plot_data to a Plotly figure.
func (h *AnalysisHandler) LegacyAnalyze(c *gin.Context) {
	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.LegacyError{Error: "Please provide a PDB ID"})
		return
	}
	if req.Format == "" {
		req.Format = types.FormatPlotly
	} else {
		req.Format = types.ParseFormat(string(req.Format))
	}

	resp, err := h.service.Analyze(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(legacyError(err, req.PDBID))
		return
	}
	c.JSON(http.StatusOK, types.LegacyResponse{
		PDBID:       resp.PDBID,
		ProteinInfo: resp.ProteinInfo,
		PlotData:    resp.PlotData,
		VizMode:     resp.VizMode,
	})
}

// LegacyExamples handles GET /examples with a bare JSON array.
func (h *AnalysisHandler) LegacyExamples(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Examples())
}

func legacyError(err error, pdbID string) (int, types.LegacyError) {
	id := strings.ToUpper(strings.TrimSpace(pdbID))
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidPDBID:
		if id == "" {
			return http.StatusBadRequest, types.LegacyError{Error: "Please provide a PDB ID"}
		}
		return http.StatusBadRequest, types.LegacyError{Error: "Invalid PDB ID: " + id}
	case errors.ErrCodeStructureNotFound, errors.ErrCodeStructureFetchFailed, errors.ErrCodeStructureTooLarge:
		return http.StatusBadRequest, types.LegacyError{Error: "Could not fetch PDB structure for " + id}
	case errors.ErrCodeStructureEmpty, errors.ErrCodeStructureParseFailed:
		return http.StatusBadRequest, types.LegacyError{Error: "Could not parse PDB structure"}
	}
	return http.StatusInternalServerError, types.LegacyError{Error: "internal server error"}
}

func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return err
	}
	return errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body")
}

//Personal.AI order the ending
