package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
)

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var fromCtx, fromGin string
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		fromGin = GetRequestID(c)
		fromCtx = logging.RequestIDFromContext(c.Request.Context())
	})

	w := serve(r, http.MethodGet, "/x", nil)
	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, fromGin)
	assert.Equal(t, id, fromCtx)
}

func TestRequestID_ReusesClientValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {})

	w := serve(r, http.MethodGet, "/x", map[string]string{HeaderRequestID: "trace-42"})
	assert.Equal(t, "trace-42", w.Header().Get(HeaderRequestID))

	w = serve(r, http.MethodGet, "/x", map[string]string{HeaderRequestID: strings.Repeat("a", 200)})
	assert.NotEqual(t, strings.Repeat("a", 200), w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(logging.NewNopLogger()))
	r.GET("/panic", func(c *gin.Context) { panic("scene exploded") })

	w := serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"COMMON_001"`)
	assert.NotContains(t, w.Body.String(), "scene exploded")
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/upload", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var maxErr *http.MaxBytesError
		if assert.ErrorAs(t, err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
		}
	})

	req, _ := http.NewRequest(http.MethodPost, "/upload", strings.NewReader("ATOM      1  N   ALA"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

type recordingMetrics struct {
	method, path string
	status       int
	inflight     int
	peak         int
}

func (m *recordingMetrics) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	m.method, m.path, m.status = method, path, status
}
func (m *recordingMetrics) Inc() {
	m.inflight++
	if m.inflight > m.peak {
		m.peak = m.inflight
	}
}
func (m *recordingMetrics) Dec() { m.inflight-- }

func TestMetrics_RouteTemplateLabel(t *testing.T) {
	rec := &recordingMetrics{}
	r := gin.New()
	r.Use(Metrics(rec, rec, "/metrics"))
	r.GET("/api/v1/analyses/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, http.MethodGet, "/api/v1/analyses/3f2a", nil)
	assert.Equal(t, "/api/v1/analyses/:id", rec.path)
	assert.Equal(t, http.StatusNotFound, rec.status)
	assert.Equal(t, 1, rec.peak)
	assert.Equal(t, 0, rec.inflight)

	serve(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, "unmatched", rec.path)

	rec.path = ""
	serve(r, http.MethodGet, "/metrics", nil)
	assert.Empty(t, rec.path)
}

//Personal.AI order the ending
