package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds the ProteinScope metric families.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	GRPCRequestsTotal   CounterVec
	GRPCRequestDuration HistogramVec

	AnalysisTotal    CounterVec
	AnalysisDuration HistogramVec
	AnalysisAtoms    HistogramVec
	ContactPairs     HistogramVec

	StructureFetchTotal CounterVec
	WorkerMessagesTotal CounterVec
	BatchRequestedTotal CounterVec

	BuildInfo GaugeVec
}

var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}
	DefaultAnalysisDurationBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}
	DefaultAtomBuckets             = []float64{100, 500, 1000, 5000, 10000, 25000, 50000, 100000, 150000}
	DefaultPairBuckets             = []float64{0, 100, 1000, 10000, 50000, 100000, 500000, 1000000}
)

// NewAppMetrics registers every family on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests")

	m.GRPCRequestsTotal = collector.RegisterCounter("grpc_requests_total", "Total gRPC requests", "service", "method", "code")
	m.GRPCRequestDuration = collector.RegisterHistogram("grpc_request_duration_seconds", "gRPC request duration", DefaultHTTPDurationBuckets, "service", "method")

	m.AnalysisTotal = collector.RegisterCounter("analysis_total", "Analyses by visualization mode and outcome", "mode", "status")
	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "End-to-end analysis duration", DefaultAnalysisDurationBuckets, "mode")
	m.AnalysisAtoms = collector.RegisterHistogram("analysis_atoms", "Atoms per analysed structure", DefaultAtomBuckets, "mode")
	m.ContactPairs = collector.RegisterHistogram("contact_pairs", "Contact pairs found per scene", DefaultPairBuckets, "mode")

	m.StructureFetchTotal = collector.RegisterCounter("structure_fetch_total", "Structure text lookups by tier and result", "source", "result")
	m.WorkerMessagesTotal = collector.RegisterCounter("worker_messages_total", "Analysis requests consumed by the worker", "result")
	m.BatchRequestedTotal = collector.RegisterCounter("batch_requested_total", "Analysis requests enqueued through the batch endpoint", "result")

	m.BuildInfo = collector.RegisterGauge("build_info", "Build information; always 1", "version", "component")

	return m
}

// ObserveAnalysis records one finished analysis. atoms is ignored when zero.
func (m *AppMetrics) ObserveAnalysis(mode, status string, duration time.Duration, atoms int) {
	m.AnalysisTotal.WithLabelValues(mode, status).Inc()
	m.AnalysisDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if atoms > 0 {
		m.AnalysisAtoms.WithLabelValues(mode).Observe(float64(atoms))
	}
}

// ObserveContacts records the pair count of a contact scene.
func (m *AppMetrics) ObserveContacts(mode string, pairs int) {
	m.ContactPairs.WithLabelValues(mode).Observe(float64(pairs))
}

// RecordFetch counts a structure lookup against one tier.
func (m *AppMetrics) RecordFetch(source, result string) {
	m.StructureFetchTotal.WithLabelValues(source, result).Inc()
}

// RecordHTTPRequest counts a served request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGRPCRequest counts a served unary call.
func (m *AppMetrics) RecordGRPCRequest(service, method, code string, duration time.Duration) {
	m.GRPCRequestsTotal.WithLabelValues(service, method, code).Inc()
	m.GRPCRequestDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordWorkerMessage counts a consumed request by result.
func (m *AppMetrics) RecordWorkerMessage(result string) {
	m.WorkerMessagesTotal.WithLabelValues(result).Inc()
}

// RecordBatch counts enqueued and rejected batch entries.
func (m *AppMetrics) RecordBatch(accepted, rejected int) {
	m.BatchRequestedTotal.WithLabelValues("accepted").Add(float64(accepted))
	m.BatchRequestedTotal.WithLabelValues("rejected").Add(float64(rejected))
}

// SetBuildInfo publishes the running version.
func (m *AppMetrics) SetBuildInfo(version, component string) {
	m.BuildInfo.WithLabelValues(version, component).Set(1)
}

//Personal.AI order the ending
