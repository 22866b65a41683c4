package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ProteinScope/internal/domain/geometry"
	"github.com/turtacn/ProteinScope/internal/domain/properties"
	"github.com/turtacn/ProteinScope/internal/domain/scene"
	"github.com/turtacn/ProteinScope/internal/domain/structure"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

// Service defines the application operations shared by the HTTP, gRPC, CLI
// and worker surfaces.
type Service interface {
	Analyze(ctx context.Context, req *types.AnalyzeRequest) (*types.AnalyzeResponse, error)
	AnalyzeText(ctx context.Context, input *TextInput) (*types.AnalyzeResponse, error)
	Examples() []types.Example
	Get(ctx context.Context, id string) (*types.Record, error)
	List(ctx context.Context, page common.Pagination) ([]*types.Record, int64, error)
	Enqueue(ctx context.Context, req *types.BatchRequest) (*types.BatchResponse, error)
	Process(ctx context.Context, msg types.RequestedMessage) error
}

// TextInput is an uploaded structure.
type TextInput struct {
	ID      string
	Data    []byte
	VizMode string
	Format  types.Format
}

// Options tunes the pipeline.
type Options struct {
	DefaultMode        scene.Mode
	MaxAtoms           int
	CovalentThreshold  float64
	ProximityThreshold float64
	Timeout            time.Duration
}

// Option wires an optional collaborator.
type Option func(*serviceImpl)

// WithRepository persists every completed analysis.
func WithRepository(r Repository) Option {
	return func(s *serviceImpl) { s.repo = r }
}

// WithEventPublisher emits a completion event per analysis.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *serviceImpl) { s.events = p }
}

// WithRequestPublisher enables Enqueue.
func WithRequestPublisher(p RequestPublisher) Option {
	return func(s *serviceImpl) { s.requests = p }
}

// WithMetrics records analysis observations.
func WithMetrics(m Metrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

type serviceImpl struct {
	source   *TieredSource
	builder  *scene.Builder
	opts     Options
	repo     Repository
	events   EventPublisher
	requests RequestPublisher
	metrics  Metrics
	logger   logging.Logger
}

// NewService creates the analysis service.
func NewService(source *TieredSource, opts Options, log logging.Logger, options ...Option) Service {
	if !opts.DefaultMode.Valid() {
		opts.DefaultMode = scene.ModeBackbone
	}
	s := &serviceImpl{
		source: source,
		builder: scene.NewBuilder(scene.Options{
			CovalentThreshold:  opts.CovalentThreshold,
			ProximityThreshold: opts.ProximityThreshold,
		}),
		opts:    opts,
		metrics: nopMetrics{},
		logger:  log,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

func (s *serviceImpl) mode(raw string) scene.Mode {
	if raw == "" {
		return s.opts.DefaultMode
	}
	return scene.ParseMode(raw)
}

func (s *serviceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.Timeout)
}

// Analyze fetches pdb_id through the tiered source and analyzes it.
func (s *serviceImpl) Analyze(ctx context.Context, req *types.AnalyzeRequest) (*types.AnalyzeResponse, error) {
	if req == nil {
		return nil, errors.InvalidParam("request body is required")
	}
	mode := s.mode(req.VizMode)
	start := time.Now()

	pdbID, err := NormalizePDBID(req.PDBID)
	if err != nil {
		s.fail(ctx, req.PDBID, mode, start, err)
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	fetched, err := s.source.Fetch(ctx, pdbID)
	if err != nil {
		s.fail(ctx, pdbID, mode, start, err)
		return nil, err
	}
	return s.run(ctx, pdbID, fetched.Data, fetched.Source, mode, req.Format, start)
}

// AnalyzeText analyzes uploaded structure text. The id is informational and
// defaults to "UPLOAD".
func (s *serviceImpl) AnalyzeText(ctx context.Context, input *TextInput) (*types.AnalyzeResponse, error) {
	if input == nil || len(input.Data) == 0 {
		return nil, errors.New(errors.ErrCodeStructureEmpty, "no structure data supplied")
	}
	id := input.ID
	if id == "" {
		id = "UPLOAD"
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.run(ctx, id, input.Data, SourceUpload, s.mode(input.VizMode), input.Format, time.Now())
}

func (s *serviceImpl) run(ctx context.Context, id string, data []byte, source string, mode scene.Mode, format types.Format, start time.Time) (*types.AnalyzeResponse, error) {
	log := s.logger.WithContext(ctx).With(
		logging.String(logging.FieldPDBID, id),
		logging.String(logging.FieldMode, mode.String()))

	var readOpts []structure.ReadOption
	if s.opts.MaxAtoms > 0 {
		readOpts = append(readOpts, structure.WithMaxAtoms(s.opts.MaxAtoms))
	}
	st, err := structure.ReadBytes(data, id, readOpts...)
	if err != nil {
		s.fail(ctx, id, mode, start, err)
		return nil, err
	}
	if st.Empty() {
		err := errors.New(errors.ErrCodeStructureEmpty, "structure contains no atoms").WithDetail(id)
		s.fail(ctx, id, mode, start, err)
		return nil, err
	}

	summary := properties.Summarize(st)

	var secondary types.SecondaryStructure
	if a, err := geometry.AssignSecondaryStructure(st); err != nil {
		log.WithError(err).Warn("secondary structure unavailable")
	} else {
		c := a.Counts()
		secondary = types.SecondaryStructure{Helix: c.Helix, Sheet: c.Sheet, Coil: c.Coil}
	}

	format = types.ParseFormat(string(format))
	plot, sceneErr := s.render(st, mode, format)
	if sceneErr != nil {
		log.WithError(sceneErr).Warn("scene unavailable, returning analysis without plot data")
	}

	resp := &types.AnalyzeResponse{
		ID:                 uuid.New().String(),
		PDBID:              id,
		VizMode:            mode.String(),
		Format:             format,
		ProteinInfo:        toProteinInfo(summary),
		SecondaryStructure: secondary,
		PlotData:           plot,
		Source:             source,
		DurationMS:         time.Since(start).Milliseconds(),
		AnalyzedAt:         common.NewTimestamp(),
	}
	if sceneErr != nil {
		resp.SceneError = sceneErr.Error()
	}

	s.metrics.ObserveAnalysis(mode.String(), "ok", time.Since(start), summary.AtomCount)
	s.record(ctx, resp)
	s.publish(ctx, &types.CompletedEvent{
		BaseEvent:  common.NewBaseEvent(resp.ID),
		RequestID:  logging.RequestIDFromContext(ctx),
		AnalysisID: resp.ID,
		PDBID:      id,
		VizMode:    resp.VizMode,
		Success:    true,
		AtomCount:  summary.AtomCount,
		Secondary:  secondary,
		SceneError: resp.SceneError,
		DurationMS: resp.DurationMS,
	})

	log.Info("analysis completed",
		logging.String(logging.FieldAnalysisID, resp.ID),
		logging.Int("atoms", summary.AtomCount),
		logging.String("source", source),
		logging.Int64(logging.FieldDurationMS, resp.DurationMS))
	return resp, nil
}

// render builds and serializes the scene. Any failure is reported as the
// scene error and leaves plot data null.
func (s *serviceImpl) render(st *structure.Structure, mode scene.Mode, format types.Format) (json.RawMessage, error) {
	sc, err := s.builder.Build(st, mode)
	if err != nil {
		return nil, err
	}
	pairs := 0
	for i := range sc.Series {
		pairs += len(sc.Series[i].Segments)
	}
	s.metrics.ObserveContacts(mode.String(), pairs)

	var payload interface{} = sc
	if format == types.FormatPlotly {
		payload = sc.Plotly()
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSceneUnavailable, "failed to encode scene")
	}
	return raw, nil
}

func (s *serviceImpl) fail(ctx context.Context, id string, mode scene.Mode, start time.Time, err error) {
	code := errors.GetCode(err)
	s.metrics.ObserveAnalysis(mode.String(), string(code), time.Since(start), 0)
	s.logger.WithContext(ctx).WithError(err).Warn("analysis failed",
		logging.String(logging.FieldPDBID, id),
		logging.String(logging.FieldMode, mode.String()))
	s.publish(ctx, &types.CompletedEvent{
		BaseEvent:  common.NewBaseEvent(id),
		RequestID:  logging.RequestIDFromContext(ctx),
		PDBID:      id,
		VizMode:    mode.String(),
		ErrorCode:  string(code),
		Error:      err.Error(),
		DurationMS: time.Since(start).Milliseconds(),
	})
}

func (s *serviceImpl) record(ctx context.Context, resp *types.AnalyzeResponse) {
	if s.repo == nil {
		return
	}
	rec := &types.Record{
		ID:         resp.ID,
		PDBID:      resp.PDBID,
		VizMode:    resp.VizMode,
		Summary:    resp.ProteinInfo,
		Secondary:  resp.SecondaryStructure,
		AtomCount:  resp.ProteinInfo.AtomCount,
		SceneError: resp.SceneError,
		DurationMS: resp.DurationMS,
		CreatedAt:  resp.AnalyzedAt,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("failed to save analysis record",
			logging.String(logging.FieldAnalysisID, rec.ID))
	}
}

func (s *serviceImpl) publish(ctx context.Context, ev *types.CompletedEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCompleted(ctx, ev); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("failed to publish completion event",
			logging.String(logging.FieldPDBID, ev.PDBID))
	}
}

// Examples returns the example catalog.
func (s *serviceImpl) Examples() []types.Example {
	return Examples()
}

// Get returns a stored analysis record.
func (s *serviceImpl) Get(ctx context.Context, id string) (*types.Record, error) {
	if s.repo == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "analysis history is not enabled")
	}
	if err := common.ID(id).Validate(); err != nil {
		return nil, errors.InvalidParam("invalid analysis id").WithDetail(id)
	}
	return s.repo.FindByID(ctx, id)
}

// List returns stored analysis records, newest first.
func (s *serviceImpl) List(ctx context.Context, page common.Pagination) ([]*types.Record, int64, error) {
	if s.repo == nil {
		return nil, 0, errors.New(errors.ErrCodeFeatureDisabled, "analysis history is not enabled")
	}
	page = page.Normalize()
	return s.repo.List(ctx, page.Limit, page.Offset)
}

// Enqueue validates the ids and publishes one request message per valid id.
func (s *serviceImpl) Enqueue(ctx context.Context, req *types.BatchRequest) (*types.BatchResponse, error) {
	if s.requests == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "batch analysis is not enabled")
	}
	if req == nil || len(req.PDBIDs) == 0 {
		return nil, errors.InvalidParam("pdb_ids must not be empty")
	}

	mode := s.mode(req.VizMode)
	resp := &types.BatchResponse{
		Accepted: make([]types.RequestedMessage, 0, len(req.PDBIDs)),
		Rejected: []types.BatchRejection{},
	}
	for _, raw := range req.PDBIDs {
		id, err := NormalizePDBID(raw)
		if err != nil {
			resp.Rejected = append(resp.Rejected, types.BatchRejection{
				PDBID:   raw,
				Code:    string(errors.GetCode(err)),
				Message: err.Error(),
			})
			continue
		}
		resp.Accepted = append(resp.Accepted, types.RequestedMessage{
			RequestID: uuid.New().String(),
			PDBID:     id,
			VizMode:   mode.String(),
		})
	}
	if len(resp.Accepted) == 0 {
		return resp, nil
	}
	if err := s.requests.PublishRequests(ctx, resp.Accepted); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMessagingError, "failed to enqueue analyses")
	}
	s.logger.WithContext(ctx).Info("analyses enqueued",
		logging.Int("accepted", len(resp.Accepted)),
		logging.Int("rejected", len(resp.Rejected)))
	return resp, nil
}

// Process runs one queued request. Input errors are final and return nil so
// the message is committed; other errors are returned for retry.
func (s *serviceImpl) Process(ctx context.Context, msg types.RequestedMessage) error {
	if msg.RequestID != "" {
		ctx = logging.WithRequestID(ctx, msg.RequestID)
	}
	_, err := s.Analyze(ctx, &types.AnalyzeRequest{PDBID: msg.PDBID, VizMode: msg.VizMode})
	if err != nil && errors.IsInputError(err) && !errors.IsCode(err, errors.ErrCodeStructureFetchFailed) {
		return nil
	}
	return err
}

func toProteinInfo(sm properties.Summary) types.ProteinInfo {
	return types.ProteinInfo{
		MolecularWeight: sm.MolecularWeight,
		AtomCount:       sm.AtomCount,
		ResidueCount:    sm.ResidueCount,
		UniqueResidues:  sm.UniqueResidues,
		Charge:          sm.Charge,
		ResidueTypes:    sm.ResidueTypes,
		Composition:     sm.Composition,
	}
}

//Personal.AI order the ending
