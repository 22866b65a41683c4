// Package services implements the ProteinScope gRPC services. Messages are
// google.protobuf.Struct documents carrying the JSON shapes of the HTTP API.
package services

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

// AnalysisServiceName is the fully qualified gRPC service name.
const AnalysisServiceName = "proteinscope.v1.AnalysisService"

const (
	methodAnalyze  = "/" + AnalysisServiceName + "/Analyze"
	methodExamples = "/" + AnalysisServiceName + "/Examples"
)

// AnalysisServer is the server API of proteinscope.v1.AnalysisService.
type AnalysisServer interface {
	// Analyze accepts {"pdb_id","viz_mode","format"} or, for uploads,
	// {"pdb_text","id","viz_mode","format"} and returns an analysis response.
	Analyze(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	// Examples returns {"examples":[...]}.
	Examples(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// AnalysisServiceDesc describes proteinscope.v1.AnalysisService.
var AnalysisServiceDesc = grpc.ServiceDesc{
	ServiceName: AnalysisServiceName,
	HandlerType: (*AnalysisServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
		{MethodName: "Examples", Handler: examplesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "proteinscope/v1/analysis.proto",
}

func analyzeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAnalyze}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalysisServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func examplesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalysisServer).Examples(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodExamples}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalysisServer).Examples(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// analyzeRequest is the decoded Analyze document.
type analyzeRequest struct {
	PDBID   string       `json:"pdb_id"`
	PDBText string       `json:"pdb_text"`
	ID      string       `json:"id"`
	VizMode string       `json:"viz_mode"`
	Format  types.Format `json:"format"`
}

// AnalysisService adapts the application service to AnalysisServer.
type AnalysisService struct {
	svc    analysis.Service
	logger logging.Logger
}

var _ AnalysisServer = (*AnalysisService)(nil)

// NewAnalysisService creates the gRPC analysis service.
func NewAnalysisService(svc analysis.Service, logger logging.Logger) *AnalysisService {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalysisService{svc: svc, logger: logger}
}

// Analyze runs one analysis.
func (s *AnalysisService) Analyze(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in analyzeRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, toStatus(err)
	}
	format := types.ParseFormat(string(in.Format))

	var (
		resp *types.AnalyzeResponse
		err  error
	)
	if in.PDBText != "" {
		resp, err = s.svc.AnalyzeText(ctx, &analysis.TextInput{
			ID:      in.ID,
			Data:    []byte(in.PDBText),
			VizMode: in.VizMode,
			Format:  format,
		})
	} else {
		resp, err = s.svc.Analyze(ctx, &types.AnalyzeRequest{PDBID: in.PDBID, VizMode: in.VizMode, Format: format})
	}
	if err != nil {
		if !errors.IsInputError(err) {
			s.logger.WithContext(ctx).Error("grpc analysis failed", logging.Err(err))
		}
		return nil, toStatus(err)
	}

	out, err := toStruct(resp)
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

// Examples returns the example catalog.
func (s *AnalysisService) Examples(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := toStruct(map[string]interface{}{"examples": s.svc.Examples()})
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

// fromStruct decodes a Struct document into v through its JSON form.
func fromStruct(s *structpb.Struct, v interface{}) error {
	if s == nil {
		return errors.InvalidParam("request is required")
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request document")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request document")
	}
	return nil
}

// toStruct encodes v as a Struct through its JSON form.
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode response")
	}
	return out, nil
}

//Personal.AI order the ending
