package services

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// AnalysisClient is the client API of proteinscope.v1.AnalysisService.
type AnalysisClient struct {
	cc grpc.ClientConnInterface
}

// NewAnalysisClient creates a client on cc.
func NewAnalysisClient(cc grpc.ClientConnInterface) *AnalysisClient {
	return &AnalysisClient{cc: cc}
}

// Analyze calls AnalysisService/Analyze.
func (c *AnalysisClient) Analyze(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodAnalyze, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Examples calls AnalysisService/Examples.
func (c *AnalysisClient) Examples(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodExamples, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

//Personal.AI order the ending
