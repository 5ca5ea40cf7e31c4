package server

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	coregrpc "github.com/LearnWithSuryaa/analyzer-app/pkg/core/grpc"
)

// AnalyzerServiceName is the fully qualified gRPC service name
const AnalyzerServiceName = "krama.v1.AnalyzerService"

const (
	analyzeMethod      = "/" + AnalyzerServiceName + "/Analyze"
	analyzeBatchMethod = "/" + AnalyzerServiceName + "/AnalyzeBatch"
)

// AnalyzerServer is the server API of krama.v1.AnalyzerService. Requests and
// responses are google.protobuf.Struct values carrying the JSON shapes of
// the HTTP API.
type AnalyzerServer interface {
	// Analyze takes {"text": string} and returns the analysis record
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// AnalyzeBatch takes {"texts": [string]} and returns {"items": [...]}
	AnalyzeBatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// AnalyzerServiceDesc describes krama.v1.AnalyzerService for grpc.Server
var AnalyzerServiceDesc = grpc.ServiceDesc{
	ServiceName: AnalyzerServiceName,
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Analyze", Handler: analyzeHandler},
		{MethodName: "AnalyzeBatch", Handler: analyzeBatchHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "krama/v1/analyzer.proto",
}

// RegisterAnalyzerServer registers srv with s
func RegisterAnalyzerServer(s grpc.ServiceRegistrar, srv AnalyzerServer) {
	s.RegisterService(&AnalyzerServiceDesc, srv)
}

func analyzeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: analyzeMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func analyzeBatchHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServer).AnalyzeBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: analyzeBatchMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServer).AnalyzeBatch(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCService implements AnalyzerServer on top of the analysis service
type GRPCService struct {
	service *service.Service
}

// NewGRPCService creates the gRPC analyzer service
func NewGRPCService(svc *service.Service) *GRPCService {
	return &GRPCService{service: svc}
}

// Register adds the analyzer service to srv and marks it serving
func (g *GRPCService) Register(srv *coregrpc.Server) {
	RegisterAnalyzerServer(srv.GRPCServer(), g)
	srv.SetServing(AnalyzerServiceName, true)
}

// Analyze implements AnalyzerServer
func (g *GRPCService) Analyze(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req AnalyzeRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	record, err := g.service.Analyze(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	return toStruct(record)
}

// AnalyzeBatch implements AnalyzerServer
func (g *GRPCService) AnalyzeBatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req BatchRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	items, err := g.service.AnalyzeBatch(ctx, req.Texts)
	if err != nil {
		return nil, err
	}
	return toStruct(batchResponse(items))
}

func fromStruct(in *structpb.Struct, v interface{}) error {
	raw, err := in.MarshalJSON()
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return nil
}

func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return out, nil
}

// AnalyzerClient calls a remote krama.v1.AnalyzerService
type AnalyzerClient struct {
	conn grpc.ClientConnInterface
}

// NewAnalyzerClient creates a client on conn
func NewAnalyzerClient(conn grpc.ClientConnInterface) *AnalyzerClient {
	return &AnalyzerClient{conn: conn}
}

// Analyze sends one sentence and decodes the returned record
func (c *AnalyzerClient) Analyze(ctx context.Context, text string, opts ...grpc.CallOption) (map[string]interface{}, error) {
	in, err := structpb.NewStruct(map[string]interface{}{"text": text})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, analyzeMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// AnalyzeBatch sends several sentences and returns the items
func (c *AnalyzerClient) AnalyzeBatch(ctx context.Context, texts []string, opts ...grpc.CallOption) ([]interface{}, error) {
	list := make([]interface{}, len(texts))
	for i, t := range texts {
		list[i] = t
	}
	in, err := structpb.NewStruct(map[string]interface{}{"texts": list})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, analyzeBatchMethod, in, out, opts...); err != nil {
		return nil, err
	}
	items, _ := out.AsMap()["items"].([]interface{})
	return items, nil
}
