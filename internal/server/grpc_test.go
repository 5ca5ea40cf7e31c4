package server

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	coregrpc "github.com/LearnWithSuryaa/analyzer-app/pkg/core/grpc"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

func newTestGRPC(t *testing.T) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := coregrpc.NewServer(coregrpc.DefaultServerConfig(), logging.Discard())
	NewGRPCService(newTestService(t, false)).Register(srv)

	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestGRPC_Analyze(t *testing.T) {
	client := NewAnalyzerClient(newTestGRPC(t))
	ctx := context.Background()

	record, err := client.Analyze(ctx, "aku dhahar")
	require.NoError(t, err)
	result := record["result"].(map[string]interface{})
	correction := result["correction"].(map[string]interface{})
	assert.Equal(t, "aku mangan", correction["sentence"])
	assert.NotEmpty(t, record["id"])

	_, err = client.Analyze(ctx, "qwerty mangan")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Analyze(ctx, "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_AnalyzeBatch(t *testing.T) {
	client := NewAnalyzerClient(newTestGRPC(t))

	items, err := client.AnalyzeBatch(context.Background(), []string{"aku mangan", "qwerty mangan"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Contains(t, first, "record")
	second := items[1].(map[string]interface{})
	assert.Equal(t, "KRAMA_SYNTAX", second["error"].(map[string]interface{})["code"])

	_, err = client.AnalyzeBatch(context.Background(), []string{"a", "b", "c", "d"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_Health(t *testing.T) {
	conn := newTestGRPC(t)
	client := healthpb.NewHealthClient(conn)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: AnalyzerServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
