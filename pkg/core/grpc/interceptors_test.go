package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"syntax", apperror.New("bad sentence").WithCode(apperror.CodeSyntax), codes.InvalidArgument},
		{"wrapped input", fmt.Errorf("handler: %w", apperror.New("empty").WithCode(apperror.CodeInvalidInput)), codes.InvalidArgument},
		{"not found", apperror.New("no record").WithCode(apperror.CodeNotFound), codes.NotFound},
		{"database", apperror.New("locked").WithCode(apperror.CodeDatabaseError), codes.Unavailable},
		{"plain error", errors.New("boom"), codes.Internal},
		{"canceled", context.Canceled, codes.Canceled},
		{"status passes through", status.Error(codes.Aborted, "x"), codes.Aborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(ToStatus(tt.err)); got != tt.want {
				t.Errorf("ToStatus() code = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(logging.Discard())
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Panic"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})
	if status.Code(err) != codes.Internal {
		t.Errorf("code = %v, want Internal", status.Code(err))
	}
}

func TestRequestIDInterceptor(t *testing.T) {
	interceptor := RequestIDInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/test/ID"}

	var seen string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = GetRequestID(ctx)
		return nil, nil
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-42"))
	if _, err := interceptor(ctx, nil, info, handler); err != nil {
		t.Fatal(err)
	}
	if seen != "req-42" {
		t.Errorf("request id = %q, want req-42", seen)
	}

	if _, err := interceptor(context.Background(), nil, info, handler); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 36 {
		t.Errorf("generated request id = %q, want a UUID", seen)
	}
}

func TestErrorInterceptor(t *testing.T) {
	interceptor := ErrorInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Err"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, apperror.New("bad").WithCode(apperror.CodeSyntax)
	})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	if GetRequestID(ctx) != "abc" {
		t.Errorf("GetRequestID() = %q", GetRequestID(ctx))
	}
	if GetRequestID(context.Background()) != "" {
		t.Error("empty context should have no request id")
	}
}
