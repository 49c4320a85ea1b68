package grpcapi

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs method, duration and status code of every unary call.
func LoggingInterceptor(logger *logrus.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		entry := logger.WithFields(logrus.Fields{
			"method":      info.FullMethod,
			"duration_ms": time.Since(start).Milliseconds(),
			"code":        code.String(),
		})

		switch code {
		case codes.OK:
			entry.Info("request handled")
		case codes.Internal, codes.Unknown:
			entry.WithError(err).Error("request failed")
		default:
			entry.WithError(err).Warn("request rejected")
		}

		return resp, err
	}
}
