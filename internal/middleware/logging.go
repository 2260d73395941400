package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/planbuddy/internal/metrics"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records its duration by procedure and result code.
// Install it after the auth interceptor so the caller is known.
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			elapsed := time.Since(start)

			procedure := req.Spec().Procedure
			attrs := []any{
				"procedure", procedure,
				"user_id", GetUserID(ctx),
				"duration_ms", elapsed.Milliseconds(),
			}

			code := "ok"
			level := slog.LevelInfo
			msg := "RPC ok"
			if err != nil {
				c := connect.CodeOf(err)
				code = c.String()
				level = errorLevel(c)
				msg = "RPC error"

				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					attrs = append(attrs, "code", c, "error", connectErr.Message())
				} else {
					attrs = append(attrs, "code", c, "error", err)
				}
			}
			slog.Log(ctx, level, msg, attrs...)
			m.ObserveRPC(procedure, code, elapsed.Seconds())

			return resp, err
		}
	}
}

// errorLevel logs client mistakes at WARN and server faults at ERROR.
func errorLevel(c connect.Code) slog.Level {
	switch c {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeAborted,
		connect.CodeUnauthenticated, connect.CodeCanceled, connect.CodeAlreadyExists:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
