package observability

import (
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"finitefield.org/hanko-seo/internal/platform/httpx"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
)

// APIPrefix marks routes whose failures are reported as JSON.
const APIPrefix = "/api/"

// InjectLoggerMiddleware stores logger on every request context.
func InjectLoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestctx.WithLogger(r.Context(), logger)))
		})
	}
}

// RequestLoggerMiddleware scopes the context logger to the request and logs
// one completion line whose level follows the status class.
func RequestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		fields := []zap.Field{
			zap.String("method", SanitizeMethod(r.Method)),
			zap.String("path", SanitizeRoute(r.URL.Path)),
		}
		if id := middleware.GetReqID(ctx); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if id := requestctx.TraceID(ctx); id != "" {
			fields = append(fields, zap.String("trace_id", id))
		}
		if ip := clientIP(r.RemoteAddr); ip != "" {
			fields = append(fields, zap.String("remote_ip", ip))
		}
		logger := requestctx.Logger(ctx).With(fields...)
		r = r.WithContext(requestctx.WithLogger(ctx, logger))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := zapcore.InfoLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = zapcore.ErrorLevel
				trace.SpanFromContext(r.Context()).SetStatus(codes.Error, http.StatusText(status))
			case status >= http.StatusBadRequest:
				level = zapcore.WarnLevel
			}
			logger.Log(level, "request completed",
				zap.String("route", SanitizeRoute(routePattern(r))),
				zap.String("lang", ww.Header().Get("Content-Language")),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.Int("bytes", ww.BytesWritten()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// RecoveryMiddleware turns a panic into a 500: JSON under APIPrefix, plain
// text for pages.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			ctx := r.Context()
			requestctx.Logger(ctx).Error("panic recovered",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "internal server error", http.StatusInternalServerError))
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func clientIP(addr string) string {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return sanitizeString(addr, 64)
}
