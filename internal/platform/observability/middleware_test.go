package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	r := chi.NewRouter()
	r.Use(InjectLoggerMiddleware(zap.New(core)))
	r.Use(RequestLoggerMiddleware)
	r.Use(RecoveryMiddleware)
	r.Get("/pages/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Language", "ja")
		FromContext(r.Context()).Info("inside handler")
		_, _ = w.Write([]byte("hello"))
	})
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	r.Get("/api/boom", func(http.ResponseWriter, *http.Request) { panic("api failure") })
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("page failure") })
	return r, logs
}

func TestRequestLoggerFields(t *testing.T) {
	t.Parallel()
	h, logs := newObservedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/pages/journal", nil)
	req.RemoteAddr = "203.0.113.9:4321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	inside := logs.FilterMessage("inside handler").All()
	require.Len(t, inside, 1)
	require.Equal(t, "/pages/journal", inside[0].ContextMap()["path"])

	done := logs.FilterMessage("request completed").All()
	require.Len(t, done, 1)
	fields := done[0].ContextMap()
	require.Equal(t, zapcore.InfoLevel, done[0].Level)
	require.Equal(t, "/pages/{slug}", fields["route"])
	require.Equal(t, "ja", fields["lang"])
	require.Equal(t, "203.0.113.9", fields["remote_ip"])
	require.EqualValues(t, http.StatusOK, fields["status"])
	require.EqualValues(t, 5, fields["bytes"])
}

func TestRequestLoggerLevelFollowsStatus(t *testing.T) {
	t.Parallel()
	h, logs := newObservedRouter(t)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	done := logs.FilterMessage("request completed").All()
	require.Len(t, done, 1)
	require.Equal(t, zapcore.WarnLevel, done[0].Level)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()
	h, logs := newObservedRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "internal_server_error", payload["error"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	require.Len(t, logs.FilterMessage("panic recovered").All(), 2)
	for _, entry := range logs.FilterMessage("request completed").All() {
		require.Equal(t, zapcore.ErrorLevel, entry.Level)
	}
}

func TestSanitizeDropsControlCharacters(t *testing.T) {
	t.Parallel()
	require.Equal(t, "/a/b", SanitizeRoute("/a\n/b\r"))
	require.Equal(t, "/", SanitizeRoute(""))
	require.Equal(t, "GETGETGETG", SanitizeMethod("GETGETGETGET"))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()
	logger, err := NewLogger("verbose")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("debug")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
