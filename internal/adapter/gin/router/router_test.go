package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"user-api/internal/adapter/gin/handler"
	"user-api/internal/adapter/gin/middleware"
	"user-api/internal/adapter/gin/response"
	"user-api/internal/usecase/user"
	"user-api/pkg/metrics"
	"user-api/pkg/metrics/metricstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func setupRouter(t *testing.T, opts Options) (*gin.Engine, *metrics.Recorder) {
	t.Helper()
	return setupRouterWithLogger(t, opts, zaptest.NewLogger(t))
}

func setupRouterWithLogger(t *testing.T, opts Options, log *zap.Logger) (*gin.Engine, *metrics.Recorder) {
	t.Helper()

	if opts.Objective.Name == "" {
		opts.Objective = metrics.APIObjective
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "user-api"
	}

	rec, err := metrics.NewRecorder(metrics.Config{
		Build:      metrics.BuildInfo{Version: "test", ServiceName: opts.ServiceName},
		Objectives: []metrics.Objective{opts.Objective},
	})
	require.NoError(t, err)

	h := handler.NewUserHandler(user.New(log), log)
	return SetupRouter(h, rec, opts, log), rec
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserRoutes(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	t.Run("Create Then List Stays Empty", func(t *testing.T) {
		w := do(r, http.MethodPost, "/users", `{"name":"ana","email":"ana@x.io"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"name":"ana","email":"ana@x.io"}`, w.Body.String())

		w = do(r, http.MethodGet, "/users", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("Get Returns Placeholder For Any ID", func(t *testing.T) {
		for _, path := range []string{"/users/42", "/users/0", "/users/-3"} {
			w := do(r, http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.Equal(t, `{"name":"foo","email":"foo@bar.xyz"}`, w.Body.String(), path)
		}
	})

	t.Run("Update And Delete Return Empty 200", func(t *testing.T) {
		w := do(r, http.MethodPut, "/users/1", `{"name":"bob"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())

		w = do(r, http.MethodDelete, "/users/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())

		w = do(r, http.MethodGet, "/users/1", "")
		assert.Equal(t, `{"name":"foo","email":"foo@bar.xyz"}`, w.Body.String())
	})

	t.Run("Non Numeric ID Is Rejected", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			w := do(r, method, "/users/abc", "")
			assert.Equal(t, http.StatusBadRequest, w.Code, method)

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "invalid_id", resp.Error)
		}
	})

	t.Run("Missing Field Is Rejected", func(t *testing.T) {
		w := do(r, http.MethodPost, "/users", `{"email":"ana@x.io"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Empty Strings Are Echoed", func(t *testing.T) {
		w := do(r, http.MethodPost, "/users", `{"name":"","email":""}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"name":"","email":""}`, w.Body.String())
	})

	t.Run("Unknown Route", func(t *testing.T) {
		w := do(r, http.MethodGet, "/nope", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"not_found","message":"No route for GET /nope"}`, w.Body.String())
	})

	t.Run("Wrong Method", func(t *testing.T) {
		w := do(r, http.MethodPatch, "/users/1", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.JSONEq(t, `{"error":"method_not_allowed","message":"PATCH is not allowed on /users/1"}`, w.Body.String())
	})

	t.Run("Request ID Header", func(t *testing.T) {
		w := do(r, http.MethodGet, "/users", "")
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestHealth(t *testing.T) {
	r, rec := setupRouter(t, Options{ServiceName: "svc"})

	w := do(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"svc"}`, w.Body.String())
	assert.Equal(t, uint64(0), metricstest.SampleCount(t, rec.Gatherer(), "health"))
}

func TestRouteMetrics(t *testing.T) {
	r, rec := setupRouter(t, Options{})
	g := rec.Gatherer()

	t.Run("Counts Track Invocations", func(t *testing.T) {
		for i := 1; i <= 5; i++ {
			do(r, http.MethodGet, "/users/7", "")
			assert.Equal(t, float64(i), metricstest.CallCount(t, g, FuncGetUserByID, "ok"))
			assert.Equal(t, uint64(i), metricstest.SampleCount(t, g, FuncGetUserByID))
		}
		assert.Equal(t, 0.0, metricstest.InFlight(t, g, FuncGetUserByID))
	})

	t.Run("Each Route Has Its Own Label", func(t *testing.T) {
		do(r, http.MethodGet, "/users", "")
		do(r, http.MethodPost, "/users", `{"name":"a","email":"b"}`)
		do(r, http.MethodPut, "/users/1", "{}")
		do(r, http.MethodDelete, "/users/1", "")

		for _, fn := range []string{FuncGetAllUsers, FuncCreateUser, FuncUpdateUser, FuncDeleteUser} {
			assert.Equal(t, 1.0, metricstest.CallCount(t, g, fn, "ok"), fn)
			assert.Equal(t, uint64(1), metricstest.SampleCount(t, g, fn), fn)
		}
	})

	t.Run("Rejected Requests Are Not Recorded", func(t *testing.T) {
		cases := []struct {
			method, path, body, function string
		}{
			{http.MethodGet, "/users/abc", "", FuncGetUserByID},
			{http.MethodPut, "/users/abc", "{}", FuncUpdateUser},
			{http.MethodDelete, "/users/1.5", "", FuncDeleteUser},
			{http.MethodPost, "/users", `{"name":"ana"}`, FuncCreateUser},
			{http.MethodPost, "/users", "not json", FuncCreateUser},
		}
		for _, tc := range cases {
			before := metricstest.SampleCount(t, g, tc.function)
			calls := metricstest.CallCount(t, g, tc.function, "ok") + metricstest.CallCount(t, g, tc.function, "error")

			w := do(r, tc.method, tc.path, tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
			assert.Equal(t, before, metricstest.SampleCount(t, g, tc.function), tc.function)
			assert.Equal(t, calls, metricstest.CallCount(t, g, tc.function, "ok")+metricstest.CallCount(t, g, tc.function, "error"), tc.function)
		}
	})

	t.Run("Objective Labels", func(t *testing.T) {
		calls := metricstest.Labels(t, g, "function_calls_total", FuncGetUserByID)
		assert.Equal(t, "users", calls["module"])
		assert.Equal(t, "api", calls["objective_name"])
		assert.Equal(t, "99", calls["objective_percentile"])

		duration := metricstest.Labels(t, g, "function_calls_duration_seconds", FuncGetUserByID)
		assert.Equal(t, "99.9", duration["objective_percentile"])
		assert.Equal(t, "0.25", duration["objective_latency_threshold"])
	})

	t.Run("Concurrent Requests", func(t *testing.T) {
		before := metricstest.SampleCount(t, g, FuncGetAllUsers)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					do(r, http.MethodGet, "/users", "")
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, before+200, metricstest.SampleCount(t, g, FuncGetAllUsers))
		assert.Equal(t, 0.0, metricstest.InFlight(t, g, FuncGetAllUsers))
	})
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupRouter(t, Options{})

	do(r, http.MethodGet, "/users/42", "")
	w := do(r, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	body := w.Body.String()
	assert.Contains(t, body, `function_calls_total{function="get_user_by_id"`)
	assert.Contains(t, body, "function_calls_duration_seconds_bucket")
	assert.Contains(t, body, `le="0.25"`)
	assert.Contains(t, body, "build_info")
	assert.NotContains(t, body, `function="metrics"`)

	// Reading the metrics does not change them.
	again := do(r, http.MethodGet, "/metrics", "")
	assert.Contains(t, again.Body.String(), `function_calls_total{function="get_user_by_id",module="users",objective_name="api",objective_percentile="99",result="ok"} 1`)
}

func TestSwagger(t *testing.T) {
	t.Run("Enabled", func(t *testing.T) {
		r, _ := setupRouter(t, Options{SwaggerEnabled: true})

		w := do(r, http.MethodGet, "/swagger/user.swagger.json", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, "2.0", doc["swagger"])

		w = do(r, http.MethodGet, "/swagger/index.html", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/swagger/user.swagger.json")
	})

	t.Run("Disabled", func(t *testing.T) {
		r, _ := setupRouter(t, Options{})

		w := do(r, http.MethodGet, "/swagger/user.swagger.json", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPanicIsAccessLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r, _ := setupRouterWithLogger(t, Options{}, zap.New(core))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error","message":"An internal error occurred"}`, w.Body.String())

	assert.Len(t, logs.FilterMessage("panic recovered").All(), 1)
	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, zapcore.ErrorLevel, completed[0].Level)
	assert.Equal(t, int64(http.StatusInternalServerError), completed[0].ContextMap()["status"])
}
