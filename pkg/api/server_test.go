package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-retrofit/pkg/config"
	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/export"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
	"github.com/dd0wney/cluso-retrofit/pkg/health"
	"github.com/dd0wney/cluso-retrofit/pkg/metrics"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/objective"
)

func setupTestServer(t *testing.T) (*Server, *metrics.Registry) {
	t.Helper()
	reg := metrics.NewRegistry()
	cfg := DefaultConfig()
	cfg.Metrics = reg
	return New(cfg), reg
}

func referenceJSON(t *testing.T) []byte {
	t.Helper()
	w, err := navgraph.BuildReference(navgraph.DefaultReferenceConfig())
	require.NoError(t, err)
	data, err := json.Marshal(w)
	require.NoError(t, err)
	return data
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHandleConvert(t *testing.T) {
	s, reg := setupTestServer(t)

	rr := do(t, s, "POST", "/api/v1/convert", referenceJSON(t))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	out := decode[converter.RoboticWarehouse](t, rr)
	assert.Equal(t, 8.0, out.FeasibilityScore)
	assert.Equal(t, "B", out.Summary.Grade)
	assert.Len(t, out.Nodes, 17)
	assert.Len(t, out.ChargingStations, 3)
	assert.Equal(t, 68.18, out.DistanceMatrix["node_pickup"]["node_drop"])

	var m dto.Metric
	require.NoError(t, reg.ConversionsTotal.WithLabelValues(metrics.StatusSuccess).Write(&m))
	assert.Equal(t, 1.0, m.Counter.GetValue())
	require.NoError(t, reg.HTTPRequestsTotal.WithLabelValues("POST", "POST /api/v1/convert", "200").Write(&m))
	assert.Equal(t, 1.0, m.Counter.GetValue())
}

func TestHandleConvertExportView(t *testing.T) {
	s, _ := setupTestServer(t)

	rr := do(t, s, "POST", "/api/v1/convert?view=export", referenceJSON(t))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	doc := decode[export.Document](t, rr)
	assert.Equal(t, 17, doc.Statistics.TotalNodes)
	assert.Equal(t, 750.0, doc.Warehouse.LegacyConfig.StorageAreaM2)
	require.NotNil(t, doc.Metadata)
	assert.Equal(t, export.FormatVersion, doc.Metadata.Version)

	rr = do(t, s, "POST", "/api/v1/convert?view=yaml", referenceJSON(t))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleConvertErrors(t *testing.T) {
	s, _ := setupTestServer(t)

	dup := strings.Replace(string(referenceJSON(t)), `"id":"node_drop"`, `"id":"node_pickup"`, 1)

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"malformed json", "/api/v1/convert", `{"name":`, http.StatusBadRequest},
		{"unknown field", "/api/v1/convert", `{"name":"x","badirectional":true}`, http.StatusBadRequest},
		{"empty body", "/api/v1/convert", ``, http.StatusBadRequest},
		{"invalid dimensions", "/api/v1/convert", `{"name":"x","width":0,"length":10,"aisles":1,"aisle_width":3,"aisle_length":5}`, http.StatusUnprocessableEntity},
		{"duplicate node", "/api/v1/convert", dup, http.StatusUnprocessableEntity},
		{"unknown algorithm", "/api/v1/convert?algorithm=astar", string(referenceJSON(t)), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, "POST", tt.target, []byte(tt.body))
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			resp := decode[ErrorResponse](t, rr)
			assert.Equal(t, tt.want, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandleConvertMethodNotAllowed(t *testing.T) {
	s, _ := setupTestServer(t)
	rr := do(t, s, "GET", "/api/v1/convert", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestBodyLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 64
	s := New(cfg)

	rr := do(t, s, "POST", "/api/v1/convert", referenceJSON(t))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHandleFeasibility(t *testing.T) {
	s, reg := setupTestServer(t)

	rr := do(t, s, "POST", "/api/v1/feasibility", referenceJSON(t))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	a := decode[feasibility.Assessment](t, rr)
	assert.Equal(t, 8.0, a.Score)
	assert.Equal(t, feasibility.GradeB, a.Grade)
	assert.True(t, a.IsFeasible)

	var m dto.Metric
	require.NoError(t, reg.FeasibilityGrades.WithLabelValues("B").Write(&m))
	assert.Equal(t, 1.0, m.Counter.GetValue())
}

func TestHandleDistanceMatrix(t *testing.T) {
	s, _ := setupTestServer(t)

	t.Run("nested", func(t *testing.T) {
		rr := do(t, s, "POST", "/api/v1/distance-matrix", referenceJSON(t))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decode[DistanceMatrixResponse](t, rr)
		assert.Equal(t, export.Nested, resp.Format)
		assert.Equal(t, "floyd-warshall", resp.Algorithm)
		assert.Len(t, resp.Matrix, 17)
		assert.Equal(t, 68.18, resp.Matrix["node_pickup"]["node_drop"])
	})

	t.Run("flat subset with dijkstra", func(t *testing.T) {
		rr := do(t, s, "POST", "/api/v1/distance-matrix?format=flat&algorithm=dijkstra&nodes=node_pickup,node_drop", referenceJSON(t))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		resp := decode[DistanceMatrixResponse](t, rr)
		assert.Equal(t, "dijkstra", resp.Algorithm)
		assert.Len(t, resp.Distances, 4)
		require.NotNil(t, resp.Statistics)
		assert.Equal(t, 2, resp.Statistics.TotalConnections)
		assert.InDelta(t, 68.18, resp.Statistics.MaxDistance, 0.01)
	})

	t.Run("bad format", func(t *testing.T) {
		rr := do(t, s, "POST", "/api/v1/distance-matrix?format=csv", referenceJSON(t))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func objectiveBody(t *testing.T, weights *objective.Weights, path []string) []byte {
	t.Helper()
	data, err := json.Marshal(ObjectiveRequest{
		Warehouse: referenceJSON(t),
		Schedule: objective.Input{
			Paths:       map[string][]string{"agv_1": path},
			TravelTimes: map[string]float64{"agv_1": 60},
			BatteryUsed: map[string]float64{"agv_1": 2},
		},
		Weights: weights,
	})
	require.NoError(t, err)
	return data
}

func TestHandleObjective(t *testing.T) {
	s, reg := setupTestServer(t)

	rr := do(t, s, "POST", "/api/v1/objective", objectiveBody(t, nil, []string{"node_pickup", "node_drop"}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[ObjectiveResponse](t, rr)
	assert.Equal(t, objective.DefaultWeights(), resp.Weights)
	assert.InDelta(t, 68.18, resp.Result.TravelDistance, 0.01)
	assert.Greater(t, resp.Result.Total, 0.0)

	var m dto.Metric
	require.NoError(t, reg.ObjectiveEvaluations.WithLabelValues(metrics.StatusSuccess).Write(&m))
	assert.Equal(t, 1.0, m.Counter.GetValue())
}

func TestHandleObjectiveErrors(t *testing.T) {
	s, reg := setupTestServer(t)
	bad := &objective.Weights{Travel: 0.5, Time: 0.5, Energy: 0.5}

	tests := []struct {
		name string
		body []byte
		want int
	}{
		{"weights do not sum to one", objectiveBody(t, bad, []string{"node_pickup"}), http.StatusUnprocessableEntity},
		{"unknown node", objectiveBody(t, nil, []string{"node_pickup", "nowhere"}), http.StatusUnprocessableEntity},
		{"missing warehouse", []byte(`{"schedule":{}}`), http.StatusBadRequest},
		{"unknown field", []byte(`{"warehouse":{},"extra":1}`), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, "POST", "/api/v1/objective", tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}

	var m dto.Metric
	require.NoError(t, reg.ObjectiveEvaluations.WithLabelValues(metrics.StatusError).Write(&m))
	assert.Equal(t, 2.0, m.Counter.GetValue())
}

func TestHandleReferenceLayout(t *testing.T) {
	s, _ := setupTestServer(t)

	rr := do(t, s, "GET", "/api/v1/layouts/reference", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, string(referenceJSON(t)), rr.Body.String())

	rr = do(t, s, "GET", "/api/v1/layouts/reference?aisles=3&name=Small", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var w struct {
		Name   string            `json:"name"`
		Aisles int               `json:"aisles"`
		Nodes  []json.RawMessage `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &w))
	assert.Equal(t, "Small", w.Name)
	assert.Equal(t, 3, w.Aisles)
	assert.Len(t, w.Nodes, 2+3*3)

	// The generated layout is accepted by the convert endpoint as is.
	conv := do(t, s, "POST", "/api/v1/convert", rr.Body.Bytes())
	assert.Equal(t, http.StatusOK, conv.Code, conv.Body.String())

	for _, q := range []string{"aisles=0", "aisles=x", "width=-1", "aisle_width=abc"} {
		rr := do(t, s, "GET", "/api/v1/layouts/reference?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
	rr = do(t, s, "GET", "/api/v1/layouts/reference?width=4", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := setupTestServer(t)

	rr := do(t, s, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[health.Response](t, rr)
	assert.Equal(t, health.StatusHealthy, resp.Status)
	for _, name := range []string{"pipeline", "config", "capacity", "memory"} {
		assert.Contains(t, resp.Checks, name)
	}
	assert.Equal(t, "B", resp.Checks["pipeline"].Details["grade"])

	assert.Equal(t, http.StatusOK, do(t, s, "GET", "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, s, "GET", "/health/ready", nil).Code)
}

func TestHealthDegradedConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Converter.Config.AGV.CruiseSpeed = 4
	s := New(cfg)

	rr := do(t, s, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[health.Response](t, rr)
	assert.Equal(t, health.StatusDegraded, resp.Status)
	assert.Equal(t, health.StatusDegraded, resp.Checks["config"].Status)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := setupTestServer(t)
	do(t, s, "POST", "/api/v1/convert", referenceJSON(t))

	rr := do(t, s, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	for _, name := range []string{
		"retrofit_conversions_total",
		"retrofit_http_requests_total",
		"retrofit_distance_matrix_duration_seconds",
		"retrofit_feasibility_score",
	} {
		assert.Contains(t, body, name)
	}
}

func TestConcurrencyLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConcurrent = 2
	s := New(cfg)
	body := referenceJSON(t)

	var wg sync.WaitGroup
	codes := make(chan int, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("POST", "/api/v1/convert", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, req)
			codes <- rr.Code
		}()
	}
	wg.Wait()
	close(codes)

	ok := 0
	for code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusServiceUnavailable:
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	assert.GreaterOrEqual(t, ok, 1)
	assert.Equal(t, 0, s.limiter.InFlight())
	var m dto.Metric
	require.NoError(t, s.metricsRegistry.HTTPRequestsRejected.Write(&m))
	assert.Equal(t, float64(s.limiter.Rejected()), m.GetCounter().GetValue())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("RETROFIT_PORT", "9191")
	t.Setenv("RETROFIT_MAX_CONCURRENT", "3")
	t.Setenv("RETROFIT_CORS_ORIGINS", "https://planner.example.com")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, 3, cfg.MaxConcurrent)
	assert.Equal(t, []string{"https://planner.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, ":9191", New(cfg).Addr())

	t.Setenv("RETROFIT_PORT", "http")
	_, err = ConfigFromEnv()
	assert.Error(t, err)
}

func TestStatusFor(t *testing.T) {
	_, err := navgraph.BuildReference(navgraph.ReferenceConfig{Aisles: 0})
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(err, http.StatusInternalServerError))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF, http.StatusInternalServerError))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusFor(&http.MaxBytesError{Limit: 1}, http.StatusBadRequest))
}

func TestReload(t *testing.T) {
	s, _ := setupTestServer(t)

	cfg := config.Default()
	cfg.AGV.CruiseSpeed = 4
	require.NoError(t, s.Reload(cfg))
	assert.Equal(t, 4.0, s.current().Options().Config.AGV.CruiseSpeed)

	resp := decode[health.Response](t, do(t, s, "GET", "/health", nil))
	assert.Equal(t, health.StatusDegraded, resp.Checks["config"].Status)

	bad := config.Default()
	bad.AGV.Count = 0
	assert.Error(t, s.Reload(bad))
	assert.Equal(t, 4.0, s.current().Options().Config.AGV.CruiseSpeed, "failed reload keeps the old config")
}
