package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"vrp-visualizer-service/internal/adapters/catalog"
	"vrp-visualizer-service/internal/adapters/events"
	"vrp-visualizer-service/internal/adapters/repositories"
	"vrp-visualizer-service/internal/api/dto"
	"vrp-visualizer-service/internal/domain"
	"vrp-visualizer-service/internal/platform/random"
	"vrp-visualizer-service/internal/services"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type testEnv struct {
	handler http.Handler
	runs    *repositories.MemoryRunRepository
	broker  *events.Broker
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()

	cat := catalog.NewStaticCatalog()
	runs := repositories.NewMemoryRunRepository(50)
	broker := events.NewBroker()
	limits := domain.Limits{MaxCustomers: 500, MaxVehicles: 50, MaxCapacity: 10000}
	solver := services.NewSolver(domain.DefaultField(), limits, cat, runs, broker, random.NewLocked(1))

	if opts.RunsLimit == 0 {
		opts.RunsLimit = 20
	}
	return &testEnv{
		handler: NewRouter(solver, cat, runs, broker, opts),
		runs:    runs,
		broker:  broker,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

const solveBody = `{"vrpType":"cvrp","algorithmId":"best_solution_36.3972",
	"parameters":{"numCustomers":30,"vehicleCapacity":100,"numVehicles":5},"seed":99}`

func TestHealth(t *testing.T) {
	env := newTestEnv(t, Options{})

	rr := env.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"status":"ok"`)
	require.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = env.do(t, http.MethodPost, "/api/health", "")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	require.Equal(t, http.MethodGet, rr.Header().Get("Allow"))
}

func TestAlgorithms(t *testing.T) {
	env := newTestEnv(t, Options{})

	rr := env.do(t, http.MethodGet, "/api/algorithms", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var res dto.ListAlgorithmsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res, 3)
	require.Len(t, res["vrptw"], 10)
	require.Equal(t, "best_solution_48.1163", res["vrptw"][0].ID)
}

func TestSolve(t *testing.T) {
	env := newTestEnv(t, Options{})

	rr := env.do(t, http.MethodPost, "/api/solve", solveBody)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res dto.SolveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.True(t, res.Success)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, "cvrp", res.Solution.VRPType)
	require.Equal(t, len(res.Solution.Routes), res.Metrics.NumRoutes)
	require.Equal(t, 30, res.Metrics.CustomersServed+len(res.Solution.Unassigned))
	require.Equal(t, 500.0, res.Solution.Depot.X)

	served := 0
	for _, r := range res.Solution.Routes {
		require.LessOrEqual(t, r.Load, 100)
		served += len(r.Customers)
	}
	require.Equal(t, res.Metrics.CustomersServed, served)

	// recorded in the history
	run, err := env.runs.Get(t.Context(), res.RunID)
	require.NoError(t, err)
	require.Equal(t, uint64(99), run.Seed)
}

func TestSolveSeedIsReproducible(t *testing.T) {
	env := newTestEnv(t, Options{})

	var a, b dto.SolveResponse
	require.NoError(t, json.Unmarshal(env.do(t, http.MethodPost, "/api/solve", solveBody).Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(env.do(t, http.MethodPost, "/api/solve", solveBody).Body.Bytes(), &b))
	require.Equal(t, a.Solution, b.Solution)
}

func TestSolveRejectsBadRequests(t *testing.T) {
	env := newTestEnv(t, Options{})

	cases := map[string]string{
		"malformed":         `{"vrpType":`,
		"unknown field":     `{"vrpType":"cvrp","algorithmId":"x_1.0","parameters":{"numCustomers":1,"vehicleCapacity":1,"numVehicles":1},"extra":1}`,
		"two objects":       solveBody + solveBody,
		"missing params":    `{"vrpType":"cvrp","algorithmId":"best_solution_36.3972"}`,
		"zero customers":    `{"vrpType":"cvrp","algorithmId":"best_solution_36.3972","parameters":{"numCustomers":0,"vehicleCapacity":100,"numVehicles":5}}`,
		"unknown vrp type":  `{"vrpType":"tsp","algorithmId":"best_solution_36.3972","parameters":{"numCustomers":5,"vehicleCapacity":100,"numVehicles":5}}`,
		"missing algorithm": `{"vrpType":"cvrp","parameters":{"numCustomers":5,"vehicleCapacity":100,"numVehicles":5}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/solve", body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			require.Contains(t, rr.Body.String(), `"error"`)
		})
	}

	rr := env.do(t, http.MethodGet, "/api/solve", "")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCompare(t *testing.T) {
	env := newTestEnv(t, Options{})

	body := `{"vrpType":"pcvrp","algorithmIds":["best_solution_43.5157","pcvrp_43.2732"],
		"parameters":{"numCustomers":25,"vehicleCapacity":80,"numVehicles":4},"seed":3}`
	rr := env.do(t, http.MethodPost, "/api/compare", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res dto.CompareResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Results, 2)
	require.Equal(t, "best_solution_43.5157", res.Results[0].AlgorithmID)
	require.Equal(t, "best_solution_43.2732", res.Results[1].AlgorithmID)
	require.NotEqual(t, res.Results[0].IsBest, res.Results[1].IsBest)

	one := `{"vrpType":"pcvrp","algorithmIds":["best_solution_43.5157"],
		"parameters":{"numCustomers":25,"vehicleCapacity":80,"numVehicles":4}}`
	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/compare", one).Code)
}

func TestTrials(t *testing.T) {
	env := newTestEnv(t, Options{})

	body := `{"vrpType":"cvrp","algorithmIds":["best_solution_36.3972"],
		"parameters":{"numCustomers":20,"vehicleCapacity":100,"numVehicles":4},"trials":5,"seed":8}`
	rr := env.do(t, http.MethodPost, "/api/trials", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var res dto.TrialsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Results, 1)
	require.Equal(t, 5, res.Results[0].Trials)

	tooMany := strings.Replace(body, `"trials":5`, `"trials":201`, 1)
	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/trials", tooMany).Code)
}

func TestRuns(t *testing.T) {
	env := newTestEnv(t, Options{})

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/solve", solveBody).Code)
	}

	rr := env.do(t, http.MethodGet, "/api/runs?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var list dto.ListRunsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Runs, 2)

	rr = env.do(t, http.MethodGet, "/api/runs/"+list.Runs[0].ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var run domain.RunSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))
	require.Equal(t, list.Runs[0].ID, run.ID)

	require.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/runs/nope", "").Code)
	require.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/runs?limit=0", "").Code)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, Options{RateLimit: rate.Every(time.Hour), RateBurst: 1})

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/solve", solveBody).Code)
	rr := env.do(t, http.MethodPost, "/api/solve", solveBody)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)

	// reads are not limited
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/health", "").Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, Options{AllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/solve", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)
	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunStream(t *testing.T) {
	env := newTestEnv(t, Options{})
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/runs/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait until the handler has subscribed
	require.Eventually(t, func() bool { return env.broker.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	res, err := http.Post(srv.URL+"/api/solve", "application/json", bytes.NewBufferString(solveBody))
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var run domain.RunSummary
	require.NoError(t, conn.ReadJSON(&run))
	require.Equal(t, "best_solution_36.3972", run.AlgorithmID)
	require.Equal(t, 30, run.Parameters.NumCustomers)
}
