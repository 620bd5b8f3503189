package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/i18n"
	"github.com/abhisek/numbernexus/internal/metrics"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/stats"
	"github.com/abhisek/numbernexus/internal/store"
)

type testServer struct {
	*httptest.Server
	store *store.Store
}

func newTestServer(t *testing.T, cfg RouterConfig) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	engine := progression.New(progression.DefaultConfig())
	m := metrics.New()
	h, err := New(Deps{
		Store:     db,
		Stats:     stats.NewService(db.Stats(), db.Events(), engine, stats.WithMetrics(m)),
		Dashboard: dashboard.NewBuilder(db.Stats(), db.Events(), engine),
		Metrics:   m,
		Version:   "test",
	})
	require.NoError(t, err)

	if cfg.Translator == nil {
		tr, err := i18n.New("en", nil)
		require.NoError(t, err)
		cfg.Translator = tr
	}
	if cfg.CORSOrigins == nil {
		cfg.CORSOrigins = []string{"*"}
	}

	srv := httptest.NewServer(h.Router(cfg))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: db}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	status, body := s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestProblems(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	status, body := s.do(t, http.MethodGet, "/api/problems?operation=addition&maxSum=20&count=10", "")
	require.Equal(t, http.StatusOK, status)
	problems := body["problems"].([]any)
	require.Len(t, problems, 10)

	var prev string
	for _, p := range problems {
		p := p.(map[string]any)
		n1, n2 := int(p["num1"].(float64)), int(p["num2"].(float64))
		assert.LessOrEqual(t, n1+n2, 20)
		assert.Equal(t, fmt.Sprint(n1+n2), p["answer"])
		pair := fmt.Sprintf("%d,%d", n1, n2)
		assert.NotEqual(t, prev, pair, "problem repeated back to back")
		prev = pair
	}

	status, body = s.do(t, http.MethodGet, "/api/problems?operation=division&difficulty=easy&exclude=10,2", "")
	require.Equal(t, http.StatusOK, status)
	p := body["problems"].([]any)[0].(map[string]any)
	assert.Equal(t, "division", p["operation"])
	assert.Equal(t, "easy", p["difficulty"])
	assert.Contains(t, p["question"], "÷")
}

func TestProblems_SmallestMaxSum(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	status, body := s.do(t, http.MethodGet, "/api/problems?operation=subtraction&maxSum=1", "")
	require.Equal(t, http.StatusOK, status)
	p := body["problems"].([]any)[0].(map[string]any)
	assert.Equal(t, "subtraction", p["operation"])
}

func TestProblems_BadRequests(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	for _, q := range []string{
		"operation=modulo",
		"difficulty=insane",
		"difficulty=easy&maxSum=20",
		"maxSum=abc",
		"maxSum=0",
		"maxSum=-3",
		"count=0",
		"count=21",
		"exclude=10",
	} {
		status, body := s.do(t, http.MethodGet, "/api/problems?"+q, "")
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.NotEmpty(t, body["error"], q)
	}
}

func TestHints(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	status, body := s.do(t, http.MethodGet, "/api/hints?operation=addition&num1=8&num2=5", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "make-ten", body["type"])
	assert.Equal(t, "Make Ten", body["title"])
	assert.Equal(t, "Bridge", body["category"])
	assert.Equal(t, true, body["bridgeThroughTen"])
	assert.Equal(t, map[string]any{"needs": 2.0, "remainder": 3.0}, body["breakdown"])

	status, body = s.do(t, http.MethodGet, "/api/hints?operation=addition&num1=8&num2=5", "", "Accept-Language", "es")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Formar diez", body["title"])

	status, body = s.do(t, http.MethodGet, "/api/hints?operation=multiplication&num1=3&num2=4", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fact-family", body["type"])
	assert.Nil(t, body["category"])

	status, _ = s.do(t, http.MethodGet, "/api/hints?operation=addition&num1=-1&num2=5", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStudentLifecycle(t *testing.T) {
	s := newTestServer(t, RouterConfig{})

	status, body := s.do(t, http.MethodPost, "/api/students", `{"name":"Ada"}`)
	require.Equal(t, http.StatusCreated, status)
	student := body["student"].(map[string]any)
	id := student["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Ada", student["name"])
	assert.Len(t, body["topics"], 4)

	status, _ = s.do(t, http.MethodPut, "/api/students/"+id+"/difficulty", `{"difficulty":"extreme"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = s.do(t, http.MethodPut, "/api/students/"+id+"/difficulty", `{"difficulty":"hard"}`)
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodPost, "/api/students/"+id+"/solves",
		`{"topic":"addition","num1":8,"num2":5,"answer":"13","responseMs":4200}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["correct"])
	assert.EqualValues(t, 15, body["points"])
	assert.Equal(t, "first-steps", body["newAchievements"].([]any)[0].(map[string]any)["id"])

	status, body = s.do(t, http.MethodPost, "/api/students/"+id+"/solves",
		`{"topic":"addition","num1":8,"num2":5,"answer":"14","responseMs":5000}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["correct"])
	assert.Equal(t, "off-by-one", body["diagnosis"].(map[string]any)["classifier"])

	status, body = s.do(t, http.MethodPost, "/api/students/"+id+"/solves",
		`{"topic":"multiplication","num1":3,"num2":4,"correct":true}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], "locked")

	status, _ = s.do(t, http.MethodPost, "/api/students/"+id+"/drills",
		`{"topic":"addition","correct":12,"attempted":15,"durationMs":60000}`)
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodGet, "/api/students/"+id+"/topics", "", "Accept-Language", "es")
	require.Equal(t, http.StatusOK, status)
	first := body["topics"].([]any)[0].(map[string]any)
	assert.Equal(t, "Suma", first["name"])
	assert.Equal(t, "addition", first["id"])
	assert.Equal(t, true, first["isUnlocked"])

	status, body = s.do(t, http.MethodGet, "/api/students/"+id+"/dashboard", "")
	require.Equal(t, http.StatusOK, status)
	activity := body["activity"].([]any)
	assert.Len(t, activity, dashboard.ActivityDays)
	today := activity[len(activity)-1].(map[string]any)
	assert.EqualValues(t, 17, today["problems"])
	assert.NotEmpty(t, body["earnedAchievements"])

	status, body = s.do(t, http.MethodPost, "/api/students/"+id+"/reset", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["student"].(map[string]any)["totalScore"])
	assert.Equal(t, "hard", body["student"].(map[string]any)["difficulty"])

	status, _ = s.do(t, http.MethodDelete, "/api/students/"+id, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = s.do(t, http.MethodDelete, "/api/students/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSolve_SchemaValidation(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	for _, body := range []string{
		`{"topic":"addition","num1":1}`,
		`{"topic":"addition","num1":1,"num2":2}`,
		`{"topic":"fractions","num1":1,"num2":2,"correct":true}`,
		`{"topic":"addition","num1":-1,"num2":2,"correct":true}`,
		`{"topic":"addition","num1":1,"num2":2,"correct":true,"extra":1}`,
		`not json`,
	} {
		status, resp := s.do(t, http.MethodPost, "/api/students/kid/solves", body)
		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.NotEmpty(t, resp["error"], body)
	}
}

func TestListStudents(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	status, body := s.do(t, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["students"])

	s.do(t, http.MethodPost, "/api/students", `{"name":"A"}`)
	s.do(t, http.MethodPost, "/api/students", `{}`)
	_, body = s.do(t, http.MethodGet, "/api/students", "")
	assert.Len(t, body["students"], 2)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, RouterConfig{RateLimit: 2, RateWindow: time.Hour})

	for range 2 {
		status, _ := s.do(t, http.MethodGet, "/api/health", "")
		require.Equal(t, http.StatusOK, status)
	}
	status, body := s.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "too many requests", body["error"])

	// Metrics are outside the limited API group.
	resp, err := http.Get(s.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, RouterConfig{})
	s.do(t, http.MethodGet, "/api/problems?operation=subtraction", "")

	resp, err := http.Get(s.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, `numbernexus_problems_generated_total{difficulty="medium",operation="subtraction"} 1`)
	assert.Contains(t, out, `http_requests_total{endpoint="/api/problems",method="GET",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, RouterConfig{CORSOrigins: []string{"http://localhost:5173"}})

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/api/students", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestIPLimiterSweepsIdleVisitors(t *testing.T) {
	l := newIPLimiter(1, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("1.1.1.1"))
	assert.False(t, l.allow("1.1.1.1"))
	assert.True(t, l.allow("2.2.2.2"))

	now = now.Add(10 * time.Minute)
	assert.True(t, l.allow("3.3.3.3"))
	assert.Len(t, l.visitors, 1)
}
