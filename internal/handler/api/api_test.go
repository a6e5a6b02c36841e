package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	domsvc "SwingSignal/internal/domain/service"
	"SwingSignal/internal/service/ratelimit"
	"SwingSignal/internal/services/backtest"
	"SwingSignal/internal/services/profiles"
	"SwingSignal/internal/usecase"
	xhttp "SwingSignal/pkg/http"
	applogger "SwingSignal/pkg/logger"
	"SwingSignal/pkg/metrics"
)

var today = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type memStore struct {
	bars map[string]models.Bars
}

func (s *memStore) GetDailyBars(_ context.Context, symbol string, from, to time.Time) (models.Bars, error) {
	var out models.Bars
	for _, b := range s.bars[symbol] {
		if !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) GetLatestBars(_ context.Context, symbol string, n int) (models.Bars, error) {
	all := s.bars[symbol]
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (s *memStore) SaveBars(_ context.Context, symbol string, bars models.Bars) error {
	s.bars[symbol] = bars
	return nil
}

type buyAnalyzer struct{}

func (buyAnalyzer) Analyze(bars models.Bars, tf models.TimeframeConfig, mode models.RiskModeConfig, opts domsvc.AnalyzeOptions) (*models.AnalysisResult, error) {
	return &models.AnalysisResult{
		Symbol:         opts.Symbol,
		Timeframe:      tf.Name,
		Mode:           mode.Name,
		AsOf:           bars.Last().Date,
		Price:          bars.Last().Close,
		Recommendation: models.Recommendation{Label: models.LabelHold, Category: models.CategoryHold},
		Score:          models.ScoreCard{Confidence: 40},
	}, nil
}

type runStore struct {
	runs   map[string]*models.BacktestResult
	getErr error
}

func (s *runStore) SaveRun(_ context.Context, res *models.BacktestResult) error {
	s.runs[res.RunID] = res
	return nil
}

func (s *runStore) GetRun(_ context.Context, id string) (*models.BacktestRun, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	res, ok := s.runs[id]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	return &models.BacktestRun{RunID: id, Symbol: res.Symbol, BacktestMetrics: res.Metrics}, nil
}

func (s *runStore) ListTrades(_ context.Context, id string) ([]models.Trade, error) {
	return s.runs[id].Trades, nil
}

type idQueue struct{ n int }

func (q *idQueue) Enqueue(context.Context, string, interface{}) (string, error) {
	q.n++
	return "m", nil
}

func bars(n int, end time.Time) models.Bars {
	out := make(models.Bars, n)
	start := end.AddDate(0, 0, -(n - 1))
	for i := range out {
		c := 50 + float64(i)*0.2
		out[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 5000}
	}
	return out
}

type fixture struct {
	e     *echo.Echo
	runs  *runStore
	queue *idQueue
}

func newFixture(t *testing.T, limiter *ratelimit.Limiter) *fixture {
	t.Helper()
	log := applogger.Nop()
	book := profiles.Default()
	store := &memStore{bars: map[string]models.Bars{"AAPL": bars(400, today), "MSFT": bars(400, today)}}
	history := usecase.NewHistoryUseCase(store, nil, false, log)
	analyze := usecase.NewAnalyzeUseCase(history, book, buyAnalyzer{}, metrics.Nop{}, log,
		usecase.WithClock(func() time.Time { return today }))
	screen := usecase.NewScreenUseCase(analyze, nil, 2, log)

	f := &fixture{runs: &runStore{runs: map[string]*models.BacktestResult{}}, queue: &idQueue{}}
	bt := usecase.NewBacktestUseCase(history, book, backtest.NewSimulator(buyAnalyzer{}, log), f.runs, f.queue, metrics.Nop{}, time.Minute, log)

	bh := NewBacktestEchoHandler(log, bt, limiter, 180)
	bh.now = func() time.Time { return today }

	f.e = echo.New()
	xhttp.Handlers{NewAnalysisEchoHandler(log, analyze, screen, book), bh}.RegisterRoutes(f.e)
	return f
}

func (f *fixture) do(method, path, body string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.RemoteAddr = "192.0.2.1:5000"
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	var env xhttp.APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func dataOf(t *testing.T, env xhttp.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := env.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", env.Data)
	return m
}

func TestAnalyzeEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	rec, env := f.do(http.MethodGet, "/api/analyze?symbol=aapl&mode=conservative", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := dataOf(t, env)
	assert.Equal(t, "AAPL", data["symbol"])
	assert.Equal(t, "conservative", data["mode"])

	rec, _ = f.do(http.MethodGet, "/api/analyze", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(http.MethodGet, "/api/analyze?symbol=AAPL&mode=yolo", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// too little history is a caller error
	rec, _ = f.do(http.MethodGet, "/api/analyze?symbol=NEWIPO", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScreenEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	rec, env := f.do(http.MethodPost, "/api/screen", `{"symbols":["AAPL","MSFT","NEWIPO"],"capital":50000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := dataOf(t, env)
	assert.Len(t, data["results"], 2)
	assert.Contains(t, data["errors"], "NEWIPO")
	alloc := data["allocation"].(map[string]interface{})
	assert.Equal(t, 50000.0, alloc["capital"])

	rec, _ = f.do(http.MethodPost, "/api/screen", `{"symbols":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRiskEndpoints(t *testing.T) {
	f := newFixture(t, nil)

	rec, env := f.do(http.MethodPost, "/api/risk/position-size", `{"capital":100000,"entry":100,"stop":95}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Greater(t, dataOf(t, env)["shares"], 0.0)

	rec, _ = f.do(http.MethodPost, "/api/risk/position-size", `{"capital":100000,"entry":100,"stop":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = f.do(http.MethodPost, "/api/risk/reward", `{"entry":100,"target":110,"stop":95}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.InDelta(t, 2.0, dataOf(t, env)["ratio"], 1e-9)

	rec, _ = f.do(http.MethodPost, "/api/risk/reward", `{"entry":100,"target":110,"stop":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBacktestEndpoints(t *testing.T) {
	f := newFixture(t, nil)

	rec, env := f.do(http.MethodPost, "/api/backtest", `{"symbol":"AAPL","from":"2024-01-01","to":"2024-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	runID, _ := dataOf(t, env)["run_id"].(string)
	require.NotEmpty(t, runID)

	rec, env = f.do(http.MethodGet, "/api/backtests/"+runID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	run := dataOf(t, env)["run"].(map[string]interface{})
	assert.Equal(t, "AAPL", run["symbol"])

	rec, env = f.do(http.MethodPost, "/api/backtests", `{"symbol":"AAPL"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Equal(t, "queued", dataOf(t, env)["status"])
	assert.Equal(t, 1, f.queue.n)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "/api/backtests/")

	rec, _ = f.do(http.MethodGet, "/api/backtests/4b4f6a3e-8a55-4a2f-9d2c-2b1c1f0d9e77", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(http.MethodGet, "/api/backtests/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(http.MethodPost, "/api/backtest", `{"symbol":"AAPL","from":"2024-06-01","to":"2024-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.runs.getErr = errors.New("clickhouse down")
	rec, _ = f.do(http.MethodGet, "/api/backtests/"+runID, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBacktestRateLimit(t *testing.T) {
	f := newFixture(t, ratelimit.New(0.001, 1, time.Minute))

	rec, _ := f.do(http.MethodPost, "/api/backtests", `{"symbol":"AAPL"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	rec, _ = f.do(http.MethodPost, "/api/backtests", `{"symbol":"AAPL"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// analysis routes are not throttled
	rec, _ = f.do(http.MethodGet, "/api/analyze?symbol=AAPL", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
