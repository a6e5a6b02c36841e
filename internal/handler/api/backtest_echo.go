package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/service/ratelimit"
	"SwingSignal/internal/usecase"
	xhttp "SwingSignal/pkg/http"
	applogger "SwingSignal/pkg/logger"
	"SwingSignal/pkg/util"
)

// BacktestEchoHandler serves synchronous and queued backtests. All routes
// share one per-IP limiter.
type BacktestEchoHandler struct {
	log          *applogger.Logger
	backtests    *usecase.BacktestUseCase
	limiter      *ratelimit.Limiter
	lookbackDays int
	now          func() time.Time
}

var _ xhttp.Handler = (*BacktestEchoHandler)(nil)

// NewBacktestEchoHandler builds the handler. limiter may be nil to disable
// throttling. lookbackDays applies when a request omits from.
func NewBacktestEchoHandler(log *applogger.Logger, backtests *usecase.BacktestUseCase, limiter *ratelimit.Limiter, lookbackDays int) *BacktestEchoHandler {
	return &BacktestEchoHandler{log: log, backtests: backtests, limiter: limiter, lookbackDays: lookbackDays, now: time.Now}
}

func (h *BacktestEchoHandler) RegisterRoutes(e *echo.Echo) {
	var mw []echo.MiddlewareFunc
	if h.limiter != nil {
		mw = append(mw, h.limiter.Middleware())
	}
	g := e.Group("/api", mw...)
	g.POST("/backtest", h.Run)
	g.POST("/backtests", h.Submit)
	g.GET("/backtests/:id", h.Get)
}

// params binds a backtest request. When ok is false the error response has
// already been written and err is the result of writing it.
func (h *BacktestEchoHandler) params(c echo.Context) (p usecase.BacktestParams, ok bool, err error) {
	req := &models.BacktestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return p, false, xhttp.BadRequestResponse(c, verr)
	}
	from, to, rerr := util.DateRange(req.From, req.To, h.lookbackDays, h.now())
	if rerr != nil {
		return p, false, xhttp.AppErrorResponse(c, xhttp.BadRequestError(rerr.Error()).WithField("from"))
	}
	return usecase.BacktestParams{
		Symbol:    req.Symbol,
		Mode:      req.Mode,
		Timeframe: req.Timeframe,
		Capital:   req.Capital,
		From:      from,
		To:        to,
	}, true, nil
}

func (h *BacktestEchoHandler) Run(c echo.Context) error {
	p, ok, err := h.params(c)
	if !ok {
		return err
	}
	res, err := h.backtests.Run(c.Request().Context(), p)
	if err != nil {
		return errorResponse(c, h.log, "backtest", err)
	}
	return xhttp.SuccessResponse(c, res)
}

type submitResponse struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

func (h *BacktestEchoHandler) Submit(c echo.Context) error {
	p, ok, err := h.params(c)
	if !ok {
		return err
	}
	runID, err := h.backtests.Submit(c.Request().Context(), p)
	if err != nil {
		return errorResponse(c, h.log, "backtest submit", err)
	}
	c.Response().Header().Set(echo.HeaderLocation, "/api/backtests/"+runID)
	return xhttp.AcceptedResponse(c, submitResponse{RunID: runID, Status: "queued"})
}

func (h *BacktestEchoHandler) Get(c echo.Context) error {
	req := &models.BacktestRunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	report, err := h.backtests.Get(c.Request().Context(), req.ID)
	if err != nil {
		return errorResponse(c, h.log, "backtest get", err)
	}
	return xhttp.SuccessResponse(c, report)
}
