package api

import (
	"github.com/labstack/echo/v4"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	"SwingSignal/internal/services/profiles"
	"SwingSignal/internal/services/risk"
	"SwingSignal/internal/usecase"
	xhttp "SwingSignal/pkg/http"
	applogger "SwingSignal/pkg/logger"
)

// AnalysisEchoHandler serves live analysis, screening and risk calculators.
type AnalysisEchoHandler struct {
	log     *applogger.Logger
	analyze *usecase.AnalyzeUseCase
	screen  *usecase.ScreenUseCase
	book    *profiles.Book
}

var _ xhttp.Handler = (*AnalysisEchoHandler)(nil)

func NewAnalysisEchoHandler(log *applogger.Logger, analyze *usecase.AnalyzeUseCase, screen *usecase.ScreenUseCase, book *profiles.Book) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{log: log, analyze: analyze, screen: screen, book: book}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
	g.POST("/screen", h.Screen)
	g.POST("/risk/position-size", h.PositionSize)
	g.POST("/risk/reward", h.RiskReward)
}

func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyze.Analyze(c.Request().Context(), usecase.AnalyzeParams{
		Symbol:    req.Symbol,
		Mode:      req.Mode,
		Timeframe: req.Timeframe,
		Horizon:   req.Horizon,
		Capital:   req.Capital,
	})
	if err != nil {
		return errorResponse(c, h.log, "analyze", err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Screen(c echo.Context) error {
	req := &models.ScreenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.screen.Screen(c.Request().Context(), usecase.ScreenParams{
		Symbols:   req.Symbols,
		Mode:      req.Mode,
		Timeframe: req.Timeframe,
		Horizon:   req.Horizon,
		Capital:   req.Capital,
	})
	if err != nil {
		return errorResponse(c, h.log, "screen", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) PositionSize(c echo.Context) error {
	req := &models.PositionSizeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	mode, err := h.book.RiskMode(domrepo.NormalizeRiskMode(req.Mode))
	if err != nil {
		return errorResponse(c, h.log, "position size", err)
	}

	plan, err := risk.PositionSize(req.Capital, req.Entry, req.Stop, mode.RiskPerTrade)
	if err != nil {
		return errorResponse(c, h.log, "position size", err)
	}
	return xhttp.SuccessResponse(c, plan)
}

func (h *AnalysisEchoHandler) RiskReward(c echo.Context) error {
	req := &models.RiskRewardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	mode, err := h.book.RiskMode(domrepo.NormalizeRiskMode(req.Mode))
	if err != nil {
		return errorResponse(c, h.log, "risk reward", err)
	}

	rr, err := risk.RiskReward(req.Entry, req.Target, req.Stop, mode.MinRiskReward)
	if err != nil {
		return errorResponse(c, h.log, "risk reward", err)
	}
	return xhttp.SuccessResponse(c, rr)
}
