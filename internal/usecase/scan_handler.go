package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	pkgkafka "SwingSignal/pkg/kafka"
	applogger "SwingSignal/pkg/logger"
)

// ScanHandler consumes ScanRequest messages and screens the listed symbols.
// The screen publishes the resulting signals.
type ScanHandler struct {
	topic   string
	screen  *ScreenUseCase
	capital float64
	metrics domrepo.Metrics
	log     *applogger.Logger
}

var _ pkgkafka.MessageHandler = (*ScanHandler)(nil)

// NewScanHandler builds the handler. defaultCapital is used when a request
// carries none.
func NewScanHandler(topic string, screen *ScreenUseCase, defaultCapital float64, metrics domrepo.Metrics, log *applogger.Logger) *ScanHandler {
	return &ScanHandler{topic: topic, screen: screen, capital: defaultCapital, metrics: metrics, log: log}
}

func (h *ScanHandler) Topic() string { return h.topic }

func (h *ScanHandler) Handle(ctx context.Context, b []byte) error {
	var req models.ScanRequest
	if err := json.Unmarshal(b, &req); err != nil {
		h.metrics.RecordError("scan_unmarshal")
		return fmt.Errorf("decode scan request: %w", err)
	}
	if req.Capital <= 0 {
		req.Capital = h.capital
	}

	res, err := h.screen.Screen(ctx, ScreenParams{
		Symbols:   req.Symbols,
		Mode:      req.Mode,
		Timeframe: req.Timeframe,
		Capital:   req.Capital,
	})
	if err != nil {
		h.metrics.RecordError("scan")
		return err
	}
	if len(res.Errors) > 0 {
		h.log.Warn("scan skipped symbols", applogger.Any("errors", res.Errors))
	}
	h.log.Info("scan completed",
		applogger.Strings("symbols", req.Symbols),
		applogger.Int("analyzed", len(res.Results)),
		applogger.Int("failed", len(res.Errors)),
		applogger.Int("allocated", len(res.Allocation.Lines)))
	return nil
}
