package service

import (
	"SwingSignal/internal/domain/models"
)

// Analyzer runs the full indicator to risk pipeline over a bar series.
type Analyzer interface {
	Analyze(bars models.Bars, tf models.TimeframeConfig, mode models.RiskModeConfig, opts AnalyzeOptions) (*models.AnalysisResult, error)
}

// AnalyzeOptions carries optional per-call inputs.
type AnalyzeOptions struct {
	Symbol  string
	Capital float64 // position plan is computed when > 0
}

// PatternDetector finds candlestick formations at the end of a series.
type PatternDetector interface {
	Detect(bars models.Bars) []models.Pattern
}
