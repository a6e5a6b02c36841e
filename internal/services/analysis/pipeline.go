// Package analysis composes indicators, gating, scoring, resolution and
// risk into a single pure call.
package analysis

import (
	"fmt"

	"SwingSignal/internal/domain/models"
	domsvc "SwingSignal/internal/domain/service"
	"SwingSignal/internal/services/filters"
	"SwingSignal/internal/services/indicators"
	"SwingSignal/internal/services/recommendation"
	"SwingSignal/internal/services/risk"
	"SwingSignal/internal/services/scoring"
)

// Pipeline is safe for concurrent use; it holds only immutable tables.
type Pipeline struct {
	gate     *filters.Gate
	scorer   *scoring.Engine
	patterns domsvc.PatternDetector
}

var _ domsvc.Analyzer = (*Pipeline)(nil)

// NewPipeline wires the stages. detector may be nil.
func NewPipeline(rules models.FilterSet, scorer *scoring.Engine, detector domsvc.PatternDetector) *Pipeline {
	return &Pipeline{
		gate:     filters.NewGate(rules),
		scorer:   scorer,
		patterns: detector,
	}
}

func (p *Pipeline) Analyze(bars models.Bars, tf models.TimeframeConfig, mode models.RiskModeConfig, opts domsvc.AnalyzeOptions) (*models.AnalysisResult, error) {
	snap, err := indicators.Compute(bars, tf)
	if err != nil {
		return nil, err
	}
	if p.patterns != nil {
		snap.Patterns = p.patterns.Detect(bars)
	}

	buy := p.gate.Evaluate(snap, filters.Buy)
	sell := p.gate.Evaluate(snap, filters.Sell)
	card := p.scorer.Score(snap, mode)
	rec := recommendation.Resolve(card.Confidence, buy, sell, mode.Thresholds)

	dir := models.Long
	if rec.Category == models.CategorySell {
		dir = models.Short
	}
	targets, err := risk.Targets(snap, mode, dir)
	if err != nil {
		return nil, fmt.Errorf("targets: %w", err)
	}
	stops, err := risk.Stops(snap, mode, dir)
	if err != nil {
		return nil, fmt.Errorf("stops: %w", err)
	}

	res := &models.AnalysisResult{
		Symbol:         opts.Symbol,
		Timeframe:      tf.Name,
		Mode:           mode.Name,
		AsOf:           bars.Last().Date,
		Price:          snap.Price,
		Snapshot:       *snap,
		BuyGate:        buy,
		SellGate:       sell,
		Score:          card,
		Recommendation: rec,
		Targets:        targets,
		Stops:          stops,
		Trailing:       risk.Trailing(snap.Price, snap.ATR, mode.ATRStopMultiplier, dir),
	}

	rr, rrErr := risk.RiskReward(snap.Price, targets.Recommended.Price, stops.Recommended.Price, mode.MinRiskReward)
	if rrErr != nil {
		res.RiskRewardErr = rrErr.Error()
	} else {
		res.RiskReward = rr
	}

	if opts.Capital > 0 {
		plan, err := risk.PositionSize(opts.Capital, snap.Price, stops.Recommended.Price, mode.RiskPerTrade)
		if err != nil {
			res.Advisories = append(res.Advisories, models.Advisory{Code: "position_size_unavailable", Message: err.Error()})
		} else {
			res.Position = &plan
		}
	}

	res.Advisories = append(res.Advisories, recommendation.Advise(recommendation.AdviceInput{
		Recommendation: rec,
		Score:          card,
		Snapshot:       snap,
		RiskReward:     rr,
		RiskRewardErr:  rrErr,
		Mode:           mode,
	})...)

	return res, nil
}
