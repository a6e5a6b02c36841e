package usecase

import (
	"context"
	"fmt"
	"time"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	"SwingSignal/internal/services/indicators"
	applogger "SwingSignal/pkg/logger"
)

// maxStaleDays tolerates a weekend plus a holiday between the last stored
// bar and the requested end date.
const maxStaleDays = 4

// HistoryUseCase loads daily bars from the bar store and falls back to the
// upstream provider when the store is short or stale.
type HistoryUseCase struct {
	store        domrepo.BarStore
	upstream     domrepo.HistoryProvider
	writeThrough bool
	log          *applogger.Logger
}

// NewHistoryUseCase builds the loader. Either source may be nil but not both.
func NewHistoryUseCase(store domrepo.BarStore, upstream domrepo.HistoryProvider, writeThrough bool, log *applogger.Logger) *HistoryUseCase {
	return &HistoryUseCase{store: store, upstream: upstream, writeThrough: writeThrough, log: log}
}

// Load returns bars for symbol in [from, to], oldest first, and fails with
// ErrInsufficientHistory when fewer than need bars (at least
// indicators.MinBars) are available.
func (uc *HistoryUseCase) Load(ctx context.Context, symbol string, from, to time.Time, need int) (models.Bars, error) {
	symbol = domrepo.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from %s is not before to %s", ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	if need < indicators.MinBars {
		need = indicators.MinBars
	}

	var bars models.Bars
	if uc.store != nil {
		stored, err := uc.store.GetDailyBars(ctx, symbol, from, to)
		if err != nil {
			uc.log.Warn("bar store read failed", applogger.String("symbol", symbol), applogger.Error(err))
		} else {
			bars = stored
		}
		if len(bars) >= need && !stale(bars, to) {
			return bars, nil
		}
	}

	if uc.upstream != nil {
		fetched, err := uc.upstream.GetDailyBars(ctx, symbol, from, to)
		if err != nil {
			if len(bars) >= need {
				uc.log.Warn("upstream refresh failed, serving stored bars",
					applogger.String("symbol", symbol), applogger.Error(err))
				return bars, nil
			}
			if latest := uc.latestStored(ctx, symbol, to, need); latest != nil {
				uc.log.Warn("upstream refresh failed, serving latest stored bars",
					applogger.String("symbol", symbol), applogger.Error(err))
				return latest, nil
			}
			return nil, fmt.Errorf("fetch history %s: %w", symbol, err)
		}
		if len(fetched) > len(bars) {
			bars = fetched
		}
		uc.persist(ctx, symbol, fetched, from, to, &bars)
	}

	if len(bars) < need {
		if latest := uc.latestStored(ctx, symbol, to, need); latest != nil {
			return latest, nil
		}
		return nil, fmt.Errorf("%w: %s has %d bars, need %d", ErrInsufficientHistory, symbol, len(bars), need)
	}
	return bars, nil
}

func (uc *HistoryUseCase) persist(ctx context.Context, symbol string, fetched models.Bars, from, to time.Time, bars *models.Bars) {
	if uc.store == nil || !uc.writeThrough || len(fetched) == 0 {
		return
	}
	if err := uc.store.SaveBars(ctx, symbol, fetched); err != nil {
		uc.log.Warn("bar write-through failed", applogger.String("symbol", symbol), applogger.Error(err))
		return
	}
	reread, err := uc.store.GetDailyBars(ctx, symbol, from, to)
	if err != nil {
		uc.log.Warn("bar re-read failed", applogger.String("symbol", symbol), applogger.Error(err))
		return
	}
	if len(reread) >= len(*bars) {
		*bars = reread
	}
}

// latestStored reads the newest need stored bars ending at or before to, for
// when the requested range alone is too short. Returns nil when the store
// cannot cover need.
func (uc *HistoryUseCase) latestStored(ctx context.Context, symbol string, to time.Time, need int) models.Bars {
	if uc.store == nil {
		return nil
	}
	latest, err := uc.store.GetLatestBars(ctx, symbol, need)
	if err != nil {
		uc.log.Warn("latest bars read failed", applogger.String("symbol", symbol), applogger.Error(err))
		return nil
	}
	n := len(latest)
	for n > 0 && latest[n-1].Date.After(to) {
		n--
	}
	if n < need {
		return nil
	}
	return latest[:n]
}

func stale(bars models.Bars, to time.Time) bool {
	if len(bars) == 0 {
		return true
	}
	return bars.Last().Date.Before(to.AddDate(0, 0, -maxStaleDays))
}
