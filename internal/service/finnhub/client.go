package finnhub

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"SwingSignal/internal/domain/models"
	drepo "SwingSignal/internal/domain/repository"
	xhttp "SwingSignal/pkg/http"
	applogger "SwingSignal/pkg/logger"

	"github.com/sony/gobreaker"
)

const (
	DefaultBaseURL = "https://finnhub.io/api/v1"

	statusOK     = "ok"
	statusNoData = "no_data"
)

var ErrMalformedCandles = errors.New("finnhub: malformed candle response")

// Client fetches daily candles from the Finnhub REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	breaker *gobreaker.CircuitBreaker
	log     *applogger.Logger
}

var _ drepo.HistoryProvider = (*Client)(nil)

type Option func(*settings)

type settings struct {
	baseURL        string
	timeout        time.Duration
	breakerTimeout time.Duration
	breakerFails   uint32
	httpClient     *xhttp.Client
}

func WithBaseURL(u string) Option {
	return func(s *settings) {
		if u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithBreaker sets how many consecutive failures open the breaker and how
// long it stays open.
func WithBreaker(fails uint32, open time.Duration) Option {
	return func(s *settings) {
		if fails > 0 {
			s.breakerFails = fails
		}
		if open > 0 {
			s.breakerTimeout = open
		}
	}
}

func WithHTTPClient(c *xhttp.Client) Option {
	return func(s *settings) { s.httpClient = c }
}

func New(apiKey string, log *applogger.Logger, opts ...Option) *Client {
	s := settings{
		baseURL:        DefaultBaseURL,
		timeout:        10 * time.Second,
		breakerTimeout: 30 * time.Second,
		breakerFails:   5,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.httpClient == nil {
		s.httpClient = xhttp.NewClient(xhttp.WithTimeout(s.timeout))
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: s.baseURL,
		http:    s.httpClient,
		log:     log,
	}
	fails := s.breakerFails
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "finnhub",
		Timeout: s.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= fails
		},
		// client errors are the caller's fault and must not trip the breaker
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *xhttp.StatusError
			if errors.As(err, &se) {
				return !se.Temporary()
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				applogger.String("breaker", name),
				applogger.String("from", from.String()),
				applogger.String("to", to.String()))
		},
	})
	return c
}

type candleResponse struct {
	Close  []float64 `json:"c"`
	High   []float64 `json:"h"`
	Low    []float64 `json:"l"`
	Open   []float64 `json:"o"`
	Time   []int64   `json:"t"`
	Volume []float64 `json:"v"`
	Status string    `json:"s"`
}

// GetDailyBars returns daily bars in [from, to], oldest first. A symbol with
// no data in the window yields an empty slice.
func (c *Client) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) (models.Bars, error) {
	opts := &xhttp.RequestOptions{
		URL: c.baseURL + "/stock/candle",
		QueryParams: map[string][]string{
			"symbol":     {symbol},
			"resolution": {"D"},
			"from":       {strconv.FormatInt(from.Unix(), 10)},
			"to":         {strconv.FormatInt(to.Unix(), 10)},
		},
		Headers: map[string]string{"X-Finnhub-Token": c.apiKey},
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		var resp candleResponse
		if err := c.http.SendAndParse(ctx, opts, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("finnhub candles %s: %w", symbol, err)
	}

	resp := out.(*candleResponse)
	switch resp.Status {
	case statusNoData:
		return models.Bars{}, nil
	case statusOK:
	default:
		return nil, fmt.Errorf("finnhub candles %s: status %q", symbol, resp.Status)
	}

	bars, err := resp.bars()
	if err != nil {
		return nil, fmt.Errorf("finnhub candles %s: %w", symbol, err)
	}
	c.log.Debug("fetched candles", applogger.String("symbol", symbol), applogger.Int("bars", len(bars)))
	return bars, nil
}

func (r *candleResponse) bars() (models.Bars, error) {
	n := len(r.Time)
	if len(r.Open) != n || len(r.High) != n || len(r.Low) != n || len(r.Close) != n || len(r.Volume) != n {
		return nil, ErrMalformedCandles
	}
	bars := make(models.Bars, 0, n)
	for i := 0; i < n; i++ {
		ts := time.Unix(r.Time[i], 0).UTC()
		bars = append(bars, models.PriceBar{
			Date:   time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
			Open:   r.Open[i],
			High:   r.High[i],
			Low:    r.Low[i],
			Close:  r.Close[i],
			Volume: r.Volume[i],
		})
	}
	return bars, nil
}
