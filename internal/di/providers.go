package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/wire"

	domrepo "SwingSignal/internal/domain/repository"
	domsvc "SwingSignal/internal/domain/service"
	"SwingSignal/internal/handler/api"
	internalrepo "SwingSignal/internal/repository"
	icache "SwingSignal/internal/service/cache"
	"SwingSignal/internal/service/finnhub"
	"SwingSignal/internal/service/ratelimit"
	"SwingSignal/internal/services/analysis"
	"SwingSignal/internal/services/backtest"
	"SwingSignal/internal/services/patterns"
	"SwingSignal/internal/services/profiles"
	"SwingSignal/internal/services/scoring"
	"SwingSignal/internal/usecase"
	pkgcache "SwingSignal/pkg/cache"
	pkgch "SwingSignal/pkg/clickhouse"
	"SwingSignal/pkg/config"
	xhttp "SwingSignal/pkg/http"
	pkgkafka "SwingSignal/pkg/kafka"
	applogger "SwingSignal/pkg/logger"
	"SwingSignal/pkg/metrics"
	"SwingSignal/pkg/queue"
	"SwingSignal/pkg/server"
)

// Services are the use cases shared by the server and the CLI.
type Services struct {
	Log      *applogger.Logger
	Analyze  *usecase.AnalyzeUseCase
	Screen   *usecase.ScreenUseCase
	Backtest *usecase.BacktestUseCase
}

// CoreSet builds the use cases and their infrastructure.
var CoreSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideProfiles,
	ProvideAnalyzer,
	ProvideClickHouseClient,
	ProvideBarStore,
	ProvideBacktestStore,
	ProvideRedisCache,
	ProvideCache,
	ProvideAnalysisCache,
	ProvideQueue,
	ProvideQueuePublisher,
	ProvideKafkaProducer,
	ProvideSignalPublisher,
	ProvideUpstream,
	ProvideHistoryUseCase,
	ProvideAnalyzeUseCase,
	ProvideScreenUseCase,
	ProvideBacktestUseCase,
	wire.Struct(new(Services), "*"),
)

// ServerSet adds the HTTP, Kafka and queue entry points.
var ServerSet = wire.NewSet(
	ProvideRateLimiter,
	ProvideHTTPHandler,
	ProvideHTTPServer,
	ProvideKafkaConsumer,
	ProvideApp,
)

func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

func ProvideMetrics(cfg *config.Config) domrepo.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New()
}

// ProvideProfiles loads the strategy file, or the built-in profiles when none
// is configured.
func ProvideProfiles(cfg *config.Config) (*profiles.Book, error) {
	if cfg.StrategyFile == "" {
		return profiles.Default(), nil
	}
	book, err := profiles.Load(cfg.StrategyFile)
	if err != nil {
		return nil, fmt.Errorf("strategy file: %w", err)
	}
	return book, nil
}

func ProvideAnalyzer(book *profiles.Book) domsvc.Analyzer {
	return analysis.NewPipeline(book.Filters(), scoring.NewEngine(scoring.DefaultWeights()), patterns.NewCandleDetector())
}

// ProvideClickHouseClient connects and creates the schema. It returns nil
// when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config, log *applogger.Logger) (*pkgch.Client, func(), error) {
	if !cfg.ClickHouse.Enabled {
		return nil, func() {}, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecTime),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitAsync),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("clickhouse client: %w", err)
	}

	if cfg.ClickHouse.InitSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		stmts := append(append([]string{}, internalrepo.BarSchema...), internalrepo.BacktestSchema...)
		if err := client.InitSchema(ctx, stmts); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("clickhouse schema: %w", err)
		}
	}
	log.Info("clickhouse ready", applogger.String("host", cfg.ClickHouse.Host), applogger.String("database", cfg.ClickHouse.Database))

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Warn("clickhouse close", applogger.Error(err))
		}
	}
	return client, cleanup, nil
}

func ProvideBarStore(ch *pkgch.Client, log *applogger.Logger) domrepo.BarStore {
	if ch == nil {
		return nil
	}
	return internalrepo.NewCHBarStore(ch, log)
}

func ProvideBacktestStore(ch *pkgch.Client, log *applogger.Logger) domrepo.BacktestStore {
	if ch == nil {
		return nil
	}
	return internalrepo.NewCHBacktestStore(ch, log)
}

// ProvideRedisCache connects to Redis. It returns nil when Redis is disabled.
func ProvideRedisCache(cfg *config.Config) (*pkgcache.RedisCache, func(), error) {
	if !cfg.Redis.Enabled {
		return nil, func() {}, nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
		pkgcache.WithRedisPool(cfg.Redis.PoolSize, 2, 30*time.Second),
		pkgcache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	return rc, func() { _ = rc.Close() }, nil
}

// ProvideCache fronts Redis with a memory layer, or uses memory alone
// without Redis. The Redis client itself is closed by ProvideRedisCache.
func ProvideCache(cfg *config.Config, rc *pkgcache.RedisCache) (pkgcache.Service, func()) {
	if rc == nil {
		mem := pkgcache.NewMemoryCache(
			pkgcache.WithMemoryMaxSize(cfg.Analysis.MemorySize),
			pkgcache.WithMemoryCleanup(cfg.Analysis.MemoryCleanup),
			pkgcache.WithMemoryDefaultTTL(cfg.Analysis.MemoryTTL),
		)
		return mem, func() { _ = mem.Close() }
	}
	layered := pkgcache.NewLayeredCache(rc,
		pkgcache.WithLayeredMemorySize(cfg.Analysis.MemorySize),
		pkgcache.WithLayeredMemoryTTL(cfg.Analysis.MemoryTTL),
	)
	return layered, func() {}
}

func ProvideAnalysisCache(c pkgcache.Service) domrepo.AnalysisCache {
	return icache.NewAnalysisCache(c)
}

// ProvideQueue returns nil without Redis.
func ProvideQueue(cfg *config.Config, rc *pkgcache.RedisCache, log *applogger.Logger) *queue.RedisQueue {
	if rc == nil {
		return nil
	}
	return queue.NewRedisQueue(log, queue.Config{
		Workers:     cfg.Queue.Workers,
		RetryLimit:  cfg.Queue.MaxRetries,
		PollTimeout: cfg.Queue.PollTimeout,
	}, rc.Client(), queue.WithKeyPrefix(cfg.Redis.Prefix+":queue:"+cfg.Queue.Name))
}

func ProvideQueuePublisher(q *queue.RedisQueue) queue.Publisher {
	if q == nil {
		return nil
	}
	return q
}

// ProvideKafkaProducer returns nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, log *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}
	p := cfg.Kafka.Producer
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(p.Compression),
		pkgkafka.WithRequiredAcks(p.RequiredAcks),
		pkgkafka.WithMaxAttempts(p.MaxAttempts),
		pkgkafka.WithBatching(p.BatchSize, p.BatchTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	cleanup := func() {
		if err := producer.Close(); err != nil {
			log.Warn("kafka producer close", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

func ProvideSignalPublisher(cfg *config.Config, producer *pkgkafka.Producer) domrepo.SignalPublisher {
	if producer == nil {
		return internalrepo.NopSignalPublisher{}
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topics.Signals)
}

// ProvideUpstream returns nil without a Finnhub API key.
func ProvideUpstream(cfg *config.Config, log *applogger.Logger) domrepo.HistoryProvider {
	if cfg.Finnhub.APIKey == "" {
		log.Warn("finnhub api key not set, history comes from the bar store only")
		return nil
	}
	return finnhub.New(cfg.Finnhub.APIKey, log,
		finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
		finnhub.WithTimeout(cfg.Finnhub.Timeout),
		finnhub.WithBreaker(cfg.Finnhub.BreakerFails, cfg.Finnhub.BreakerTimeout),
	)
}

func ProvideHistoryUseCase(cfg *config.Config, store domrepo.BarStore, upstream domrepo.HistoryProvider, log *applogger.Logger) (*usecase.HistoryUseCase, error) {
	if store == nil && upstream == nil {
		return nil, errors.New("no history source: enable clickhouse or set finnhub.api_key")
	}
	return usecase.NewHistoryUseCase(store, upstream, cfg.History.WriteThrough, log), nil
}

func ProvideAnalyzeUseCase(
	cfg *config.Config,
	history *usecase.HistoryUseCase,
	book *profiles.Book,
	analyzer domsvc.Analyzer,
	cache domrepo.AnalysisCache,
	publisher domrepo.SignalPublisher,
	m domrepo.Metrics,
	log *applogger.Logger,
) *usecase.AnalyzeUseCase {
	return usecase.NewAnalyzeUseCase(history, book, analyzer, m, log,
		usecase.WithAnalysisCache(cache, cfg.Analysis.CacheTTL),
		usecase.WithSignalPublisher(publisher),
	)
}

func ProvideScreenUseCase(cfg *config.Config, analyze *usecase.AnalyzeUseCase, publisher domrepo.SignalPublisher, log *applogger.Logger) *usecase.ScreenUseCase {
	return usecase.NewScreenUseCase(analyze, publisher, cfg.Analysis.Concurrency, log)
}

func ProvideBacktestUseCase(
	cfg *config.Config,
	history *usecase.HistoryUseCase,
	book *profiles.Book,
	analyzer domsvc.Analyzer,
	store domrepo.BacktestStore,
	q queue.Publisher,
	m domrepo.Metrics,
	log *applogger.Logger,
) *usecase.BacktestUseCase {
	sim := backtest.NewSimulator(analyzer, log)
	return usecase.NewBacktestUseCase(history, book, sim, store, q, m, cfg.Backtest.Timeout, log)
}

func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)
}

func ProvideHTTPHandler(cfg *config.Config, svc *Services, book *profiles.Book, limiter *ratelimit.Limiter) xhttp.Handler {
	return xhttp.Handlers{
		api.NewAnalysisEchoHandler(svc.Log, svc.Analyze, svc.Screen, book),
		api.NewBacktestEchoHandler(svc.Log, svc.Backtest, limiter, cfg.Backtest.DefaultLookback),
	}
}

func ProvideHTTPServer(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, ch *pkgch.Client, rc *pkgcache.RedisCache) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	health := func(ctx context.Context) error {
		if ch != nil {
			if err := ch.Health(ctx); err != nil {
				return fmt.Errorf("clickhouse: %w", err)
			}
		}
		if rc != nil {
			if err := rc.Client().Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}
	return xhttp.NewServer(log, handler,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithHealthCheck(health),
	)
}

// ProvideKafkaConsumer subscribes the scan handler. It returns nil when
// Kafka is disabled.
func ProvideKafkaConsumer(cfg *config.Config, log *applogger.Logger, screen *usecase.ScreenUseCase, m domrepo.Metrics) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	c := cfg.Kafka.Consumer
	consumer, err := pkgkafka.NewConsumer(log,
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(c.GroupID),
		pkgkafka.WithConsumerWorkers(c.Workers),
		pkgkafka.WithConsumerBufferSize(c.BufferSize),
		pkgkafka.WithConsumerRetry(c.RetryMax, c.BackoffMin, c.BackoffMax),
		pkgkafka.WithConsumerDLQ(c.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.RegisterHandler(usecase.NewScanHandler(cfg.Kafka.Topics.ScanRequests, screen, cfg.Analysis.DefaultCapital, m, log))
	return consumer, nil
}

func ProvideApp(cfg *config.Config, log *applogger.Logger, srv *xhttp.Server, consumer *pkgkafka.Consumer, q *queue.RedisQueue, backtests *usecase.BacktestUseCase) *server.App {
	opts := []server.Option{server.WithShutdownTimeout(cfg.Server.ShutdownTimeout)}
	if q != nil {
		q.RegisterJob(usecase.NewBacktestJob(backtests))
		opts = append(opts, server.WithService(server.Service{Name: "backtest-queue", Start: q.Start, Stop: q.Stop}))
	}
	if consumer != nil {
		opts = append(opts, server.WithService(server.Service{Name: "scan-consumer", Start: consumer.Start, Stop: consumer.Stop}))
	}
	return server.New(log, srv, opts...)
}
