package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration loaded from YAML.
type Config struct {
	Environment  string     `yaml:"environment" default:"development"`
	Server       Server     `yaml:"server"`
	Log          Log        `yaml:"log"`
	Metrics      Metrics    `yaml:"metrics"`
	ClickHouse   ClickHouse `yaml:"clickhouse"`
	Redis        Redis      `yaml:"redis"`
	Kafka        Kafka      `yaml:"kafka"`
	Finnhub      Finnhub    `yaml:"finnhub"`
	History      History    `yaml:"history"`
	Analysis     Analysis   `yaml:"analysis"`
	Backtest     Backtest   `yaml:"backtest"`
	RateLimit    RateLimit  `yaml:"ratelimit"`
	Queue        Queue      `yaml:"queue"`
	StrategyFile string     `yaml:"strategy_file"`
}

type Server struct {
	Port            int           `yaml:"port" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors" default:"true"`
}

type Log struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"`
	Output string `yaml:"output" default:"stdout"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

type ClickHouse struct {
	Enabled      bool          `yaml:"enabled" default:"true"`
	Host         string        `yaml:"host" default:"localhost"`
	Port         int           `yaml:"port" default:"9000"`
	Database     string        `yaml:"database" default:"swingsignal"`
	User         string        `yaml:"user" default:"default"`
	Password     string        `yaml:"password"`
	UseHTTP      bool          `yaml:"use_http"`
	DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
	MaxExecTime  time.Duration `yaml:"max_execution_time" default:"60s"`
	InitSchema   bool          `yaml:"init_schema" default:"true"`
	// AsyncInsert batches bar writes server side; WaitAsync makes inserts
	// return only once flushed.
	AsyncInsert bool `yaml:"async_insert"`
	WaitAsync   bool `yaml:"wait_for_async_insert" default:"true"`
}

type Redis struct {
	Enabled  bool   `yaml:"enabled" default:"true"`
	Addr     string `yaml:"addr" default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size" default:"10"`
	Prefix   string `yaml:"prefix" default:"swingsignal"`
}

type Kafka struct {
	Enabled  bool          `yaml:"enabled"`
	Brokers  []string      `yaml:"brokers" default:"[\"localhost:9092\"]"`
	Topics   KafkaTopics   `yaml:"topics"`
	Producer KafkaProducer `yaml:"producer"`
	Consumer KafkaConsumer `yaml:"consumer"`
}

type KafkaTopics struct {
	Signals      string `yaml:"signals" default:"swingsignal.signals"`
	ScanRequests string `yaml:"scan_requests" default:"swingsignal.scan-requests"`
}

type KafkaProducer struct {
	RequiredAcks int           `yaml:"required_acks" default:"-1"`
	Compression  string        `yaml:"compression" default:"snappy"`
	MaxAttempts  int           `yaml:"max_attempts" default:"5"`
	BatchSize    int           `yaml:"batch_size" default:"100"`
	BatchTimeout time.Duration `yaml:"batch_timeout" default:"50ms"`
}

type KafkaConsumer struct {
	GroupID    string        `yaml:"group_id" default:"swingsignal-scanner"`
	Workers    int           `yaml:"workers" default:"2"`
	BufferSize int           `yaml:"buffer_size" default:"64"`
	RetryMax   int           `yaml:"retry_max" default:"3"`
	BackoffMin time.Duration `yaml:"backoff_min" default:"200ms"`
	BackoffMax time.Duration `yaml:"backoff_max" default:"5s"`
	DLQTopic   string        `yaml:"dlq_topic" default:"swingsignal.scan-requests.dlq"`
}

type Finnhub struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url" default:"https://finnhub.io/api/v1"`
	Timeout        time.Duration `yaml:"timeout" default:"10s"`
	Symbols        []string      `yaml:"symbols"`
	BreakerTimeout time.Duration `yaml:"breaker_timeout" default:"30s"`
	BreakerFails   uint32        `yaml:"breaker_failures" default:"5"`
}

// History controls how much daily history is loaded per analysis.
type History struct {
	LookbackDays int  `yaml:"lookback_days" default:"365"`
	WriteThrough bool `yaml:"write_through" default:"true"`
}

type Analysis struct {
	CacheTTL       time.Duration `yaml:"cache_ttl" default:"15m"`
	MemoryTTL      time.Duration `yaml:"memory_ttl" default:"1m"`
	MemorySize     int           `yaml:"memory_size" default:"10000"`
	MemoryCleanup  time.Duration `yaml:"memory_cleanup" default:"1m"`
	DefaultCapital float64       `yaml:"default_capital" default:"100000"`
	Concurrency    int           `yaml:"concurrency" default:"4"`
}

type Backtest struct {
	DefaultCapital  float64       `yaml:"default_capital" default:"100000"`
	DefaultLookback int           `yaml:"default_lookback_days" default:"365"`
	Timeout         time.Duration `yaml:"timeout" default:"2m"`
}

// RateLimit throttles backtest endpoints per client.
type RateLimit struct {
	RequestsPerSecond float64       `yaml:"rps" default:"0.5"`
	Burst             int           `yaml:"burst" default:"3"`
	IdleTTL           time.Duration `yaml:"idle_ttl" default:"10m"`
}

type Queue struct {
	Name        string        `yaml:"name" default:"backtests"`
	Workers     int           `yaml:"workers" default:"2"`
	MaxRetries  int           `yaml:"max_retries" default:"2"`
	PollTimeout time.Duration `yaml:"poll_timeout" default:"2s"`
}

// Load reads a YAML file over the tag defaults and validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Parse decodes raw YAML over the tag defaults without validating.
func Parse(raw []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides it with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, err
	}
	c.applyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("SWINGSIGNAL_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := getenv("SWINGSIGNAL_SYMBOLS"); v != "" {
		c.Finnhub.Symbols = splitList(v)
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Environment == "" {
		errs = append(errs, errors.New("environment is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format))
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		errs = append(errs, errors.New("clickhouse.host is required when clickhouse is enabled"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			errs = append(errs, errors.New("kafka.brokers cannot be empty when kafka is enabled"))
		}
		if c.Kafka.Topics.Signals == "" || c.Kafka.Topics.ScanRequests == "" {
			errs = append(errs, errors.New("kafka.topics.signals and kafka.topics.scan_requests are required"))
		}
	}
	if c.Finnhub.BaseURL == "" {
		errs = append(errs, errors.New("finnhub.base_url is required"))
	}
	if c.History.LookbackDays < 90 {
		errs = append(errs, fmt.Errorf("history.lookback_days must be at least 90, got %d", c.History.LookbackDays))
	}
	if c.Analysis.DefaultCapital <= 0 || c.Backtest.DefaultCapital <= 0 {
		errs = append(errs, errors.New("analysis.default_capital and backtest.default_capital must be positive"))
	}
	if c.Analysis.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("analysis.concurrency must be positive, got %d", c.Analysis.Concurrency))
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("ratelimit.rps and ratelimit.burst must be positive"))
	}
	if c.Queue.Workers <= 0 {
		errs = append(errs, fmt.Errorf("queue.workers must be positive, got %d", c.Queue.Workers))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the environment is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
