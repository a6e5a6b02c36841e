package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"

	applogger "SwingSignal/pkg/logger"
)

// MessageHandler handles messages from a specific topic.
type MessageHandler interface {
	Topic() string
	Handle(context.Context, []byte) error
}

// Consumer reads registered topics in a consumer group and fans messages out
// to a worker pool. Offsets are committed after success or after a DLQ write.
type Consumer struct {
	cfg      *ConsumerConfig
	log      *applogger.Logger
	readers  map[string]*kafka.Reader
	handlers map[string]MessageHandler
	dlq      *kafka.Writer

	msgs     chan kafka.Message
	stop     chan struct{}
	readWG   sync.WaitGroup
	workWG   sync.WaitGroup
	stopOnce sync.Once

	lockMu    sync.Mutex
	partLocks map[string]*sync.Mutex
}

// NewConsumer creates a consumer. Handlers must be registered before Start.
func NewConsumer(log *applogger.Logger, opts ...ConsumerOption) (*Consumer, error) {
	cfg := &ConsumerConfig{
		GroupID:     "swingsignal",
		WorkerCount: 1,
		BufferSize:  16,
		RetryMax:    3,
		BackoffMin:  100 * time.Millisecond,
		BackoffMax:  5 * time.Second,
		MinBytes:    1,
		MaxBytes:    10e6,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer: brokers are required")
	}

	c := &Consumer{
		cfg:       cfg,
		log:       log,
		readers:   make(map[string]*kafka.Reader),
		handlers:  make(map[string]MessageHandler),
		msgs:      make(chan kafka.Message, cfg.BufferSize),
		stop:      make(chan struct{}),
		partLocks: make(map[string]*sync.Mutex),
	}
	if cfg.DLQTopic != "" {
		c.dlq = &kafka.Writer{Addr: kafka.TCP(cfg.Brokers...), Balancer: &kafka.LeastBytes{}}
	}

	initConsumerMetrics()
	return c, nil
}

// RegisterHandler registers h for its topic. A second handler for the same
// topic is ignored.
func (c *Consumer) RegisterHandler(h MessageHandler) {
	topic := h.Topic()
	if _, ok := c.handlers[topic]; ok {
		c.log.Warn("kafka handler already registered", applogger.String("topic", topic))
		return
	}
	c.handlers[topic] = h
}

// Start launches one reader per topic and the worker pool.
func (c *Consumer) Start() error {
	if len(c.handlers) == 0 {
		return errors.New("kafka consumer: no handlers registered")
	}

	for topic := range c.handlers {
		c.readers[topic] = kafka.NewReader(kafka.ReaderConfig{
			Brokers:  c.cfg.Brokers,
			Topic:    topic,
			GroupID:  c.cfg.GroupID,
			MinBytes: c.cfg.MinBytes,
			MaxBytes: c.cfg.MaxBytes,
		})
	}

	for i := 0; i < c.cfg.WorkerCount; i++ {
		c.workWG.Add(1)
		go c.worker()
	}
	for topic, reader := range c.readers {
		c.readWG.Add(1)
		go c.read(topic, reader)
	}

	c.log.Info("kafka consumer started",
		applogger.String("group", c.cfg.GroupID),
		applogger.Int("topics", len(c.readers)),
		applogger.Int("workers", c.cfg.WorkerCount),
	)
	return nil
}

// Stop stops reading, drains in-flight messages and closes readers.
func (c *Consumer) Stop(ctx context.Context) error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stop)

		done := make(chan struct{})
		go func() {
			c.readWG.Wait()
			close(c.msgs)
			c.workWG.Wait()
			close(done)
		}()

		select {
		case <-ctx.Done():
			err = fmt.Errorf("kafka consumer stop: %w", ctx.Err())
		case <-done:
		}

		for topic, r := range c.readers {
			if cerr := r.Close(); cerr != nil {
				c.log.Error("close kafka reader", applogger.String("topic", topic), applogger.Error(cerr))
			}
		}
		if c.dlq != nil {
			if cerr := c.dlq.Close(); cerr != nil {
				c.log.Error("close dlq writer", applogger.Error(cerr))
			}
		}
		c.log.Info("kafka consumer stopped")
	})
	return err
}

func (c *Consumer) read(topic string, reader *kafka.Reader) {
	defer c.readWG.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-c.stop
		cancel()
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.Error("kafka fetch", applogger.String("topic", topic), applogger.Error(err))
			select {
			case <-time.After(time.Second):
				continue
			case <-c.stop:
				return
			}
		}

		select {
		case c.msgs <- msg:
			consumerQueueDepth.WithLabelValues(topic).Set(float64(len(c.msgs)))
		case <-c.stop:
			return
		}
	}
}

func (c *Consumer) worker() {
	defer c.workWG.Done()
	for msg := range c.msgs {
		c.process(msg)
	}
}

func (c *Consumer) process(msg kafka.Message) {
	h, ok := c.handlers[msg.Topic]
	if !ok {
		return
	}
	start := time.Now()

	// one in-flight message per partition keeps per-key order
	pl := c.partitionLock(msg.Topic, msg.Partition)
	pl.Lock()
	defer pl.Unlock()

	err := c.handleWithRetry(h, msg)
	result := "ok"
	if err != nil {
		result = "error"
		c.log.Error("kafka handler failed",
			applogger.String("topic", msg.Topic),
			applogger.Int64("offset", msg.Offset),
			applogger.Error(err),
		)
		if c.dlq != nil {
			if derr := c.writeDLQ(msg, err); derr != nil {
				c.log.Error("dlq write", applogger.String("topic", c.cfg.DLQTopic), applogger.Error(derr))
			} else {
				result = "dlq"
			}
		}
	}

	if err == nil || result == "dlq" {
		if r := c.readers[msg.Topic]; r != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if cerr := r.CommitMessages(ctx, msg); cerr != nil {
				c.log.Error("kafka commit", applogger.String("topic", msg.Topic), applogger.Error(cerr))
			}
			cancel()
		}
	}

	consumerMessages.WithLabelValues(msg.Topic, result).Inc()
	consumerLatency.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())
}

func (c *Consumer) handleWithRetry(h MessageHandler, msg kafka.Message) (err error) {
	for attempt := 1; ; attempt++ {
		err = safeHandle(h, msg.Value)
		if err == nil || attempt > c.cfg.RetryMax {
			return err
		}
		select {
		case <-time.After(backoffWithJitter(c.cfg.BackoffMin, c.cfg.BackoffMax, attempt)):
		case <-c.stop:
			return err
		}
	}
}

func safeHandle(h MessageHandler, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Handle(context.Background(), data)
}

func (c *Consumer) writeDLQ(msg kafka.Message, cause error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.dlq.WriteMessages(ctx, kafka.Message{
		Topic: c.cfg.DLQTopic,
		Key:   msg.Key,
		Value: msg.Value,
		Headers: []kafka.Header{
			{Key: "source_topic", Value: []byte(msg.Topic)},
			{Key: "error", Value: []byte(cause.Error())},
		},
	})
}

func (c *Consumer) partitionLock(topic string, partition int) *sync.Mutex {
	key := fmt.Sprintf("%s/%d", topic, partition)
	c.lockMu.Lock()
	defer c.lockMu.Unlock()
	l, ok := c.partLocks[key]
	if !ok {
		l = &sync.Mutex{}
		c.partLocks[key] = l
	}
	return l
}

// backoffWithJitter doubles from min per attempt, caps at max and removes up to half as jitter.
func backoffWithJitter(min, max time.Duration, attempt int) time.Duration {
	if min <= 0 {
		min = 50 * time.Millisecond
	}
	if max < min {
		max = min
	}
	if attempt < 1 {
		attempt = 1
	}
	exp := max
	if attempt <= 30 {
		if d := min << uint(attempt-1); d > 0 && d < max {
			exp = d
		}
	}
	half := int64(exp) / 2
	if half <= 0 {
		return exp
	}
	return exp - time.Duration(rand.Int63n(half))
}

var (
	consumerQueueDepth *prometheus.GaugeVec
	consumerMessages   *prometheus.CounterVec
	consumerLatency    *prometheus.HistogramVec
	consumerOnce       sync.Once
)

func initConsumerMetrics() {
	consumerOnce.Do(func() {
		consumerQueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "swingsignal_kafka_consumer_queue_depth",
			Help: "Messages waiting for a worker",
		}, []string{"topic"})
		consumerMessages = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swingsignal_kafka_consumer_messages_total",
			Help: "Messages handled by outcome",
		}, []string{"topic", "result"})
		consumerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swingsignal_kafka_consumer_handle_seconds",
			Help:    "Handling time per message",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic"})
	})
}
