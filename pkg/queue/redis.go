package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"SwingSignal/pkg/logger"
)

// RedisQueue is a list-backed job queue with a sorted-set retry schedule
// and a dead letter list.
type RedisQueue struct {
	log       *logger.Logger
	cfg       Config
	client    *redis.Client
	keyPrefix string
	now       func() time.Time

	mu      sync.RWMutex
	jobs    map[string]Job
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

var _ Publisher = (*RedisQueue)(nil)

// RedisQueueOption configures RedisQueue.
type RedisQueueOption func(*RedisQueue)

// WithKeyPrefix sets the Redis key namespace.
func WithKeyPrefix(prefix string) RedisQueueOption {
	return func(r *RedisQueue) { r.keyPrefix = prefix }
}

// NewRedisQueue creates a queue. Workers only start when jobs are registered.
func NewRedisQueue(lgr *logger.Logger, cfg Config, client *redis.Client, opts ...RedisQueueOption) *RedisQueue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 10 * time.Second
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 2 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &RedisQueue{
		log:       lgr,
		cfg:       cfg,
		client:    client,
		keyPrefix: "swingsignal:queue",
		now:       time.Now,
		jobs:      make(map[string]Job),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterJob routes msgs of job.Type() to job. Duplicates are ignored.
func (r *RedisQueue) RegisterJob(job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.Type()]; exists {
		r.log.Warn("job already registered", logger.String("job", job.Name()))
		return
	}
	r.jobs[job.Type()] = job
	r.log.Info("job registered", logger.String("job", job.Name()), logger.String("type", job.Type()))
}

// Start pings Redis and launches workers and the retry mover.
func (r *RedisQueue) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return fmt.Errorf("queue already running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	r.running = true

	if len(r.jobs) == 0 {
		r.log.Info("redis queue started in publish mode")
		return nil
	}

	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.wg.Add(1)
	go r.retryLoop()

	r.log.Info("redis queue started",
		logger.Int("workers", r.cfg.Workers),
		logger.Int("jobs", len(r.jobs)),
	)
	return nil
}

// Stop cancels workers and waits for in-flight jobs up to ctx.
func (r *RedisQueue) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	r.cancel()
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("queue stop: %w", ctx.Err())
	case <-done:
		r.log.Info("redis queue stopped")
		return nil
	}
}

// Enqueue pushes a message and returns its id.
func (r *RedisQueue) Enqueue(ctx context.Context, msgType string, payload interface{}) (string, error) {
	msg, err := r.newMessage(msgType, payload)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal message: %w", err)
	}
	if err := r.client.LPush(ctx, r.queueKey(), data).Err(); err != nil {
		return "", fmt.Errorf("lpush: %w", err)
	}
	return msg.ID, nil
}

func (r *RedisQueue) newMessage(msgType string, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Message{
		ID:         uuid.NewString(),
		Type:       msgType,
		Payload:    raw,
		EnqueuedAt: r.now().UTC(),
	}, nil
}

func (r *RedisQueue) worker(id int) {
	defer r.wg.Done()
	for r.ctx.Err() == nil {
		res, err := r.client.BRPop(r.ctx, r.cfg.PollTimeout, r.queueKey()).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || r.ctx.Err() != nil {
				continue
			}
			r.log.Error("brpop", logger.Int("worker_id", id), logger.Error(err))
			select {
			case <-time.After(time.Second):
			case <-r.ctx.Done():
			}
			continue
		}
		if len(res) < 2 {
			continue
		}

		var msg Message
		if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
			r.log.Error("unmarshal queue message", logger.Error(err))
			continue
		}
		r.process(msg)
	}
}

// process runs the job; it returns the handler error after scheduling any retry.
func (r *RedisQueue) process(msg Message) error {
	r.mu.RLock()
	job, ok := r.jobs[msg.Type]
	r.mu.RUnlock()
	if !ok {
		r.log.Error("no job for message", logger.String("type", msg.Type), logger.String("id", msg.ID))
		return fmt.Errorf("no job registered for type %q", msg.Type)
	}

	start := r.now()
	err := job.Handle(r.ctx, msg.Payload)
	if err == nil {
		r.log.Debug("job done",
			logger.String("job", job.Name()),
			logger.String("id", msg.ID),
			logger.Duration("elapsed", r.now().Sub(start)),
		)
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	r.log.Error("job failed",
		logger.String("job", job.Name()),
		logger.String("id", msg.ID),
		logger.Int("attempt", msg.Attempts+1),
		logger.Error(err),
	)
	if msg.Attempts < r.cfg.RetryLimit && !errors.Is(err, ErrPermanent) {
		msg.Attempts++
		r.schedule(msg, r.now().Add(r.cfg.RetryDelay))
	} else {
		r.deadLetter(msg)
	}
	return err
}

func (r *RedisQueue) schedule(msg Message, at time.Time) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("marshal retry", logger.Error(err))
		return
	}
	if err := r.client.ZAdd(context.Background(), r.retryKey(), redis.Z{Score: float64(at.Unix()), Member: data}).Err(); err != nil {
		r.log.Error("zadd retry", logger.Error(err))
	}
}

func (r *RedisQueue) deadLetter(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("marshal dlq", logger.Error(err))
		return
	}
	if err := r.client.LPush(context.Background(), r.deadLetterKey(), data).Err(); err != nil {
		r.log.Error("lpush dlq", logger.Error(err))
	}
}

func (r *RedisQueue) retryLoop() {
	defer r.wg.Done()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.moveDue()
		}
	}
}

// moveDue moves retry entries whose time has come back onto the main list.
func (r *RedisQueue) moveDue() {
	due, err := r.client.ZRangeByScore(r.ctx, r.retryKey(), &redis.ZRangeBy{
		Min: "0",
		Max: strconv.FormatInt(r.now().Unix(), 10),
	}).Result()
	if err != nil {
		if r.ctx.Err() == nil {
			r.log.Error("fetch retries", logger.Error(err))
		}
		return
	}

	for _, member := range due {
		pipe := r.client.TxPipeline()
		pipe.ZRem(r.ctx, r.retryKey(), member)
		pipe.LPush(r.ctx, r.queueKey(), member)
		if _, err := pipe.Exec(r.ctx); err != nil {
			if r.ctx.Err() != nil {
				return
			}
			r.log.Error("requeue retry", logger.Error(err))
		}
	}
}

func (r *RedisQueue) queueKey() string      { return r.keyPrefix + ":messages" }
func (r *RedisQueue) retryKey() string      { return r.keyPrefix + ":retry" }
func (r *RedisQueue) deadLetterKey() string { return r.keyPrefix + ":dlq" }
