package queue

import (
	"context"
	"encoding/json"
	"time"
)

// Publisher enqueues messages for asynchronous jobs.
type Publisher interface {
	Enqueue(ctx context.Context, msgType string, payload interface{}) (string, error)
}

// Config tunes the consumer side of a queue.
type Config struct {
	Workers     int
	RetryLimit  int
	RetryDelay  time.Duration
	PollTimeout time.Duration
}

// Message is the envelope stored in Redis.
type Message struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}
