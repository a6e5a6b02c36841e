package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPermanent marks a failure that a retry cannot fix. Such messages go
// straight to the dead letter list.
var ErrPermanent = errors.New("permanent job failure")

// Permanent wraps err with ErrPermanent.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// Job handles one message type.
type Job interface {
	// Name is used in logs.
	Name() string
	// Type is the message type routed to this job.
	Type() string
	Handle(ctx context.Context, payload json.RawMessage) error
}

// Decode unmarshals a job payload into T.
func Decode[T any](payload json.RawMessage) (*T, error) {
	var out T
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &out, nil
}
