package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingSignal/pkg/logger"
)

type runPayload struct {
	RunID  string `json:"run_id"`
	Symbol string `json:"symbol"`
}

type recordingJob struct {
	got []runPayload
}

func (j *recordingJob) Name() string { return "recording" }
func (j *recordingJob) Type() string { return "backtest.run" }

func (j *recordingJob) Handle(_ context.Context, payload json.RawMessage) error {
	p, err := Decode[runPayload](payload)
	if err != nil {
		return err
	}
	j.got = append(j.got, *p)
	return nil
}

func TestNewMessageEnvelope(t *testing.T) {
	q := NewRedisQueue(logger.Nop(), Config{}, nil)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return fixed }

	msg, err := q.newMessage("backtest.run", runPayload{RunID: "r1", Symbol: "AAPL"})
	require.NoError(t, err)

	_, err = uuid.Parse(msg.ID)
	assert.NoError(t, err)
	assert.Equal(t, "backtest.run", msg.Type)
	assert.Equal(t, fixed, msg.EnqueuedAt)
	assert.JSONEq(t, `{"run_id":"r1","symbol":"AAPL"}`, string(msg.Payload))
}

func TestProcessDispatchesByType(t *testing.T) {
	q := NewRedisQueue(logger.Nop(), Config{}, nil)
	job := &recordingJob{}
	q.RegisterJob(job)
	q.RegisterJob(&recordingJob{})

	msg, err := q.newMessage("backtest.run", runPayload{RunID: "r1", Symbol: "MSFT"})
	require.NoError(t, err)

	// round trip through the wire form
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	var decoded Message
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.NoError(t, q.process(decoded))
	require.Len(t, job.got, 1)
	assert.Equal(t, "MSFT", job.got[0].Symbol)

	assert.Error(t, q.process(Message{ID: "x", Type: "unknown"}))
}

func TestDecodeRejectsEmpty(t *testing.T) {
	_, err := Decode[runPayload](nil)
	assert.Error(t, err)
	_, err = Decode[runPayload](json.RawMessage(`{"run_id":`))
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	q := NewRedisQueue(logger.Nop(), Config{}, nil, WithKeyPrefix("test:q"))
	assert.Equal(t, "test:q:messages", q.queueKey())
	assert.Equal(t, "test:q:retry", q.retryKey())
	assert.Equal(t, "test:q:dlq", q.deadLetterKey())
}

func TestPermanent(t *testing.T) {
	assert.NoError(t, Permanent(nil))

	cause := errors.New("bad symbol")
	err := Permanent(cause)
	assert.ErrorIs(t, err, ErrPermanent)
	assert.ErrorIs(t, err, cause)
}
