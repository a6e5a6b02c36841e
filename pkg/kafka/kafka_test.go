package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogger "SwingSignal/pkg/logger"
)

func TestBackoffWithJitterStaysInRange(t *testing.T) {
	min, max := 100*time.Millisecond, time.Second
	for attempt := 1; attempt <= 40; attempt++ {
		d := backoffWithJitter(min, max, attempt)
		assert.Greater(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, max)
	}
	first := backoffWithJitter(min, max, 1)
	assert.GreaterOrEqual(t, first, min/2)
	assert.LessOrEqual(t, first, min)
}

func TestEncodeValue(t *testing.T) {
	b, err := encodeValue([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, "raw", string(b))

	b, err = encodeValue(map[string]int{"n": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(b))
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Gzip, parseCompression("gzip"))
	assert.Equal(t, kafka.Zstd, parseCompression("zstd"))
	assert.Equal(t, kafka.Snappy, parseCompression(""))
}

func TestConstructorsRequireBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)

	_, err = NewConsumer(applogger.Nop())
	assert.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}))
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

type panicky struct{}

func (panicky) Topic() string { return "t" }

func (panicky) Handle(_ context.Context, _ []byte) error { panic("boom") }

func TestSafeHandleRecoversPanics(t *testing.T) {
	err := safeHandle(panicky{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
