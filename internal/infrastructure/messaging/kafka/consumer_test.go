package kafka

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
)

type mockKafkaReader struct {
	fetchFunc  func(ctx context.Context) (kafka.Message, error)
	commitFunc func(ctx context.Context, msgs ...kafka.Message) error
	closeFunc  func() error
}

func (m *mockKafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (m *mockKafkaReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.commitFunc != nil {
		return m.commitFunc(ctx, msgs...)
	}
	return nil
}

func (m *mockKafkaReader) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockKafkaReader) Stats() kafka.ReaderStats { return kafka.ReaderStats{} }

// onceReader yields msg once, then blocks until the context ends.
func onceReader(msg kafka.Message, commits chan<- kafka.Message) *mockKafkaReader {
	var served atomic.Bool
	return &mockKafkaReader{
		fetchFunc: func(ctx context.Context) (kafka.Message, error) {
			if served.Swap(true) {
				<-ctx.Done()
				return kafka.Message{}, ctx.Err()
			}
			return msg, nil
		},
		commitFunc: func(ctx context.Context, msgs ...kafka.Message) error {
			for _, m := range msgs {
				commits <- m
			}
			return nil
		},
	}
}

type recordingDeadLetter struct {
	mu   sync.Mutex
	msgs []*ProducerMessage
	err  error
}

func (r *recordingDeadLetter) Publish(_ context.Context, msg *ProducerMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.err
}

func (r *recordingDeadLetter) Close() error { return nil }

func newTestConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers: []string{"localhost:9092"},
		GroupID: "test-group",
		Topics:  []string{"requests"},
		RetryConfig: RetryConfig{
			MaxRetries:      1,
			RetryBackoff:    time.Millisecond,
			DeadLetterTopic: "requests.dlq",
		},
	}
}

func TestValidateConsumerConfig(t *testing.T) {
	assert.NoError(t, ValidateConsumerConfig(newTestConsumerConfig()))

	cases := map[string]func(*ConsumerConfig){
		"no brokers":  func(c *ConsumerConfig) { c.Brokers = nil },
		"no group":    func(c *ConsumerConfig) { c.GroupID = "" },
		"no topics":   func(c *ConsumerConfig) { c.Topics = nil },
		"bad reset":   func(c *ConsumerConfig) { c.AutoOffsetReset = "middle" },
		"neg retries": func(c *ConsumerConfig) { c.RetryConfig.MaxRetries = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := newTestConsumerConfig()
			mutate(&cfg)
			assert.Error(t, ValidateConsumerConfig(cfg))
		})
	}
}

func TestConsumerConfigFrom(t *testing.T) {
	kc := config.NewDefaultConfig().Kafka
	cfg := ConsumerConfigFrom(kc)
	assert.Equal(t, []string{kc.RequestTopic}, cfg.Topics)
	assert.Equal(t, kc.GroupID, cfg.GroupID)
	assert.Equal(t, kc.DeadLetterTopic, cfg.RetryConfig.DeadLetterTopic)
	assert.Equal(t, kc.MaxRetries, cfg.RetryConfig.MaxRetries)
}

func TestStart_AlreadyRunning(t *testing.T) {
	c := NewConsumerWithReader(&mockKafkaReader{}, newTestConsumerConfig(), nil, logging.NewNopLogger())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()
	assert.Equal(t, ErrAlreadyRunning, c.Start(context.Background()))
}

func TestConsumeLoop_HandlesAndCommits(t *testing.T) {
	commits := make(chan kafka.Message, 1)
	reader := onceReader(kafka.Message{
		Topic:   "requests",
		Offset:  7,
		Value:   []byte("value"),
		Headers: []kafka.Header{{Key: "event_type", Value: []byte("analysis.requested")}},
	}, commits)

	c := NewConsumerWithReader(reader, newTestConsumerConfig(), nil, logging.NewNopLogger())

	got := make(chan *Message, 1)
	c.Subscribe("requests", func(ctx context.Context, msg *Message) error {
		got <- msg
		return nil
	})
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	select {
	case msg := <-got:
		assert.Equal(t, "value", string(msg.Value))
		assert.Equal(t, "analysis.requested", msg.Headers["event_type"])
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for handler")
	}
	select {
	case m := <-commits:
		assert.Equal(t, int64(7), m.Offset)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for commit")
	}
}

func TestConsumeLoop_UnknownTopicIsCommitted(t *testing.T) {
	commits := make(chan kafka.Message, 1)
	reader := onceReader(kafka.Message{Topic: "other", Value: []byte("x")}, commits)
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), nil, logging.NewNopLogger())
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	select {
	case m := <-commits:
		assert.Equal(t, "other", m.Topic)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for commit")
	}
}

func TestProcessMessage_RetrySuccess(t *testing.T) {
	cfg := newTestConsumerConfig()
	cfg.RetryConfig.MaxRetries = 2
	c := NewConsumerWithReader(&mockKafkaReader{}, cfg, nil, logging.NewNopLogger())

	attempts := 0
	handler := func(ctx context.Context, msg *Message) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	}

	assert.NoError(t, c.processMessage(context.Background(), &Message{}, handler))
	assert.Equal(t, 2, attempts)
	m := c.GetMetrics()
	assert.Equal(t, int64(1), m.MessagesRetried.Load())
}

func TestProcessMessage_ExhaustedGoesToDeadLetter(t *testing.T) {
	dl := &recordingDeadLetter{}
	c := NewConsumerWithReader(&mockKafkaReader{}, newTestConsumerConfig(), dl, logging.NewNopLogger())

	handler := func(ctx context.Context, msg *Message) error { return errors.New("broken") }
	msg := &Message{Topic: "requests", Key: []byte("1UBQ"), Value: []byte("v"), Headers: map[string]string{"event_type": "analysis.requested"}}

	err := c.processMessage(context.Background(), msg, handler)
	require.Error(t, err)

	require.Len(t, dl.msgs, 1)
	out := dl.msgs[0]
	assert.Equal(t, "requests.dlq", out.Topic)
	assert.Equal(t, "1UBQ", string(out.Key))
	assert.Equal(t, "requests", out.Headers["original_topic"])
	assert.Equal(t, "broken", out.Headers["error_message"])
	assert.NotContains(t, msg.Headers, "original_topic")
	m := c.GetMetrics()
	assert.Equal(t, int64(1), m.MessagesDeadLettered.Load())
}

func TestProcessMessage_CancelledDuringBackoff(t *testing.T) {
	cfg := newTestConsumerConfig()
	cfg.RetryConfig.RetryBackoff = time.Hour
	c := NewConsumerWithReader(&mockKafkaReader{}, cfg, nil, logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.processMessage(ctx, &Message{}, func(context.Context, *Message) error { return errors.New("x") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConsumerClose_Idempotent(t *testing.T) {
	closes := 0
	reader := &mockKafkaReader{closeFunc: func() error { closes++; return nil }}
	c := NewConsumerWithReader(reader, newTestConsumerConfig(), &recordingDeadLetter{}, logging.NewNopLogger())

	assert.NoError(t, c.Close())
	assert.Zero(t, closes)

	require.NoError(t, c.Start(context.Background()))
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
	assert.Equal(t, 1, closes)
}

//Personal.AI order the ending
