// Package kafka carries analysis requests to the worker and completion events
// to downstream consumers over segmentio/kafka-go.
package kafka

import (
	"context"
	"time"
)

// Message is a consumed record with its headers flattened into a map.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Timestamp time.Time
	Headers   map[string]string
}

// MessageHandler processes one consumed message. A non-nil error triggers
// the consumer's retry policy.
type MessageHandler func(ctx context.Context, msg *Message) error

// ProducerMessage is a record to be written.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Partition int
	Timestamp time.Time
}

// BatchItemError reports one failed record of a batch. Index is -1 when the
// whole write failed.
type BatchItemError struct {
	Index int
	Topic string
	Error error
}

// BatchPublishResult summarises a PublishBatch call.
type BatchPublishResult struct {
	Succeeded int
	Failed    int
	Errors    []BatchItemError
}

//Personal.AI order the ending
