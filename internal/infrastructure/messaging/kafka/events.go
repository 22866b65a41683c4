package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ProteinScope/internal/config"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

// Event types carried in the envelope and the event_type header.
const (
	EventAnalysisRequested = "analysis.requested"
	EventAnalysisCompleted = "analysis.completed"

	sourceService = "proteinscope"
	schemaVersion = "v1"
)

// EventEnvelope wraps every payload written by this package.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	TraceID       string            `json:"trace_id,omitempty"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NewEventEnvelope marshals payload into a fresh envelope.
func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: schemaVersion,
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the payload into target. An absent payload is an
// error.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return errors.New(errors.ErrCodeSerialization, "envelope has no payload")
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal payload")
	}
	return nil
}

// ToMessage renders the envelope as a record for topic.
func (e *EventEnvelope) ToMessage(topic string, key []byte) (*ProducerMessage, error) {
	val, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal envelope")
	}
	headers := map[string]string{
		"event_type":     e.EventType,
		"source_service": e.Source,
		"schema_version": e.SchemaVersion,
	}
	if e.TraceID != "" {
		headers["trace_id"] = e.TraceID
	}
	return &ProducerMessage{
		Topic:     topic,
		Key:       key,
		Value:     val,
		Headers:   headers,
		Timestamp: e.Timestamp,
	}, nil
}

// MessageToEventEnvelope parses a consumed record.
func MessageToEventEnvelope(msg *Message) (*EventEnvelope, error) {
	if len(msg.Value) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "empty message value")
	}
	var env EventEnvelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to unmarshal envelope")
	}
	return &env, nil
}

// DecodeRequest extracts an analysis request from a consumed record.
func DecodeRequest(msg *Message) (types.RequestedMessage, error) {
	var req types.RequestedMessage
	env, err := MessageToEventEnvelope(msg)
	if err != nil {
		return req, err
	}
	if env.EventType != EventAnalysisRequested {
		return req, errors.Newf(errors.ErrCodeValidation, "unexpected event type %q", env.EventType)
	}
	if err := env.DecodePayload(&req); err != nil {
		return req, err
	}
	if req.PDBID == "" {
		return req, errors.New(errors.ErrCodeValidation, "request carries no pdb_id")
	}
	return req, nil
}

// MessagePublisher is the subset of Producer used by AnalysisPublisher.
type MessagePublisher interface {
	Publish(ctx context.Context, msg *ProducerMessage) error
	PublishBatch(ctx context.Context, msgs []*ProducerMessage) (*BatchPublishResult, error)
}

// AnalysisPublisher writes analysis requests and completion events. Records
// are keyed by PDB id so every analysis of one structure lands on the same
// partition.
type AnalysisPublisher struct {
	producer       MessagePublisher
	requestTopic   string
	completedTopic string
	logger         logging.Logger
}

// NewAnalysisPublisher binds producer to the topics named in cfg.
func NewAnalysisPublisher(producer MessagePublisher, cfg config.KafkaConfig, logger logging.Logger) *AnalysisPublisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalysisPublisher{
		producer:       producer,
		requestTopic:   cfg.RequestTopic,
		completedTopic: cfg.CompletedTopic,
		logger:         logger,
	}
}

// PublishCompleted writes ev to the completion topic.
func (p *AnalysisPublisher) PublishCompleted(ctx context.Context, ev *types.CompletedEvent) error {
	env, err := NewEventEnvelope(EventAnalysisCompleted, sourceService, ev)
	if err != nil {
		return err
	}
	env.TraceID = ev.RequestID
	msg, err := env.ToMessage(p.completedTopic, []byte(ev.PDBID))
	if err != nil {
		return err
	}
	if err := p.producer.Publish(ctx, msg); err != nil {
		return errors.Wrap(err, errors.ErrCodeMessagingError, "failed to publish completion event")
	}
	return nil
}

// PublishRequests writes msgs to the request topic in one batch. Any failed
// record fails the call.
func (p *AnalysisPublisher) PublishRequests(ctx context.Context, msgs []types.RequestedMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	records := make([]*ProducerMessage, 0, len(msgs))
	for i := range msgs {
		env, err := NewEventEnvelope(EventAnalysisRequested, sourceService, msgs[i])
		if err != nil {
			return err
		}
		env.TraceID = msgs[i].RequestID
		rec, err := env.ToMessage(p.requestTopic, []byte(msgs[i].PDBID))
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	result, err := p.producer.PublishBatch(ctx, records)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeMessagingError, "failed to publish analysis requests")
	}
	if result.Failed > 0 {
		p.logger.Error("analysis requests partially published",
			logging.Int("succeeded", result.Succeeded),
			logging.Int("failed", result.Failed))
		appErr := errors.New(errors.ErrCodeMessagingError,
			fmt.Sprintf("%d of %d analysis requests not published", result.Failed, len(msgs)))
		if len(result.Errors) > 0 && result.Errors[0].Error != nil {
			return appErr.WithCause(result.Errors[0].Error)
		}
		return appErr
	}
	return nil
}

//Personal.AI order the ending
