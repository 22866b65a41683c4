package main

import (
	"context"
	"time"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
)

// Outcome labels of worker_messages_total.
const (
	resultProcessed = "processed"
	resultInvalid   = "invalid"
	resultFailed    = "failed"
)

type messageRecorder interface {
	RecordWorkerMessage(result string)
}

type nopRecorder struct{}

func (nopRecorder) RecordWorkerMessage(string) {}

// newRequestHandler runs one queued analysis per record. Undecodable records
// are dropped; a failed analysis is returned so the consumer retries and
// finally dead-letters it.
func newRequestHandler(svc analysis.Service, timeout time.Duration, metrics messageRecorder, logger logging.Logger) kafka.MessageHandler {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return func(ctx context.Context, msg *kafka.Message) error {
		req, err := kafka.DecodeRequest(msg)
		if err != nil {
			metrics.RecordWorkerMessage(resultInvalid)
			logger.Warn("dropping undecodable analysis request",
				logging.String("topic", msg.Topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			return nil
		}

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		if err := svc.Process(ctx, req); err != nil {
			metrics.RecordWorkerMessage(resultFailed)
			logger.Warn("analysis request failed",
				logging.String(logging.FieldPDBID, req.PDBID),
				logging.String(logging.FieldRequestID, req.RequestID),
				logging.Err(err))
			return err
		}

		metrics.RecordWorkerMessage(resultProcessed)
		logger.Info("analysis request processed",
			logging.String(logging.FieldPDBID, req.PDBID),
			logging.String(logging.FieldMode, req.VizMode),
			logging.String(logging.FieldRequestID, req.RequestID),
			logging.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		return nil
	}
}

//Personal.AI order the ending
