// Package testutil holds fixtures and fakes shared by ProteinScope tests.
package testutil

import (
	"context"
	"sync"

	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
)

// Entry is one captured log line. Fields include those bound with With,
// WithContext and WithError ahead of the call-site fields.
type Entry struct {
	Logger  string
	Level   string
	Message string
	Fields  []logging.Field
}

// Field returns the value of the last field named key.
func (e Entry) Field(key string) (interface{}, bool) {
	for i := len(e.Fields) - 1; i >= 0; i-- {
		if e.Fields[i].Key == key {
			return e.Fields[i].Value, true
		}
	}
	return nil, false
}

type entryLog struct {
	mu      sync.Mutex
	entries []Entry
}

// RecordingLogger is a logging.Logger that keeps every entry in memory.
// Children created by With or Named write into the same log.
type RecordingLogger struct {
	log    *entryLog
	name   string
	fields []logging.Field
}

// NewRecordingLogger returns an empty recorder.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{log: &entryLog{}}
}

func (r *RecordingLogger) record(level, msg string, fields []logging.Field) {
	all := make([]logging.Field, 0, len(r.fields)+len(fields))
	all = append(all, r.fields...)
	all = append(all, fields...)

	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	r.log.entries = append(r.log.entries, Entry{Logger: r.name, Level: level, Message: msg, Fields: all})
}

func (r *RecordingLogger) Debug(msg string, fields ...logging.Field) { r.record("debug", msg, fields) }
func (r *RecordingLogger) Info(msg string, fields ...logging.Field)  { r.record("info", msg, fields) }
func (r *RecordingLogger) Warn(msg string, fields ...logging.Field)  { r.record("warn", msg, fields) }
func (r *RecordingLogger) Error(msg string, fields ...logging.Field) { r.record("error", msg, fields) }

// Fatal records the entry without exiting.
func (r *RecordingLogger) Fatal(msg string, fields ...logging.Field) { r.record("fatal", msg, fields) }

func (r *RecordingLogger) With(fields ...logging.Field) logging.Logger {
	child := *r
	child.fields = append(append([]logging.Field{}, r.fields...), fields...)
	return &child
}

func (r *RecordingLogger) Named(name string) logging.Logger {
	child := *r
	if r.name != "" {
		name = r.name + "." + name
	}
	child.name = name
	return &child
}

func (r *RecordingLogger) WithContext(ctx context.Context) logging.Logger {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return r.With(logging.String(logging.FieldRequestID, id))
	}
	return r
}

func (r *RecordingLogger) WithError(err error) logging.Logger {
	if err == nil {
		return r
	}
	fields := []logging.Field{{Key: "error", Value: err.Error()}}
	if code := errors.GetCode(err); code != errors.CodeUnknown {
		fields = append(fields, logging.String(logging.FieldErrorCode, code.String()))
	}
	return r.With(fields...)
}

func (r *RecordingLogger) Sync() error { return nil }

// Entries returns a copy of everything recorded so far.
func (r *RecordingLogger) Entries() []Entry {
	r.log.mu.Lock()
	defer r.log.mu.Unlock()
	return append([]Entry(nil), r.log.entries...)
}

// Find returns the first entry with level and message.
func (r *RecordingLogger) Find(level, msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Level == level && e.Message == msg {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether an entry with level and message was recorded.
func (r *RecordingLogger) Has(level, msg string) bool {
	_, ok := r.Find(level, msg)
	return ok
}

//Personal.AI order the ending
