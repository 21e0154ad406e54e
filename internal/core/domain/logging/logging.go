package logging

import (
	"context"
	"errors"
)

type LogEntry struct {
	Key   string
	Value interface{}
}

func Entry(k string, v interface{}) LogEntry {
	return LogEntry{Key: k, Value: v}
}

type Logger interface {
	Debug(ctx context.Context, msg string, entries ...LogEntry)
	Info(ctx context.Context, msg string, entries ...LogEntry)
	Warning(ctx context.Context, msg string, entries ...LogEntry)
	Error(ctx context.Context, msg string, entries ...LogEntry)
}

// Error logs err unless it is a context cancellation, which is not a failure of ours.
func Error(ctx context.Context, log Logger, err error, entries ...LogEntry) {
	if errors.Is(err, context.Canceled) {
		return
	}
	entries = append(entries, Entry("err", err))
	log.Error(ctx, err.Error(), entries...)
}
