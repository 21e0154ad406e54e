package logging

import (
	"context"
	"fmt"
	"ums/internal/core/domain/logging"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

type ZapLogger struct {
	logger         *zap.Logger
	sugar          *zap.SugaredLogger
	reportToSentry bool
}

// NewZapLogger builds a production zap logger. Error records are also reported to
// Sentry when reportToSentry is set; sentry.Init must be called beforehand.
func NewZapLogger(reportToSentry bool) *ZapLogger {
	logger, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		panic("Could not create Zap logger.")
	}
	sugar := logger.Sugar()
	return &ZapLogger{logger: logger, sugar: sugar, reportToSentry: reportToSentry}
}

func (l *ZapLogger) Sync() {
	l.logger.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Debugw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Infow(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Warning(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Warnw(msg, prepareArgs(entries...)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, entries ...logging.LogEntry) {
	l.sugar.Errorw(msg, prepareArgs(entries...)...)
	if l.reportToSentry {
		reportToSentry(ctx, msg, entries...)
	}
}

func reportToSentry(ctx context.Context, msg string, entries ...logging.LogEntry) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		var cause error
		for _, e := range entries {
			if err, ok := e.Value.(error); ok && cause == nil {
				cause = err
				continue
			}
			scope.SetExtra(e.Key, fmt.Sprint(e.Value))
		}
		if cause == nil {
			hub.CaptureMessage(msg)
			return
		}
		hub.CaptureException(fmt.Errorf("%s: %w", msg, cause))
	})
}

func prepareArgs(entries ...logging.LogEntry) []interface{} {
	args := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		if err, ok := e.Value.(error); ok && err != nil {
			args = append(args, e.Key, err.Error())
			continue
		}
		args = append(args, e.Key, e.Value)
	}
	return args
}
