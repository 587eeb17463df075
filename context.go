package gqlserve

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextValueKeyType int

var contextValueKey contextValueKeyType

type requestLoggerKeyType int

var requestLoggerKey requestLoggerKeyType

type diagnosticSinkKeyType int

var diagnosticSinkKey diagnosticSinkKeyType

// ContextValue returns the value configured via ServerConfig.ContextValue.
// It is a single object shared by every resolver invocation of one request:
// mutations made by a resolver are visible to resolvers that run after it and
// to the caller once ExecuteOperation returns.
func ContextValue(ctx context.Context) interface{} {
	return ctx.Value(contextValueKey)
}

// Logger returns the request's logger. In debug mode, entries logged here
// during resolver execution are additionally captured as diagnostics on the
// result's extensions.
func Logger(ctx context.Context) logrus.FieldLogger {
	if logger, ok := ctx.Value(requestLoggerKey).(logrus.FieldLogger); ok {
		return logger
	}
	return logrus.StandardLogger()
}

func ctxDiagnosticSink(ctx context.Context) *DiagnosticSink {
	sink, _ := ctx.Value(diagnosticSinkKey).(*DiagnosticSink)
	return sink
}
