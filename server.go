// Package gqlserve executes GraphQL operations against a schema built with
// github.com/graphql-go/graphql, layering request normalization, pluggable
// validation policy, persisted queries, and debug diagnostics on top of the
// engine's parse/validate/execute pipeline.
package gqlserve

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/sirupsen/logrus"
)

// Server executes operations for a single schema and configuration. It is safe
// for concurrent use.
type Server struct {
	config *ServerConfig
	logger logrus.FieldLogger
}

// NewServer validates the configuration and returns a server for it.
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg.Schema == nil {
		return nil, newConfigurationError("a schema is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		config: cfg,
		logger: logger,
	}, nil
}

// ExecuteOperation runs the full pipeline for one request: document
// acquisition (parse or persisted query lookup), validation per the
// configured policy, then execution.
//
// Errors that are the client's responsibility — syntax errors, validation
// errors, resolver failures — are reported inside the returned Result. A
// non-nil error return means the request could not be handled at all, because
// the request was malformed (RequestError) or the server isn't set up for it
// (ConfigurationError); in that case the result is nil.
func (s *Server) ExecuteOperation(ctx context.Context, params *OperationParams) (*Result, error) {
	if params == nil {
		params = &OperationParams{}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var sink *DiagnosticSink
	if s.config.Debug {
		sink = &DiagnosticSink{}
	}
	ctx = s.requestContext(ctx, sink)

	doc, failure, err := s.operationDocument(ctx, params)
	if err != nil {
		return nil, err
	} else if failure == nil {
		failure = s.validateDocument(doc, params)
	}
	if failure != nil {
		s.drainDiagnostics(failure, sink)
		return failure, nil
	}

	engineResult := graphql.Execute(graphql.ExecuteParams{
		Schema:        *s.config.Schema,
		Root:          s.config.RootValue,
		AST:           doc,
		OperationName: params.OperationName,
		Args:          params.Variables,
		Context:       ctx,
	})

	var data interface{} = engineResult.Data
	result := &Result{
		Data:   &data,
		Errors: newErrors(engineResult.Errors, s.config.Debug),
	}
	for k, v := range engineResult.Extensions {
		result.addExtension(k, v)
	}
	s.drainDiagnostics(result, sink)
	return result, nil
}

// operationDocument obtains the operation's document, from query text or via
// the persisted query loader. A non-nil failure result means the document
// could not be obtained for a reason that belongs in the response envelope: it
// carries only errors and no data key, since execution never began.
func (s *Server) operationDocument(ctx context.Context, params *OperationParams) (*ast.Document, *Result, error) {
	query := params.Query
	queryID := params.QueryID

	if apqID, ok := apqQueryID(params); ok && queryID == "" {
		if query != "" {
			// A query alongside its hash registers it for future requests.
			if QueryID(query) != apqID {
				return nil, nil, NewRequestError("provided sha256Hash does not match query")
			}
			if storer, ok := s.config.PersistedQueryLoader.(PersistedQueryStorer); ok {
				storer.StorePersistedQuery(ctx, apqID, query)
			}
		} else {
			queryID = apqID
		}
	}

	if query == "" && queryID != "" {
		loader := s.config.PersistedQueryLoader
		if loader == nil {
			return nil, nil, ErrPersistedQueriesNotSupported
		}
		persisted, err := loader.LoadPersistedQuery(ctx, queryID, params)
		if err != nil {
			if isClientSafe(err) {
				return nil, &Result{Errors: []*Error{{Message: err.Error()}}}, nil
			}
			if s.config.NonFatalPersistedQueryErrors {
				message := redactedErrorMessage
				if s.config.Debug {
					message = err.Error()
				}
				return nil, &Result{Errors: []*Error{{Message: message}}}, nil
			}
			return nil, nil, &ConfigurationError{message: "error loading persisted query", cause: err}
		}
		// The loader is third-party code: a nil or empty result must not
		// panic the request.
		if persisted == nil || (persisted.Query == "" && persisted.Document == nil) {
			return nil, nil, newConfigurationError("persisted query loader returned no query")
		}
		if persisted.Document != nil {
			return persisted.Document, nil, nil
		}
		query = persisted.Query
	}

	src := source.NewSource(&source.Source{
		Body: []byte(query),
		Name: "GraphQL request",
	})
	doc, err := parser.Parse(parser.ParseParams{Source: src})
	if err != nil {
		return nil, &Result{Errors: newErrors(gqlerrors.FormatErrors(err), s.config.Debug)}, nil
	}
	return doc, nil, nil
}

// validateDocument runs the validation rules selected by the server's policy.
// A nil return means execution may proceed. All rules run and all of their
// errors accumulate; any error prevents execution entirely, producing a result
// with no data key at all.
func (s *Server) validateDocument(doc *ast.Document, params *OperationParams) *Result {
	rules, configured := resolveRules(s.config.ValidationPolicy, params)
	if configured && len(rules) == 0 {
		// Validation explicitly skipped: any parseable document is accepted.
		return nil
	}
	validation := graphql.ValidateDocument(s.config.Schema, doc, rules)
	if validation.IsValid {
		return nil
	}
	return &Result{Errors: newErrors(validation.Errors, s.config.Debug)}
}

func (s *Server) requestContext(ctx context.Context, sink *DiagnosticSink) context.Context {
	if s.config.ContextValue != nil {
		ctx = context.WithValue(ctx, contextValueKey, s.config.ContextValue)
	}
	ctx = context.WithValue(ctx, requestLoggerKey, s.requestLogger(sink))
	if sink != nil {
		ctx = context.WithValue(ctx, diagnosticSinkKey, sink)
	}
	return ctx
}

// requestLogger returns the logger resolvers see via Logger(ctx). In debug
// mode it's a copy of the server logger with the request's diagnostic sink
// installed as an additional hook, so logged entries end up on the result's
// extensions. The copy keeps the base logger's output, level, formatter,
// hooks, and (for *logrus.Entry bases) fields.
func (s *Server) requestLogger(sink *DiagnosticSink) logrus.FieldLogger {
	if sink == nil {
		return s.logger
	}
	base := s.logger
	var fields logrus.Fields
	if entry, ok := base.(*logrus.Entry); ok {
		fields = entry.Data
		base = entry.Logger
	}
	logger := logrus.New()
	if baseLogger, ok := base.(*logrus.Logger); ok {
		logger.SetOutput(baseLogger.Out)
		logger.SetLevel(baseLogger.GetLevel())
		logger.SetFormatter(baseLogger.Formatter)
		hooks := make(logrus.LevelHooks)
		for level, levelHooks := range baseLogger.Hooks {
			hooks[level] = append([]logrus.Hook(nil), levelHooks...)
		}
		logger.ReplaceHooks(hooks)
	}
	logger.AddHook(sink)
	if len(fields) > 0 {
		return logger.WithFields(fields)
	}
	return logger
}

func (s *Server) drainDiagnostics(result *Result, sink *DiagnosticSink) {
	if sink == nil {
		return
	}
	if diagnostics := sink.Diagnostics(); len(diagnostics) > 0 {
		result.addExtension("diagnostics", diagnostics)
	}
}
