package gqlserve

import (
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// ServerConfig defines the schema and execution policy for a Server. It is
// read-only once the server is constructed and is shared by all concurrent
// requests, so it must not be mutated mid-flight.
type ServerConfig struct {
	// Required. The schema to execute operations against.
	Schema *graphql.Schema

	// Logger defaults to logrus.StandardLogger().
	Logger logrus.FieldLogger

	// RootValue is passed to the resolvers of the schema's root types.
	RootValue interface{}

	// ContextValue is injected into every resolver invocation's context for
	// the lifetime of each request, retrievable via ContextValue(ctx). It is
	// a single shared object rather than a per-resolver copy, so resolvers
	// can communicate through it.
	ContextValue interface{}

	// Debug exposes true error messages and stack traces in results and
	// captures runtime diagnostics under extensions.diagnostics. It controls
	// how much detail errors carry, never whether they're reported.
	Debug bool

	// ValidationPolicy selects the validation rules to run per operation. If
	// nil, the engine's default rule set is used. See ValidationPolicy.
	ValidationPolicy ValidationPolicy

	// If given, requests may execute pre-registered queries by id, and Apollo
	// persisted query extensions are honored.
	PersistedQueryLoader PersistedQueryLoader

	// By default a PersistedQueryLoader failure that isn't client-safe is
	// treated like a configuration error and returned to the caller. Setting
	// this folds such failures into the result's error list instead.
	NonFatalPersistedQueryErrors bool
}
