package gqlserve

import (
	"context"

	"github.com/graphql-go/graphql/language/ast"
)

// ErrPersistedQueriesNotSupported is returned by ExecuteOperation when a
// request names a query id but no PersistedQueryLoader is configured.
var ErrPersistedQueriesNotSupported = newConfigurationError("Persisted queries are not supported by this server")

// PersistedQuery is the result of a persisted query lookup: either raw query
// text, which goes through the normal parse path, or an already parsed
// document, which skips parsing. Exactly one of the two should be set.
type PersistedQuery struct {
	Query    string
	Document *ast.Document
}

// PersistedQueryLoader resolves query ids to queries. Loaders are free to
// choose how a failed lookup surfaces: returning a client-safe error (such as a
// RequestError) reports it to the client as a query-level error, while any
// other error is treated according to the server's
// NonFatalPersistedQueryErrors setting.
type PersistedQueryLoader interface {
	LoadPersistedQuery(ctx context.Context, id string, params *OperationParams) (*PersistedQuery, error)
}

// PersistedQueryLoaderFunc adapts a function to the PersistedQueryLoader
// interface.
type PersistedQueryLoaderFunc func(ctx context.Context, id string, params *OperationParams) (*PersistedQuery, error)

func (f PersistedQueryLoaderFunc) LoadPersistedQuery(ctx context.Context, id string, params *OperationParams) (*PersistedQuery, error) {
	return f(ctx, id, params)
}

// PersistedQueryStorer is optionally implemented by loaders that can accept
// new queries, enabling automatic persisted queries. Storage is best effort
// and cannot fail the request: an error here only forces the client to resend
// the full query text next time.
type PersistedQueryStorer interface {
	StorePersistedQuery(ctx context.Context, id string, query string)
}
