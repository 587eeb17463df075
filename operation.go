package gqlserve

// OperationParams is the normalized representation of one incoming operation
// request. It is constructed once per request, either directly or via
// NewOperationParamsFromHTTP, and must not be modified afterwards.
type OperationParams struct {
	// The operation as GraphQL query text. Mutually exclusive with QueryID.
	Query string

	// The id of a persisted query to execute instead of query text. Requires a
	// PersistedQueryLoader to be configured on the server.
	QueryID string

	// Runtime values for the operation's variables.
	Variables map[string]interface{}

	// Selects the operation to execute if the document contains more than one.
	OperationName string

	// Out-of-band request metadata, e.g. the Apollo persistedQuery extension.
	Extensions map[string]interface{}
}

// Validate checks that the params can be used to obtain a document: exactly one
// of Query and QueryID must be provided. Query text accompanied by the Apollo
// persistedQuery extension is allowed, as that's how clients register queries.
func (p *OperationParams) Validate() error {
	hasAPQ := false
	if _, ok := apqQueryID(p); ok {
		hasAPQ = true
	}
	if p.Query == "" && p.QueryID == "" && !hasAPQ {
		return NewRequestError(`GraphQL request must include at least one of "query" or "queryId"`)
	}
	if p.Query != "" && p.QueryID != "" {
		return NewRequestError(`GraphQL request cannot include both "query" and "queryId"`)
	}
	return nil
}
