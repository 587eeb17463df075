package gqlserve

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// QueryID returns the canonical id for a query: the hex-encoded sha256 of its
// text, as used by Apollo persisted queries.
func QueryID(query string) string {
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:])
}

// apqQueryID extracts the query id from an Apollo persistedQuery extension:
// https://www.apollographql.com/docs/react/api/link/persisted-queries/
func apqQueryID(params *OperationParams) (string, bool) {
	ext, _ := params.Extensions["persistedQuery"].(map[string]interface{})
	switch ext["version"] {
	case 1, 1.0:
		hash, _ := ext["sha256Hash"].(string)
		if hash != "" {
			return hash, true
		}
	}
	return "", false
}

// QueryMap is an in-memory PersistedQueryLoader keyed by QueryID. It also
// implements PersistedQueryStorer, so a server configured with a QueryMap
// supports Apollo automatic persisted queries out of the box. Lookup misses
// are reported as client-safe "PersistedQueryNotFound" errors per the APQ
// protocol.
type QueryMap struct {
	mutex   sync.RWMutex
	queries map[string]string
}

func NewQueryMap() *QueryMap {
	return &QueryMap{
		queries: map[string]string{},
	}
}

// Add registers a query and returns its id.
func (m *QueryMap) Add(query string) string {
	id := QueryID(query)
	m.StorePersistedQuery(context.Background(), id, query)
	return id
}

func (m *QueryMap) LoadPersistedQuery(ctx context.Context, id string, params *OperationParams) (*PersistedQuery, error) {
	m.mutex.RLock()
	query, ok := m.queries[id]
	m.mutex.RUnlock()
	if !ok {
		return nil, NewRequestError("PersistedQueryNotFound")
	}
	return &PersistedQuery{Query: query}, nil
}

func (m *QueryMap) StorePersistedQuery(ctx context.Context, id string, query string) {
	m.mutex.Lock()
	m.queries[id] = query
	m.mutex.Unlock()
}
