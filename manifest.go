package gqlserve

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ManifestLoader is a PersistedQueryLoader backed by a JSON manifest mapping
// query ids to query text, the format emitted by Relay and Apollo build
// tooling. The manifest is read once and never modified, so lookups need no
// synchronization. Ids not present in the manifest are rejected with a
// client-safe error.
type ManifestLoader struct {
	queries map[string]string
}

// NewManifestLoader reads a JSON manifest of the form {"id": "query text"}.
func NewManifestLoader(r io.Reader) (*ManifestLoader, error) {
	var queries map[string]string
	if err := jsoniter.NewDecoder(r).Decode(&queries); err != nil {
		return nil, errors.Wrap(err, "error decoding persisted query manifest")
	}
	return &ManifestLoader{queries: queries}, nil
}

// NewManifestLoaderFromFile reads a JSON manifest from the file at the given
// path.
func NewManifestLoaderFromFile(path string) (*ManifestLoader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening persisted query manifest")
	}
	defer f.Close()
	return NewManifestLoader(f)
}

// Len returns the number of queries in the manifest.
func (l *ManifestLoader) Len() int {
	return len(l.queries)
}

func (l *ManifestLoader) LoadPersistedQuery(ctx context.Context, id string, params *OperationParams) (*PersistedQuery, error) {
	query, ok := l.queries[id]
	if !ok {
		return nil, NewRequestError(fmt.Sprintf("persisted query %q is not registered", id))
	}
	return &PersistedQuery{Query: query}, nil
}
