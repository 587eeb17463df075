package gqlserve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteOperation_AutomaticPersistedQueries(t *testing.T) {
	server := newTestServer(t, &ServerConfig{
		PersistedQueryLoader: NewQueryMap(),
	})

	query := `{f1}`
	id := QueryID(query)
	extensions := map[string]interface{}{
		"persistedQuery": map[string]interface{}{
			"version":    1,
			"sha256Hash": id,
		},
	}

	// hash only, before the query has been registered
	result, err := server.ExecuteOperation(context.Background(), &OperationParams{
		Extensions: extensions,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Data)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "PersistedQueryNotFound", result.Errors[0].Message)

	// query plus hash registers it
	result, err = server.ExecuteOperation(context.Background(), &OperationParams{
		Query:      query,
		Extensions: extensions,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Data)
	assert.Equal(t, map[string]interface{}{"f1": "f1"}, *result.Data)

	// hash only now resolves
	result, err = server.ExecuteOperation(context.Background(), &OperationParams{
		Extensions: extensions,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Data)
	assert.Equal(t, map[string]interface{}{"f1": "f1"}, *result.Data)
}

func TestExecuteOperation_AutomaticPersistedQueries_HashMismatch(t *testing.T) {
	server := newTestServer(t, &ServerConfig{
		PersistedQueryLoader: NewQueryMap(),
	})

	result, err := server.ExecuteOperation(context.Background(), &OperationParams{
		Query: `{f1}`,
		Extensions: map[string]interface{}{
			"persistedQuery": map[string]interface{}{
				"version":    1,
				"sha256Hash": QueryID(`{sibling}`),
			},
		},
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, isClientSafe(err))
}

func TestQueryMap(t *testing.T) {
	m := NewQueryMap()
	id := m.Add(`{f1}`)
	assert.Equal(t, QueryID(`{f1}`), id)

	persisted, err := m.LoadPersistedQuery(context.Background(), id, &OperationParams{})
	require.NoError(t, err)
	assert.Equal(t, `{f1}`, persisted.Query)

	_, err = m.LoadPersistedQuery(context.Background(), "nope", &OperationParams{})
	require.Error(t, err)
	assert.True(t, isClientSafe(err))
	assert.Equal(t, "PersistedQueryNotFound", err.Error())
}

func TestAPQQueryID(t *testing.T) {
	for name, tc := range map[string]struct {
		Params     OperationParams
		ExpectedID string
		ExpectedOK bool
	}{
		"NoExtensions": {},
		"WrongVersion": {
			Params: OperationParams{
				Extensions: map[string]interface{}{
					"persistedQuery": map[string]interface{}{
						"version":    2,
						"sha256Hash": "abc",
					},
				},
			},
		},
		"IntVersion": {
			Params: OperationParams{
				Extensions: map[string]interface{}{
					"persistedQuery": map[string]interface{}{
						"version":    1,
						"sha256Hash": "abc",
					},
				},
			},
			ExpectedID: "abc",
			ExpectedOK: true,
		},
		"FloatVersion": {
			Params: OperationParams{
				Extensions: map[string]interface{}{
					"persistedQuery": map[string]interface{}{
						"version":    1.0,
						"sha256Hash": "abc",
					},
				},
			},
			ExpectedID: "abc",
			ExpectedOK: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			id, ok := apqQueryID(&tc.Params)
			assert.Equal(t, tc.ExpectedID, id)
			assert.Equal(t, tc.ExpectedOK, ok)
		})
	}
}
