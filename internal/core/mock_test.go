package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver serves canned results keyed by query string and records the
// queries it saw.
type MockDriver struct {
	Results         map[string]neo4j.EagerResult
	Err             error
	QueriesExecuted []string
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueriesExecuted = append(m.QueriesExecuted, query)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.Results[query], nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func eagerResult(keys []string, rows ...[]any) neo4j.EagerResult {
	records := make([]*neo4j.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, &neo4j.Record{Keys: keys, Values: row})
	}
	return neo4j.EagerResult{Keys: keys, Records: records}
}
