package core

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/driver"
)

var (
	entityKeys       = []string{"id", "name", "type", "metadata", "pagerank"}
	relationshipKeys = []string{"from_id", "to_id", "relationship_type", "weight", "confidence"}
	communityKeys    = []string{"id", "parent_id", "level", "name", "cohesion_score", "member_ids"}
)

func emptyStore() map[string]neo4j.EagerResult {
	return map[string]neo4j.EagerResult{
		driver.LoadEntitiesQuery:      eagerResult(entityKeys),
		driver.LoadRelationshipsQuery: eagerResult(relationshipKeys),
		driver.LoadCommunitiesQuery:   eagerResult(communityKeys),
	}
}

func TestRebuildLoadsFullGraph(t *testing.T) {
	results := emptyStore()
	results[driver.LoadEntitiesQuery] = eagerResult(entityKeys,
		[]any{int64(1), "Alice", "person", `{"source": "doc-1"}`, 0.42},
		[]any{int64(2), "Bob", "person", nil, nil},
	)
	results[driver.LoadRelationshipsQuery] = eagerResult(relationshipKeys,
		[]any{int64(1), int64(2), "knows", 2.0, 0.9},
	)
	results[driver.LoadCommunitiesQuery] = eagerResult(communityKeys,
		[]any{int64(10), nil, int64(0), "people", 0.75, []any{int64(1), int64(2)}},
	)

	loader := NewLoader(&MockDriver{Results: results}, graph.DefaultOptions())
	idx, err := loader.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, idx.NodeCount())
	assert.Equal(t, 1, idx.EdgeCount())

	alice := idx.GetNode(1)
	require.NotNil(t, alice)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "person", alice.Type)
	assert.Equal(t, "doc-1", alice.Metadata["source"])
	require.NotNil(t, alice.CentralityScore)
	assert.Equal(t, 0.42, *alice.CentralityScore)

	community := idx.GetCommunity(10)
	require.NotNil(t, community)
	assert.Equal(t, "people", community.Name)
	assert.Equal(t, 2, community.Size)
	assert.Nil(t, community.ParentID)
	assert.Equal(t, 0.75, community.CohesionScore)
	assert.Equal(t, community, idx.GetNodeCommunity(1))

	// Degree metrics are recomputed as part of the rebuild.
	assert.InDelta(t, 1.0, idx.AverageDegree(), 1e-9)
}

func TestRebuildDefaultsMissingEdgeProperties(t *testing.T) {
	results := emptyStore()
	results[driver.LoadEntitiesQuery] = eagerResult(entityKeys,
		[]any{int64(1), "a", "entity", nil, nil},
		[]any{int64(2), "b", "entity", nil, nil},
	)
	results[driver.LoadRelationshipsQuery] = eagerResult(relationshipKeys,
		[]any{int64(1), int64(2), "knows", nil, nil},
	)

	loader := NewLoader(&MockDriver{Results: results}, graph.DefaultOptions())
	idx, err := loader.Rebuild(context.Background())
	require.NoError(t, err)

	path := idx.FindShortestPath(1, 2, 0)
	require.NotNil(t, path)
	assert.Equal(t, 1.0, path.Distance)
	assert.Equal(t, 1.0, path.Confidence)
}

func TestRebuildSkipsMalformedRecords(t *testing.T) {
	results := emptyStore()
	results[driver.LoadEntitiesQuery] = eagerResult(entityKeys,
		[]any{nil, "ghost", "entity", nil, nil},
		[]any{int64(1), "a", "entity", nil, nil},
		[]any{int64(2), "b", "entity", nil, nil},
	)
	results[driver.LoadRelationshipsQuery] = eagerResult(relationshipKeys,
		[]any{int64(1), nil, "knows", 1.0, 1.0},
		[]any{int64(1), int64(2), "knows", -1.0, 1.0},
		[]any{int64(1), int64(2), "knows", 1.0, 1.0},
	)

	loader := NewLoader(&MockDriver{Results: results}, graph.DefaultOptions())
	idx, err := loader.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, idx.NodeCount())
	assert.Equal(t, 1, idx.EdgeCount())
}

func TestRebuildPropagatesDriverError(t *testing.T) {
	loader := NewLoader(&MockDriver{Err: errors.New("connection refused")}, graph.DefaultOptions())

	idx, err := loader.Rebuild(context.Background())
	assert.Nil(t, idx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load entities")
}

func TestRebuildQueriesInLoadOrder(t *testing.T) {
	mock := &MockDriver{Results: emptyStore()}
	loader := NewLoader(mock, graph.DefaultOptions())

	_, err := loader.Rebuild(context.Background())
	require.NoError(t, err)

	require.Len(t, mock.QueriesExecuted, 3)
	assert.Equal(t, driver.LoadEntitiesQuery, mock.QueriesExecuted[0])
	assert.Equal(t, driver.LoadRelationshipsQuery, mock.QueriesExecuted[1])
	assert.Equal(t, driver.LoadCommunitiesQuery, mock.QueriesExecuted[2])
}
