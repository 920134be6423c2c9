package graph

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/lattice/internal/core/model"
)

func newTestIndex() *Index {
	return NewIndex(DefaultOptions())
}

func traversalCount(g *Index) int64 {
	return atomic.LoadInt64(&g.traversals)
}

func addNode(t *testing.T, g *Index, id int64, name string) *model.GraphNode {
	t.Helper()
	node := &model.GraphNode{ID: id, Name: name, Type: "entity"}
	g.AddNode(node)
	return node
}

func addEdge(t *testing.T, g *Index, from, to int64, relType string, weight, confidence float64) *model.GraphEdge {
	t.Helper()
	edge := &model.GraphEdge{
		FromID:           from,
		ToID:             to,
		RelationshipType: relType,
		Weight:           weight,
		Confidence:       confidence,
	}
	require.NoError(t, g.AddEdge(edge))
	return edge
}

func TestAddAndGetNode(t *testing.T) {
	g := newTestIndex()
	node := addNode(t, g, 1, "Alice")

	assert.Same(t, node, g.GetNode(1))
	assert.Nil(t, g.GetNode(99))
}

func TestGetNodeByNameCaseInsensitive(t *testing.T) {
	g := newTestIndex()
	node := addNode(t, g, 1, "Alice")

	assert.Same(t, node, g.GetNodeByName("alice"))
	assert.Same(t, node, g.GetNodeByName("ALICE"))
	assert.Same(t, node, g.GetNodeByName("Alice"))
	assert.Nil(t, g.GetNodeByName("Bob"))
}

func TestAddNodeOverwrites(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "Alice")
	replacement := &model.GraphNode{ID: 1, Name: "Alice v2", Type: "person"}
	g.AddNode(replacement)

	assert.Same(t, replacement, g.GetNode(1))
	assert.Same(t, replacement, g.GetNodeByName("alice v2"))
}

func TestAddEdgeRejectsMalformedRecords(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "a")
	addNode(t, g, 2, "b")

	err := g.AddEdge(&model.GraphEdge{FromID: 1, ToID: 2, Weight: 0, Confidence: 0.5})
	assert.Error(t, err)

	err = g.AddEdge(&model.GraphEdge{FromID: 1, ToID: 2, Weight: -2, Confidence: 0.5})
	assert.Error(t, err)

	err = g.AddEdge(&model.GraphEdge{FromID: 1, ToID: 2, Weight: 1, Confidence: 1.5})
	assert.Error(t, err)

	assert.Equal(t, 0, g.EdgeCount())
}

func TestAddEdgeToleratesUnknownEndpoints(t *testing.T) {
	g := newTestIndex()
	// Neither endpoint has been added; adjacency slots are created on demand.
	err := g.AddEdge(&model.GraphEdge{FromID: 10, ToID: 20, RelationshipType: "knows", Weight: 1, Confidence: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 0, g.NodeCount())
}

func TestConcurrentQueriesUnderReadLock(t *testing.T) {
	g := newTestIndex()
	const n = 40
	for id := int64(0); id < n; id++ {
		addNode(t, g, id, "node")
	}
	for id := int64(0); id < n; id++ {
		addEdge(t, g, id, (id+1)%n, "next", 1, 1)
		addEdge(t, g, id, (id+7)%n, "skip", 2, 1)
	}

	// Query handlers share the index under a read lock; only the caches and
	// the traversal counter are written on this path, and both must be safe.
	var mu sync.RWMutex
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				mu.RLock()
				g.GetNeighborhood(int64((w*20+i)%n), 2, 100)
				g.FindShortestPath(int64(w%n), int64((w+i)%n), 5)
				mu.RUnlock()
			}
		}(w)
	}
	wg.Wait()

	assert.Positive(t, traversalCount(g))
}

func TestEdgeCountCountsParallelEdges(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "a")
	addNode(t, g, 2, "b")
	addEdge(t, g, 1, 2, "knows", 1, 1)
	addEdge(t, g, 1, 2, "knows", 2, 1)
	addEdge(t, g, 1, 2, "likes", 3, 1)

	assert.Equal(t, 3, g.EdgeCount())
}
