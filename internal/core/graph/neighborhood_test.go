package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultNodeIDs(t *testing.T, g *Index, nodeID int64, maxDepth, maxNodes int) []int64 {
	t.Helper()
	result := g.GetNeighborhood(nodeID, maxDepth, maxNodes)
	require.NotNil(t, result)
	ids := make([]int64, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestNeighborhoodMissingNode(t *testing.T) {
	g := newTestIndex()
	assert.Nil(t, g.GetNeighborhood(42, 2, 100))
}

func TestNeighborhoodDepthZero(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "a")
	addNode(t, g, 2, "b")
	addEdge(t, g, 1, 2, "knows", 1, 1)

	result := g.GetNeighborhood(1, 0, 100)
	require.NotNil(t, result)
	require.Len(t, result.Nodes, 1)
	assert.Equal(t, int64(1), result.Nodes[0].ID)
	assert.Empty(t, result.Edges)
}

func TestNeighborhoodFollowsBothDirections(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "a")
	addNode(t, g, 2, "b")
	addNode(t, g, 3, "c")
	addEdge(t, g, 1, 2, "knows", 1, 1) // forward from 1
	addEdge(t, g, 3, 1, "knows", 1, 1) // reverse into 1

	ids := resultNodeIDs(t, g, 1, 1, 100)
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids)

	result := g.GetNeighborhood(1, 1, 100)
	assert.Len(t, result.Edges, 2)
}

func TestNeighborhoodDepthBound(t *testing.T) {
	g := newTestIndex()
	for id := int64(1); id <= 4; id++ {
		addNode(t, g, id, "n")
	}
	addEdge(t, g, 1, 2, "next", 1, 1)
	addEdge(t, g, 2, 3, "next", 1, 1)
	addEdge(t, g, 3, 4, "next", 1, 1)

	ids := resultNodeIDs(t, g, 1, 2, 100)
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids)

	// Node 3 sits at the depth bound and is never expanded, so the 3->4
	// edge is not discovered.
	result := g.GetNeighborhood(1, 2, 100)
	assert.Len(t, result.Edges, 2)
}

func TestNeighborhoodNodeCap(t *testing.T) {
	g := newTestIndex()
	for id := int64(1); id <= 10; id++ {
		addNode(t, g, id, "n")
	}
	for id := int64(1); id < 10; id++ {
		addEdge(t, g, id, id+1, "next", 1, 1)
	}

	// The cap is checked before dequeuing, so a chain stops at exactly
	// maxNodes entries.
	ids := resultNodeIDs(t, g, 1, 9, 3)
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids)
}

func TestNeighborhoodNodeCapMayOvershoot(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 0, "center")
	for id := int64(1); id <= 10; id++ {
		addNode(t, g, id, "leaf")
		addEdge(t, g, 0, id, "spoke", 1, 1)
	}

	// A single expansion of the center discovers all ten leaves, so the
	// result exceeds the cap by the frontier size.
	ids := resultNodeIDs(t, g, 0, 2, 5)
	assert.Len(t, ids, 11)
}

func TestNeighborhoodEdgeDeduplication(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "a")
	addNode(t, g, 2, "b")
	addEdge(t, g, 1, 2, "knows", 1, 1)
	addEdge(t, g, 1, 2, "knows", 2, 1) // duplicate (from,to,type)
	addEdge(t, g, 1, 2, "likes", 1, 1) // distinct type survives

	result := g.GetNeighborhood(1, 1, 100)
	require.NotNil(t, result)
	assert.Len(t, result.Edges, 2)
}

func TestNeighborhoodCache(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "a")
	addNode(t, g, 2, "b")
	addEdge(t, g, 1, 2, "knows", 1, 1)

	first := g.GetNeighborhood(1, 2, 100)
	second := g.GetNeighborhood(1, 2, 100)
	assert.Same(t, first, second)
	assert.EqualValues(t, 1, traversalCount(g))

	// Different arguments miss the cache.
	g.GetNeighborhood(1, 1, 100)
	assert.EqualValues(t, 2, traversalCount(g))

	g.ClearCaches()
	third := g.GetNeighborhood(1, 2, 100)
	assert.EqualValues(t, 3, traversalCount(g))
	assert.Equal(t, first.Nodes, third.Nodes)
}

func TestNeighborhoodCacheNotInvalidatedByMutation(t *testing.T) {
	g := newTestIndex()
	addNode(t, g, 1, "a")
	addNode(t, g, 2, "b")
	addEdge(t, g, 1, 2, "knows", 1, 1)

	before := g.GetNeighborhood(1, 2, 100)

	addNode(t, g, 3, "c")
	addEdge(t, g, 1, 3, "knows", 1, 1)

	// Stale by contract until caches are cleared explicitly.
	stale := g.GetNeighborhood(1, 2, 100)
	assert.Same(t, before, stale)

	g.ClearCaches()
	fresh := g.GetNeighborhood(1, 2, 100)
	assert.Len(t, fresh.Nodes, 3)
}
