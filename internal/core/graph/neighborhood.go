package graph

import (
	"fmt"
	"sync/atomic"

	"github.com/agenthands/lattice/internal/core/model"
)

type bfsItem struct {
	id    int64
	depth int
}

// GetNeighborhood expands outward from nodeID following both forward and
// reverse adjacency, visiting each node at most once, until the depth bound
// or the node-count bound is reached. The node-count check happens before
// dequeuing, so one expansion may overshoot maxNodes slightly. Edges are
// deduplicated by (from, to, relationship type) regardless of traversal
// direction.
//
// Depth 0 returns exactly the starting node with zero edges. Returns nil if
// the node does not exist. Results are cached by (nodeID, maxDepth,
// maxNodes); a hit returns the previously computed result without
// re-traversal.
func (g *Index) GetNeighborhood(nodeID int64, maxDepth, maxNodes int) *model.NeighborhoodResult {
	start, ok := g.nodes[nodeID]
	if !ok {
		return nil
	}
	if maxDepth < 0 {
		maxDepth = DefaultNeighborhoodDepth
	}
	if maxNodes <= 0 {
		maxNodes = DefaultNeighborhoodNodes
	}

	cacheKey := fmt.Sprintf("%d:%d:%d", nodeID, maxDepth, maxNodes)
	if cached, ok := g.neighborhoodCache.get(cacheKey); ok {
		return cached
	}

	atomic.AddInt64(&g.traversals, 1)

	result := &model.NeighborhoodResult{
		Nodes: []*model.GraphNode{start},
		Edges: []*model.GraphEdge{},
		Depth: maxDepth,
	}

	visited := map[int64]bool{nodeID: true}
	seenEdges := make(map[string]bool)
	queue := []bfsItem{{id: nodeID, depth: 0}}

	for len(queue) > 0 {
		if len(result.Nodes) >= maxNodes {
			break
		}
		item := queue[0]
		queue = queue[1:]
		if item.depth >= maxDepth {
			continue
		}

		for neighbor, edges := range g.outEdges[item.id] {
			g.collectEdges(result, seenEdges, edges)
			if !visited[neighbor] {
				visited[neighbor] = true
				if node := g.nodes[neighbor]; node != nil {
					result.Nodes = append(result.Nodes, node)
				}
				queue = append(queue, bfsItem{id: neighbor, depth: item.depth + 1})
			}
		}
		for neighbor, edges := range g.inEdges[item.id] {
			g.collectEdges(result, seenEdges, edges)
			if !visited[neighbor] {
				visited[neighbor] = true
				if node := g.nodes[neighbor]; node != nil {
					result.Nodes = append(result.Nodes, node)
				}
				queue = append(queue, bfsItem{id: neighbor, depth: item.depth + 1})
			}
		}
	}

	g.neighborhoodCache.set(cacheKey, result)
	return result
}

func (g *Index) collectEdges(result *model.NeighborhoodResult, seen map[string]bool, edges []*model.GraphEdge) {
	for _, e := range edges {
		key := fmt.Sprintf("%d:%d:%s", e.FromID, e.ToID, e.RelationshipType)
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Edges = append(result.Edges, e)
	}
}
