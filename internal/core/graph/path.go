package graph

import (
	"container/heap"
	"fmt"
	"sync/atomic"

	"github.com/agenthands/lattice/internal/core/model"
)

// FindShortestPath runs a Dijkstra search from fromID to toID over forward
// adjacency. The cost of stepping between a node pair is 1/max(weight) over
// the parallel edges connecting it, so the strongest parallel edge dominates.
// maxDepth doubles as a distance bound: a node is abandoned once its best
// known distance exceeds it.
//
// Returns nil if either endpoint is absent or no path exists within the
// bound. Results are cached by (fromID, toID, maxDepth); keying on the
// endpoint pair alone could serve a path computed under a different bound.
func (g *Index) FindShortestPath(fromID, toID int64, maxDepth float64) *model.PathResult {
	if g.nodes[fromID] == nil || g.nodes[toID] == nil {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultPathDepth
	}

	cacheKey := fmt.Sprintf("%d:%d:%g", fromID, toID, maxDepth)
	if cached, ok := g.pathCache.get(cacheKey); ok {
		return cached
	}

	atomic.AddInt64(&g.traversals, 1)

	if fromID == toID {
		result := &model.PathResult{Path: []int64{fromID}, Distance: 0, Confidence: 1.0}
		g.pathCache.set(cacheKey, result)
		return result
	}

	dist := map[int64]float64{fromID: 0}
	prev := make(map[int64]int64)
	done := make(map[int64]bool)

	pq := &pathQueue{{id: fromID, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(pathItem)
		if done[current.id] {
			continue
		}
		done[current.id] = true
		if current.dist > maxDepth {
			continue
		}
		if current.id == toID {
			result := &model.PathResult{
				Path:       reconstructPath(prev, fromID, toID),
				Distance:   current.dist,
				Confidence: 1 / (1 + current.dist),
			}
			g.pathCache.set(cacheKey, result)
			return result
		}

		for neighbor, edges := range g.outEdges[current.id] {
			if done[neighbor] {
				continue
			}
			strongest := 0.0
			for _, e := range edges {
				if e.Weight > strongest {
					strongest = e.Weight
				}
			}
			if strongest <= 0 {
				continue
			}
			alt := current.dist + 1/strongest
			if best, ok := dist[neighbor]; !ok || alt < best {
				dist[neighbor] = alt
				prev[neighbor] = current.id
				heap.Push(pq, pathItem{id: neighbor, dist: alt})
			}
		}
	}

	return nil
}

func reconstructPath(prev map[int64]int64, fromID, toID int64) []int64 {
	var reversed []int64
	for at := toID; ; {
		reversed = append(reversed, at)
		if at == fromID {
			break
		}
		at = prev[at]
	}
	path := make([]int64, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return path
}

type pathItem struct {
	id   int64
	dist float64
}

type pathQueue []pathItem

func (q pathQueue) Len() int            { return len(q) }
func (q pathQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q pathQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pathQueue) Push(x interface{}) { *q = append(*q, x.(pathItem)) }
func (q *pathQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
