package graph

import (
	"sort"

	"github.com/agenthands/lattice/internal/core/model"
)

// CalculateDegreeMetrics recomputes every node's total degree (out + in,
// parallel edges counted individually), the mean degree, and the hub set.
// A hub is any node whose degree falls in the top hubFraction of the degree
// distribution; ties at the percentile boundary are all included, since the
// policy is "degree >= threshold", not a fixed top-N.
func (g *Index) CalculateDegreeMetrics() {
	if len(g.nodes) == 0 {
		g.averageDegree = 0
		g.hubNodes = nil
		return
	}

	total := 0
	degrees := make([]int, 0, len(g.nodes))
	for id, node := range g.nodes {
		degree := g.countEdges(g.outEdges[id]) + g.countEdges(g.inEdges[id])
		node.DegreeCount = degree
		degrees = append(degrees, degree)
		total += degree
	}
	g.averageDegree = float64(total) / float64(len(g.nodes))

	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	cutoff := int(float64(len(degrees)) * g.hubFraction)
	if cutoff >= len(degrees) {
		cutoff = len(degrees) - 1
	}
	threshold := degrees[cutoff]

	hubs := make([]int64, 0)
	for id, node := range g.nodes {
		if node.DegreeCount >= threshold {
			hubs = append(hubs, id)
		}
	}
	// Map iteration order is not reproducible; order hubs by degree so that
	// GetHubNodes truncation is stable across runs.
	sort.Slice(hubs, func(i, j int) bool {
		di, dj := g.nodes[hubs[i]].DegreeCount, g.nodes[hubs[j]].DegreeCount
		if di != dj {
			return di > dj
		}
		return hubs[i] < hubs[j]
	})
	g.hubNodes = hubs
}

func (g *Index) countEdges(neighbors map[int64][]*model.GraphEdge) int {
	count := 0
	for _, edges := range neighbors {
		count += len(edges)
	}
	return count
}

// SetNodeMetrics attaches externally computed centrality figures to a node.
// A pagerank value is also denormalized into the node's centrality score.
func (g *Index) SetNodeMetrics(nodeID int64, metrics *model.GraphMetrics) {
	if metrics == nil {
		return
	}
	g.metrics[nodeID] = metrics
	if metrics.PageRank != nil {
		if node := g.nodes[nodeID]; node != nil {
			score := *metrics.PageRank
			node.CentralityScore = &score
		}
	}
}

// GetNodeMetrics returns the metrics attached to a node, or nil.
func (g *Index) GetNodeMetrics(nodeID int64) *model.GraphMetrics {
	return g.metrics[nodeID]
}

// GetTopNodesByCentrality returns up to limit nodes with a defined
// centrality score, highest first.
func (g *Index) GetTopNodesByCentrality(limit int) []*model.GraphNode {
	scored := make([]*model.GraphNode, 0)
	for _, node := range g.nodes {
		if node.CentralityScore != nil {
			scored = append(scored, node)
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if *scored[i].CentralityScore != *scored[j].CentralityScore {
			return *scored[i].CentralityScore > *scored[j].CentralityScore
		}
		return scored[i].ID < scored[j].ID
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// GetHubNodes returns up to limit nodes from the hub set computed by the
// last CalculateDegreeMetrics call, without further sorting.
func (g *Index) GetHubNodes(limit int) []*model.GraphNode {
	hubs := g.hubNodes
	if limit > 0 && len(hubs) > limit {
		hubs = hubs[:limit]
	}
	nodes := make([]*model.GraphNode, 0, len(hubs))
	for _, id := range hubs {
		if node := g.nodes[id]; node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// AverageDegree returns the mean degree from the last
// CalculateDegreeMetrics call.
func (g *Index) AverageDegree() float64 {
	return g.averageDegree
}
