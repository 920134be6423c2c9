package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/agenthands/lattice/internal/core/model"
)

// Defaults for query bounds and cache sizing. Callers bound query cost via
// depth/node parameters, not wall-clock limits.
const (
	DefaultNeighborhoodDepth = 2
	DefaultNeighborhoodNodes = 100
	DefaultPathDepth         = 5.0
	DefaultExportNodes       = 1000

	DefaultPathCacheSize         = 1000
	DefaultNeighborhoodCacheSize = 500
	DefaultCacheTTL              = 5 * time.Minute

	// DefaultHubFraction marks the top 5th percentile of the degree
	// distribution as hubs.
	DefaultHubFraction = 0.05
)

// Options tunes cache capacities and hub detection for one index instance.
type Options struct {
	PathCacheSize         int
	NeighborhoodCacheSize int
	CacheTTL              time.Duration
	HubFraction           float64
}

// DefaultOptions returns the options the reference deployment runs with.
func DefaultOptions() Options {
	return Options{
		PathCacheSize:         DefaultPathCacheSize,
		NeighborhoodCacheSize: DefaultNeighborhoodCacheSize,
		CacheTTL:              DefaultCacheTTL,
		HubFraction:           DefaultHubFraction,
	}
}

// Index is the in-memory knowledge graph: flat node/edge/community tables
// keyed by integer id, with adjacency stored as id-indexed edge lists.
// It is rebuilt from the external source of truth each session; there is no
// deletion API.
//
// The index itself does no locking. It is meant for single-writer ingestion
// followed by multi-reader querying; concurrent use requires an external
// mutex (the HTTP server provides one). The two result caches are internally
// locked because lookups mutate LRU order even on the read path.
type Index struct {
	nodes       map[int64]*model.GraphNode
	nodesByName map[string]int64

	// outEdges[from][to] and inEdges[to][from] hold parallel edge lists.
	outEdges map[int64]map[int64][]*model.GraphEdge
	inEdges  map[int64]map[int64][]*model.GraphEdge

	communities     map[int64]*model.Community
	communityLevels map[int][]int64
	nodeToCommunity map[int64]int64

	metrics       map[int64]*model.GraphMetrics
	averageDegree float64
	hubNodes      []int64
	hubFraction   float64

	pathCache         *lruCache[*model.PathResult]
	neighborhoodCache *lruCache[*model.NeighborhoodResult]

	// traversals counts actual BFS/Dijkstra runs, excluding cache hits.
	// Queries run concurrently under the server's read lock, so the counter
	// is updated atomically. Tests use it to observe cache behavior.
	traversals int64
}

// NewIndex creates an empty index.
func NewIndex(opts Options) *Index {
	if opts.HubFraction <= 0 || opts.HubFraction >= 1 {
		opts.HubFraction = DefaultHubFraction
	}
	if opts.PathCacheSize <= 0 {
		opts.PathCacheSize = DefaultPathCacheSize
	}
	if opts.NeighborhoodCacheSize <= 0 {
		opts.NeighborhoodCacheSize = DefaultNeighborhoodCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &Index{
		nodes:             make(map[int64]*model.GraphNode),
		nodesByName:       make(map[string]int64),
		outEdges:          make(map[int64]map[int64][]*model.GraphEdge),
		inEdges:           make(map[int64]map[int64][]*model.GraphEdge),
		communities:       make(map[int64]*model.Community),
		communityLevels:   make(map[int][]int64),
		nodeToCommunity:   make(map[int64]int64),
		metrics:           make(map[int64]*model.GraphMetrics),
		hubFraction:       opts.HubFraction,
		pathCache:         newLRUCache[*model.PathResult](opts.PathCacheSize, opts.CacheTTL),
		neighborhoodCache: newLRUCache[*model.NeighborhoodResult](opts.NeighborhoodCacheSize, opts.CacheTTL),
	}
}

// AddNode inserts or overwrites a node record and ensures adjacency slots
// exist for it. Name lookup is case-insensitive.
func (g *Index) AddNode(node *model.GraphNode) {
	if node == nil {
		return
	}
	g.nodes[node.ID] = node
	g.nodesByName[strings.ToLower(node.Name)] = node.ID
	if g.outEdges[node.ID] == nil {
		g.outEdges[node.ID] = make(map[int64][]*model.GraphEdge)
	}
	if g.inEdges[node.ID] == nil {
		g.inEdges[node.ID] = make(map[int64][]*model.GraphEdge)
	}
}

// AddEdge appends an edge to both adjacency maps. Endpoints are not checked
// against the node table: the upstream pipeline may stream edges before the
// nodes they reference, and adjacency slots are created on demand. Malformed
// weights are the one thing rejected at this boundary, since they would
// silently corrupt path costs.
func (g *Index) AddEdge(edge *model.GraphEdge) error {
	if edge == nil {
		return fmt.Errorf("nil edge")
	}
	if edge.Weight <= 0 {
		return fmt.Errorf("edge (%d,%d,%s): weight must be positive, got %g",
			edge.FromID, edge.ToID, edge.RelationshipType, edge.Weight)
	}
	if edge.Confidence < 0 || edge.Confidence > 1 {
		return fmt.Errorf("edge (%d,%d,%s): confidence must be in [0,1], got %g",
			edge.FromID, edge.ToID, edge.RelationshipType, edge.Confidence)
	}

	if g.outEdges[edge.FromID] == nil {
		g.outEdges[edge.FromID] = make(map[int64][]*model.GraphEdge)
	}
	g.outEdges[edge.FromID][edge.ToID] = append(g.outEdges[edge.FromID][edge.ToID], edge)

	if g.inEdges[edge.ToID] == nil {
		g.inEdges[edge.ToID] = make(map[int64][]*model.GraphEdge)
	}
	g.inEdges[edge.ToID][edge.FromID] = append(g.inEdges[edge.ToID][edge.FromID], edge)

	return nil
}

// GetNode returns the node with the given id, or nil.
func (g *Index) GetNode(id int64) *model.GraphNode {
	return g.nodes[id]
}

// GetNodeByName returns the node with the given display name, matched
// case-insensitively, or nil.
func (g *Index) GetNodeByName(name string) *model.GraphNode {
	id, ok := g.nodesByName[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return g.nodes[id]
}

// NodeCount returns the number of nodes in the table.
func (g *Index) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the total number of edges; parallel edges count
// individually.
func (g *Index) EdgeCount() int {
	count := 0
	for _, neighbors := range g.outEdges {
		for _, edges := range neighbors {
			count += len(edges)
		}
	}
	return count
}

// ClearCaches empties both result caches. Mutations do not invalidate cached
// results on their own; callers that mutate after serving queries must clear
// explicitly.
func (g *Index) ClearCaches() {
	g.pathCache.purge()
	g.neighborhoodCache.purge()
}

// PathCacheStats reports counters for the shortest-path cache.
func (g *Index) PathCacheStats() CacheStats {
	return g.pathCache.stats()
}

// NeighborhoodCacheStats reports counters for the neighborhood cache.
func (g *Index) NeighborhoodCacheStats() CacheStats {
	return g.neighborhoodCache.stats()
}
