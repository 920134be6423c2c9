package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/lattice/internal/core/model"
	"github.com/agenthands/lattice/pkg/logger"
)

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetNode(c *gin.Context) {
	defer s.observeQuery("get_node", time.Now())

	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	s.mu.RLock()
	node := s.index.GetNode(id)
	s.mu.RUnlock()

	if node == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
		return
	}
	c.JSON(http.StatusOK, node)
}

func (s *Server) GetNodeByName(c *gin.Context) {
	defer s.observeQuery("get_node_by_name", time.Now())

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	s.mu.RLock()
	node := s.index.GetNodeByName(name)
	s.mu.RUnlock()

	if node == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
		return
	}
	c.JSON(http.StatusOK, node)
}

func (s *Server) GetNeighborhood(c *gin.Context) {
	defer s.observeQuery("neighborhood", time.Now())

	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}
	depth := queryInt(c, "depth", s.cfg.Graph.DefaultNeighborhoodDepth)
	maxNodes := queryInt(c, "max_nodes", s.cfg.Graph.DefaultNeighborhoodNodes)

	s.mu.RLock()
	result := s.index.GetNeighborhood(id, depth, maxNodes)
	s.mu.RUnlock()

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "node not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) FindShortestPath(c *gin.Context) {
	defer s.observeQuery("shortest_path", time.Now())

	from, err := strconv.ParseInt(c.Query("from"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an integer node id"})
		return
	}
	to, err := strconv.ParseInt(c.Query("to"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an integer node id"})
		return
	}
	maxDepth := queryFloat(c, "max_depth", s.cfg.Graph.DefaultPathDepth)

	s.mu.RLock()
	result := s.index.FindShortestPath(from, to, maxDepth)
	s.mu.RUnlock()

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no path found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) GetNodeCommunity(c *gin.Context) {
	defer s.observeQuery("node_community", time.Now())

	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	s.mu.RLock()
	community := s.index.GetNodeCommunity(id)
	s.mu.RUnlock()

	if community == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "node has no community"})
		return
	}
	c.JSON(http.StatusOK, community)
}

func (s *Server) GetCommunitiesAtLevel(c *gin.Context) {
	defer s.observeQuery("communities_at_level", time.Now())

	level := queryInt(c, "level", 0)

	s.mu.RLock()
	communities := s.index.GetCommunitiesAtLevel(level)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"communities": communities})
}

func (s *Server) GetTopNodesByCentrality(c *gin.Context) {
	defer s.observeQuery("top_centrality", time.Now())

	limit := queryInt(c, "limit", 10)

	s.mu.RLock()
	nodes := s.index.GetTopNodesByCentrality(limit)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"nodes": nodes})
}

func (s *Server) GetHubNodes(c *gin.Context) {
	defer s.observeQuery("hubs", time.Now())

	limit := queryInt(c, "limit", 10)

	s.mu.RLock()
	nodes := s.index.GetHubNodes(limit)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"nodes": nodes})
}

func (s *Server) GetStatistics(c *gin.Context) {
	defer s.observeQuery("statistics", time.Now())

	s.mu.RLock()
	stats := s.index.GetStatistics()
	s.mu.RUnlock()

	c.JSON(http.StatusOK, stats)
}

func (s *Server) GetInterCommunityEdges(c *gin.Context) {
	defer s.observeQuery("intercommunity_edges", time.Now())

	s.mu.RLock()
	edges := s.index.GetInterCommunityEdges()
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"edges": edges})
}

func (s *Server) Export(c *gin.Context) {
	defer s.observeQuery("export", time.Now())

	var opts model.ExportOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid export options"})
			return
		}
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = s.cfg.Graph.ExportMaxNodes
	}

	s.mu.RLock()
	export := s.index.ExportForVisualization(opts)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, export)
}

func (s *Server) AddNodes(c *gin.Context) {
	var nodes []*model.GraphNode
	if err := c.ShouldBindJSON(&nodes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid node payload"})
		return
	}

	s.mu.Lock()
	for _, node := range nodes {
		s.index.AddNode(node)
	}
	s.mu.Unlock()

	s.publishIndexSize()
	c.JSON(http.StatusOK, gin.H{"added": len(nodes)})
}

func (s *Server) AddEdges(c *gin.Context) {
	var edges []*model.GraphEdge
	if err := c.ShouldBindJSON(&edges); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edge payload"})
		return
	}

	added, skipped := 0, 0
	s.mu.Lock()
	for _, edge := range edges {
		if err := s.index.AddEdge(edge); err != nil {
			logger.Warn("Rejected edge", "error", err)
			skipped++
			continue
		}
		added++
	}
	s.mu.Unlock()

	s.publishIndexSize()
	c.JSON(http.StatusOK, gin.H{"added": added, "skipped": skipped})
}

func (s *Server) AddCommunities(c *gin.Context) {
	var communities []*model.Community
	if err := c.ShouldBindJSON(&communities); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community payload"})
		return
	}

	s.mu.Lock()
	for _, community := range communities {
		s.index.AddCommunity(community)
	}
	s.mu.Unlock()

	s.publishIndexSize()
	c.JSON(http.StatusOK, gin.H{"added": len(communities)})
}

func (s *Server) SetNodeMetrics(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	var m model.GraphMetrics
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid metrics payload"})
		return
	}

	s.mu.Lock()
	s.index.SetNodeMetrics(id, &m)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) RecalculateDegreeMetrics(c *gin.Context) {
	s.mu.Lock()
	s.index.CalculateDegreeMetrics()
	stats := s.index.GetStatistics()
	s.mu.Unlock()

	c.JSON(http.StatusOK, stats)
}

// Reload rebuilds the index from the graph store and swaps it in atomically.
// Cached results from the previous index are discarded with it.
func (s *Server) Reload(c *gin.Context) {
	if s.loader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no graph store configured"})
		return
	}

	idx, err := s.loader.Rebuild(c.Request.Context())
	if err != nil {
		logger.Error("Reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rebuild index"})
		return
	}

	s.mu.Lock()
	s.index = idx
	stats := s.index.GetStatistics()
	s.mu.Unlock()

	s.publishIndexSize()
	c.JSON(http.StatusOK, stats)
}

func (s *Server) ClearCaches(c *gin.Context) {
	s.mu.RLock()
	s.index.ClearCaches()
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer node id"})
		return 0, false
	}
	return v, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryFloat(c *gin.Context, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
