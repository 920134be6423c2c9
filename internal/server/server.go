package server

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenthands/lattice/internal/config"
	"github.com/agenthands/lattice/internal/core"
	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/driver"
	"github.com/agenthands/lattice/internal/metrics"
	"github.com/agenthands/lattice/pkg/logger"
)

// Server owns the in-memory index and the lock that makes it safe to share.
// The index itself is lock-free: queries take the read lock, ingestion and
// reload take the write lock. The result caches carry their own locks, so
// cache population on the query path is safe under the read lock.
type Server struct {
	mu     sync.RWMutex
	index  *graph.Index
	loader *core.Loader
	cfg    *config.Config
}

// NewServer loads configuration, connects to the graph store, and performs
// the initial index rebuild.
func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("Could not load config file, using defaults", "path", cfgPath, "error", err)
		cfg = config.Default()
	}

	// Env vars override file values.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if os.Getenv("DEBUG") != "" {
		cfg.Server.Debug = true
	}
	if uri := os.Getenv("MEMGRAPH_URI"); uri != "" {
		cfg.Memgraph.URI = uri
	}
	if user := os.Getenv("MEMGRAPH_USER"); user != "" {
		cfg.Memgraph.User = user
	}
	if pass := os.Getenv("MEMGRAPH_PASSWORD"); pass != "" {
		cfg.Memgraph.Password = pass
	}

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	if err != nil {
		logger.Fatal("Failed to connect to Memgraph", "uri", cfg.Memgraph.URI, "error", err)
	}

	loader := core.NewLoader(d, indexOptions(cfg))

	idx, err := loader.Rebuild(context.Background())
	if err != nil {
		logger.Fatal("Failed to build initial index", "error", err)
	}

	s := &Server{
		index:  idx,
		loader: loader,
		cfg:    cfg,
	}
	s.publishIndexSize()
	return s
}

// NewServerWithIndex wires a server around an existing index. Used by tests
// and embedders that manage their own ingestion.
func NewServerWithIndex(idx *graph.Index, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{index: idx, cfg: cfg}
}

// Port returns the listen port from config, after env overrides.
func (s *Server) Port() string {
	return s.cfg.Server.Port
}

func indexOptions(cfg *config.Config) graph.Options {
	return graph.Options{
		PathCacheSize:         cfg.Cache.PathCapacity,
		NeighborhoodCacheSize: cfg.Cache.NeighborhoodCapacity,
		CacheTTL:              time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		HubFraction:           cfg.Graph.HubFraction,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	r.GET("/health", s.Health)

	r.GET("/nodes", s.GetNodeByName)
	r.POST("/nodes", s.AddNodes)
	r.GET("/nodes/:id", s.GetNode)
	r.GET("/nodes/:id/neighborhood", s.GetNeighborhood)
	r.GET("/nodes/:id/community", s.GetNodeCommunity)
	r.POST("/nodes/:id/metrics", s.SetNodeMetrics)

	r.POST("/edges", s.AddEdges)
	r.GET("/edges/intercommunity", s.GetInterCommunityEdges)

	r.GET("/communities", s.GetCommunitiesAtLevel)
	r.POST("/communities", s.AddCommunities)

	r.GET("/path", s.FindShortestPath)
	r.GET("/centrality/top", s.GetTopNodesByCentrality)
	r.GET("/hubs", s.GetHubNodes)
	r.GET("/statistics", s.GetStatistics)

	r.POST("/export", s.Export)
	r.POST("/reload", s.Reload)
	r.POST("/caches/clear", s.ClearCaches)
	r.POST("/metrics/degree", s.RecalculateDegreeMetrics)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// requestID tags every response with an id for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// observeQuery records query metrics and republishes cache counters. It runs
// deferred, after the handler has released its lock.
func (s *Server) observeQuery(operation string, start time.Time) {
	metrics.ObserveQuery(operation, start)

	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()

	pathStats := idx.PathCacheStats()
	metrics.SetCacheStats("path", pathStats.Hits, pathStats.Misses, pathStats.Evictions)
	neighborhoodStats := idx.NeighborhoodCacheStats()
	metrics.SetCacheStats("neighborhood", neighborhoodStats.Hits, neighborhoodStats.Misses, neighborhoodStats.Evictions)
}

func (s *Server) publishIndexSize() {
	s.mu.RLock()
	stats := s.index.GetStatistics()
	s.mu.RUnlock()
	metrics.SetIndexSize(stats.NodeCount, stats.EdgeCount, stats.CommunityCount)
}
