package core

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/lattice/internal/core/common"
	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/core/model"
	"github.com/agenthands/lattice/internal/driver"
	"github.com/agenthands/lattice/pkg/logger"
)

// Loader rebuilds the in-memory index from the graph store. The index is
// transient by design: the store written by the extraction pipeline is the
// source of truth, and every session starts from a fresh Rebuild.
type Loader struct {
	Driver  driver.GraphDriver
	Options graph.Options
}

func NewLoader(d driver.GraphDriver, opts graph.Options) *Loader {
	return &Loader{Driver: d, Options: opts}
}

// Rebuild streams entities, relationships and communities out of the store
// into a new index, attaches stored pagerank scores, and recomputes degree
// metrics. The returned index starts with empty caches.
func (l *Loader) Rebuild(ctx context.Context) (*graph.Index, error) {
	start := time.Now()
	idx := graph.NewIndex(l.Options)

	nodeCount, err := l.loadEntities(ctx, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}

	edgeCount, err := l.loadRelationships(ctx, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to load relationships: %w", err)
	}

	communityCount, err := l.loadCommunities(ctx, idx)
	if err != nil {
		return nil, fmt.Errorf("failed to load communities: %w", err)
	}

	idx.CalculateDegreeMetrics()
	idx.ClearCaches()

	logger.Info("Rebuilt graph index",
		"nodes", nodeCount,
		"edges", edgeCount,
		"communities", communityCount,
		"duration", time.Since(start))

	return idx, nil
}

func (l *Loader) loadEntities(ctx context.Context, idx *graph.Index) (int, error) {
	result, err := l.Driver.ExecuteQuery(ctx, driver.LoadEntitiesQuery, nil)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rec := range result.Records {
		id, ok := recordInt(rec, "id")
		if !ok {
			logger.Warn("Skipping entity without id")
			continue
		}

		node := &model.GraphNode{
			ID:   id,
			Name: recordString(rec, "name"),
			Type: recordString(rec, "type"),
		}

		if raw := recordString(rec, "metadata"); raw != "" {
			metadata, err := common.ParseJSON[map[string]any](raw)
			if err != nil {
				logger.Warn("Skipping unparsable entity metadata", "id", id, "error", err)
			} else {
				node.Metadata = metadata
			}
		}

		idx.AddNode(node)
		count++

		if pagerank, ok := recordFloat(rec, "pagerank"); ok {
			idx.SetNodeMetrics(id, &model.GraphMetrics{PageRank: &pagerank})
		}
	}
	return count, nil
}

func (l *Loader) loadRelationships(ctx context.Context, idx *graph.Index) (int, error) {
	result, err := l.Driver.ExecuteQuery(ctx, driver.LoadRelationshipsQuery, nil)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rec := range result.Records {
		fromID, okFrom := recordInt(rec, "from_id")
		toID, okTo := recordInt(rec, "to_id")
		if !okFrom || !okTo {
			logger.Warn("Skipping relationship without endpoint ids")
			continue
		}

		weight, ok := recordFloat(rec, "weight")
		if !ok {
			weight = 1.0
		}
		confidence, ok := recordFloat(rec, "confidence")
		if !ok {
			confidence = 1.0
		}

		edge := &model.GraphEdge{
			FromID:           fromID,
			ToID:             toID,
			RelationshipType: recordString(rec, "relationship_type"),
			Weight:           weight,
			Confidence:       confidence,
		}
		if err := idx.AddEdge(edge); err != nil {
			logger.Warn("Skipping malformed relationship", "error", err)
			continue
		}
		count++
	}
	return count, nil
}

func (l *Loader) loadCommunities(ctx context.Context, idx *graph.Index) (int, error) {
	result, err := l.Driver.ExecuteQuery(ctx, driver.LoadCommunitiesQuery, nil)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, rec := range result.Records {
		id, ok := recordInt(rec, "id")
		if !ok {
			logger.Warn("Skipping community without id")
			continue
		}

		community := &model.Community{
			ID:        id,
			Level:     int(recordIntOr(rec, "level", 0)),
			Name:      recordString(rec, "name"),
			MemberIDs: recordIntSlice(rec, "member_ids"),
		}
		if parentID, ok := recordInt(rec, "parent_id"); ok {
			community.ParentID = &parentID
		}
		if cohesion, ok := recordFloat(rec, "cohesion_score"); ok {
			community.CohesionScore = cohesion
		}
		community.Size = len(community.MemberIDs)

		idx.AddCommunity(community)
		count++
	}
	return count, nil
}

// Record values come back as any; Memgraph returns integers as int64 and
// may return null for absent properties.

func recordInt(rec *neo4j.Record, key string) (int64, bool) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func recordIntOr(rec *neo4j.Record, key string, fallback int64) int64 {
	if v, ok := recordInt(rec, key); ok {
		return v
	}
	return fallback
}

func recordFloat(rec *neo4j.Record, key string) (float64, bool) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordIntSlice(rec *neo4j.Record, key string) []int64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		if n, ok := item.(int64); ok {
			ids = append(ids, n)
		}
	}
	return ids
}
