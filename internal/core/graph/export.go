package graph

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/lattice/internal/core/model"
)

// GetStatistics summarizes the current index contents. Degree and hub
// figures reflect the last CalculateDegreeMetrics call.
func (g *Index) GetStatistics() *model.Statistics {
	return &model.Statistics{
		NodeCount:      len(g.nodes),
		EdgeCount:      g.EdgeCount(),
		CommunityCount: len(g.communities),
		AverageDegree:  g.averageDegree,
		HubCount:       len(g.hubNodes),
	}
}

// ExportForVisualization emits a render-ready subset of the graph. The node
// subset comes from an explicit id list, an explicit community list expanded
// to members, or — when neither is given — the top nodes by centrality
// (capped at MaxNodes, default 1000). Only edges between selected nodes are
// emitted; with AggregateEdges, parallel edges between the same ordered pair
// collapse into one record carrying the mean weight, the max confidence,
// and the collapsed edge count.
func (g *Index) ExportForVisualization(opts model.ExportOptions) *model.VizExport {
	selected := g.selectExportNodes(opts)

	export := &model.VizExport{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Nodes:       make([]model.VizNode, 0, len(selected)),
		Edges:       []model.VizEdge{},
	}

	selectedSet := make(map[int64]bool, len(selected))
	for _, node := range selected {
		selectedSet[node.ID] = true

		data := model.VizNodeData{
			ID:    fmt.Sprintf("node-%d", node.ID),
			Label: node.Name,
			Type:  node.Type,
			Size:  math.Log(1+float64(node.DegreeCount)) * 10,
		}
		if node.CommunityID != nil {
			data.CommunityID = node.CommunityID
			if c := g.communities[*node.CommunityID]; c != nil {
				data.CommunityName = c.Name
			}
		}
		if node.CentralityScore != nil {
			data.CentralityScore = *node.CentralityScore
		}
		export.Nodes = append(export.Nodes, model.VizNode{Data: data})
	}

	for _, node := range selected {
		for toID, edges := range g.outEdges[node.ID] {
			if !selectedSet[toID] {
				continue
			}
			if opts.AggregateEdges {
				export.Edges = append(export.Edges, aggregateEdges(node.ID, toID, edges))
				continue
			}
			for _, e := range edges {
				export.Edges = append(export.Edges, model.VizEdge{Data: model.VizEdgeData{
					ID:               fmt.Sprintf("edge-%d-%d-%s", e.FromID, e.ToID, e.RelationshipType),
					Source:           fmt.Sprintf("node-%d", e.FromID),
					Target:           fmt.Sprintf("node-%d", e.ToID),
					RelationshipType: e.RelationshipType,
					Weight:           e.Weight,
					Confidence:       e.Confidence,
				}})
			}
		}
	}

	return export
}

func (g *Index) selectExportNodes(opts model.ExportOptions) []*model.GraphNode {
	maxNodes := opts.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultExportNodes
	}

	if len(opts.NodeIDs) > 0 {
		nodes := make([]*model.GraphNode, 0, len(opts.NodeIDs))
		for _, id := range opts.NodeIDs {
			if node := g.nodes[id]; node != nil {
				nodes = append(nodes, node)
			}
		}
		return nodes
	}

	if len(opts.CommunityIDs) > 0 {
		seen := make(map[int64]bool)
		var nodes []*model.GraphNode
		for _, communityID := range opts.CommunityIDs {
			c := g.communities[communityID]
			if c == nil {
				continue
			}
			for _, memberID := range c.MemberIDs {
				if seen[memberID] {
					continue
				}
				seen[memberID] = true
				if node := g.nodes[memberID]; node != nil {
					nodes = append(nodes, node)
				}
			}
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
		return nodes
	}

	return g.GetTopNodesByCentrality(maxNodes)
}

func aggregateEdges(fromID, toID int64, edges []*model.GraphEdge) model.VizEdge {
	totalWeight := 0.0
	maxConfidence := 0.0
	for _, e := range edges {
		totalWeight += e.Weight
		if e.Confidence > maxConfidence {
			maxConfidence = e.Confidence
		}
	}
	return model.VizEdge{Data: model.VizEdgeData{
		ID:         fmt.Sprintf("edge-%d-%d", fromID, toID),
		Source:     fmt.Sprintf("node-%d", fromID),
		Target:     fmt.Sprintf("node-%d", toID),
		Weight:     totalWeight / float64(len(edges)),
		Confidence: maxConfidence,
		EdgeCount:  len(edges),
	}}
}
