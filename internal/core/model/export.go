package model

import "time"

// The visualization export uses string ids ("node-<id>", "edge-<from>-<to>")
// so downstream rendering can treat the output as an opaque element list
// regardless of the internal numeric keys. Field names follow the wire
// protocol, not the internal snake_case convention.

// VizNodeData is the payload of one exported node element.
type VizNodeData struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	Type            string  `json:"type"`
	CommunityID     *int64  `json:"communityId,omitempty"`
	CommunityName   string  `json:"communityName,omitempty"`
	Size            float64 `json:"size"`
	CentralityScore float64 `json:"centralityScore"`
}

// VizNode wraps node data in the generic {data: {...}} envelope.
type VizNode struct {
	Data VizNodeData `json:"data"`
}

// VizEdgeData is the payload of one exported edge element. EdgeCount is only
// set on aggregated records.
type VizEdgeData struct {
	ID               string  `json:"id"`
	Source           string  `json:"source"`
	Target           string  `json:"target"`
	RelationshipType string  `json:"relationshipType,omitempty"`
	Weight           float64 `json:"weight"`
	Confidence       float64 `json:"confidence"`
	EdgeCount        int     `json:"edgeCount,omitempty"`
}

// VizEdge wraps edge data in the generic {data: {...}} envelope.
type VizEdge struct {
	Data VizEdgeData `json:"data"`
}

// ExportOptions selects the node subset to export. NodeIDs wins over
// CommunityIDs; when neither is given the top MaxNodes nodes by centrality
// are exported. AggregateEdges collapses parallel edges between the same
// ordered pair into a single record.
type ExportOptions struct {
	NodeIDs        []int64 `json:"node_ids,omitempty"`
	CommunityIDs   []int64 `json:"community_ids,omitempty"`
	MaxNodes       int     `json:"max_nodes,omitempty"`
	AggregateEdges bool    `json:"aggregate_edges,omitempty"`
}

// VizExport is one visualization snapshot.
type VizExport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Nodes       []VizNode `json:"nodes"`
	Edges       []VizEdge `json:"edges"`
}
