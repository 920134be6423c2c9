package model

// GraphNode is an indexed entity in the knowledge graph. Nodes are produced
// by the upstream extraction pipeline and mutated in place when community or
// centrality data is attached after ingestion.
type GraphNode struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Type            string         `json:"type"`
	CommunityID     *int64         `json:"community_id,omitempty"`
	CentralityScore *float64       `json:"centrality_score,omitempty"`
	DegreeCount     int            `json:"degree_count"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}
