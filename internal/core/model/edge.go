package model

// GraphEdge is a directed, typed relationship between two nodes. Multiple
// edges may exist between the same ordered pair, with the same or different
// relationship types; the index never deduplicates them.
type GraphEdge struct {
	FromID           int64   `json:"from_id"`
	ToID             int64   `json:"to_id"`
	RelationshipType string  `json:"relationship_type"`
	Weight           float64 `json:"weight"`     // positive, higher = stronger
	Confidence       float64 `json:"confidence"` // 0..1
}
