package model

// Community is a named cluster of nodes supplied by an external
// community-detection step. ParentID and Level describe the hierarchy the
// producer computed; the index only stores them.
type Community struct {
	ID            int64          `json:"id"`
	ParentID      *int64         `json:"parent_id,omitempty"`
	Level         int            `json:"level"`
	Name          string         `json:"name"`
	Size          int            `json:"size"`
	CohesionScore float64        `json:"cohesion_score"`
	MemberIDs     []int64        `json:"member_ids"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}
