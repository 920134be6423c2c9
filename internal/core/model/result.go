package model

// PathResult is the outcome of a shortest-path search. Distance is the sum
// of inverse edge weights along the path; Confidence is 1/(1+Distance).
type PathResult struct {
	Path       []int64 `json:"path"`
	Distance   float64 `json:"distance"`
	Confidence float64 `json:"confidence"`
}

// NeighborhoodResult is the outcome of a bounded neighborhood expansion.
// Edges are deduplicated by (from, to, relationship type).
type NeighborhoodResult struct {
	Nodes []*GraphNode `json:"nodes"`
	Edges []*GraphEdge `json:"edges"`
	Depth int          `json:"depth"`
}

// Statistics summarizes the current contents of the index. EdgeCount counts
// parallel edges individually.
type Statistics struct {
	NodeCount      int     `json:"node_count"`
	EdgeCount      int     `json:"edge_count"`
	CommunityCount int     `json:"community_count"`
	AverageDegree  float64 `json:"average_degree"`
	HubCount       int     `json:"hub_count"`
}
