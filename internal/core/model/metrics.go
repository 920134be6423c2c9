package model

// GraphMetrics carries per-node centrality figures computed externally.
// All fields are optional; a nil field means the producer never supplied it.
type GraphMetrics struct {
	Betweenness           *float64 `json:"betweenness,omitempty"`
	Closeness             *float64 `json:"closeness,omitempty"`
	Eigenvector           *float64 `json:"eigenvector,omitempty"`
	PageRank              *float64 `json:"pagerank,omitempty"`
	ClusteringCoefficient *float64 `json:"clustering_coefficient,omitempty"`
}
