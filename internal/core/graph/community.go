package graph

import "github.com/agenthands/lattice/internal/core/model"

// AddCommunity stores a pre-computed community record, indexes it by level,
// and rebinds every member node to it. Membership is last-write-wins: a node
// listed in two communities belongs to whichever was added later. Hierarchy
// (ParentID/Level) is opaque producer metadata and is only indexed here.
func (g *Index) AddCommunity(community *model.Community) {
	if community == nil {
		return
	}
	if _, exists := g.communities[community.ID]; !exists {
		g.communityLevels[community.Level] = append(g.communityLevels[community.Level], community.ID)
	}
	g.communities[community.ID] = community

	for _, memberID := range community.MemberIDs {
		g.nodeToCommunity[memberID] = community.ID
		if node := g.nodes[memberID]; node != nil {
			id := community.ID
			node.CommunityID = &id
		}
	}
}

// GetCommunity returns the community with the given id, or nil.
func (g *Index) GetCommunity(id int64) *model.Community {
	return g.communities[id]
}

// GetCommunitiesAtLevel returns every community indexed at the given
// hierarchy level.
func (g *Index) GetCommunitiesAtLevel(level int) []*model.Community {
	ids := g.communityLevels[level]
	communities := make([]*model.Community, 0, len(ids))
	for _, id := range ids {
		if c := g.communities[id]; c != nil {
			communities = append(communities, c)
		}
	}
	return communities
}

// GetNodeCommunity returns the community the node currently belongs to, or
// nil if it was never listed in an AddCommunity call.
func (g *Index) GetNodeCommunity(nodeID int64) *model.Community {
	communityID, ok := g.nodeToCommunity[nodeID]
	if !ok {
		return nil
	}
	return g.communities[communityID]
}

// GetInterCommunityEdges returns every edge whose endpoints map to two
// different communities. Edges touching a node with no assigned community
// are skipped. The result is never nil, so the HTTP layer serializes an
// empty array rather than null.
func (g *Index) GetInterCommunityEdges() []*model.GraphEdge {
	result := []*model.GraphEdge{}
	for fromID, neighbors := range g.outEdges {
		fromCommunity, ok := g.nodeToCommunity[fromID]
		if !ok {
			continue
		}
		for toID, edges := range neighbors {
			toCommunity, ok := g.nodeToCommunity[toID]
			if !ok || toCommunity == fromCommunity {
				continue
			}
			result = append(result, edges...)
		}
	}
	return result
}
