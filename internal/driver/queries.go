package driver

const (
	LoadEntitiesQuery = `
		MATCH (n:Entity)
		RETURN n.id AS id,
			n.name AS name,
			n.type AS type,
			n.metadata AS metadata,
			n.pagerank AS pagerank
	`

	LoadRelationshipsQuery = `
		MATCH (a:Entity)-[r:RELATES_TO]->(b:Entity)
		RETURN a.id AS from_id,
			b.id AS to_id,
			r.relationship_type AS relationship_type,
			r.weight AS weight,
			r.confidence AS confidence
	`

	LoadCommunitiesQuery = `
		MATCH (c:Community)
		RETURN c.id AS id,
			c.parent_id AS parent_id,
			c.level AS level,
			c.name AS name,
			c.cohesion_score AS cohesion_score,
			c.member_ids AS member_ids
	`
)
