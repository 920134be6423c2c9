package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/lattice/pkg/logger"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(uri, username, password string) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	logger.Info("Connected to Memgraph", "uri", uri)
	return &MemgraphDriver{Driver: driver}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	// Memgraph accepts Cypher index creation; failures usually mean the
	// index already exists, so they are logged and skipped.
	queries := []string{
		"CREATE INDEX ON :Entity(id);",
		"CREATE INDEX ON :Entity(name);",
		"CREATE INDEX ON :Community(id);",
		"CREATE INDEX ON :Community(level);",
	}

	for _, q := range queries {
		_, err := d.ExecuteQuery(ctx, q, nil)
		if err != nil {
			logger.Warn("Failed to create index", "query", q, "error", err)
		}
	}

	return nil
}
