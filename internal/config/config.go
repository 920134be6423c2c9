package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port  string `toml:"port"`
	Debug bool   `toml:"debug"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type GraphConfig struct {
	DefaultNeighborhoodDepth int     `toml:"default_neighborhood_depth"`
	DefaultNeighborhoodNodes int     `toml:"default_neighborhood_nodes"`
	DefaultPathDepth         float64 `toml:"default_path_depth"`
	HubFraction              float64 `toml:"hub_fraction"`
	ExportMaxNodes           int     `toml:"export_max_nodes"`
}

type CacheConfig struct {
	PathCapacity         int `toml:"path_capacity"`
	NeighborhoodCapacity int `toml:"neighborhood_capacity"`
	TTLSeconds           int `toml:"ttl_seconds"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Graph    GraphConfig    `toml:"graph"`
	Cache    CacheConfig    `toml:"cache"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Graph: GraphConfig{
			DefaultNeighborhoodDepth: 2,
			DefaultNeighborhoodNodes: 100,
			DefaultPathDepth:         5,
			HubFraction:              0.05,
			ExportMaxNodes:           1000,
		},
		Cache: CacheConfig{
			PathCapacity:         1000,
			NeighborhoodCapacity: 500,
			TTLSeconds:           300,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
