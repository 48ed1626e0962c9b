package physics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	IndexBBTree      = "bbtree"
	IndexSpatialHash = "spatial_hash"
)

// Config selects the broad-phase index backing the registry.
type Config struct {
	Index     string  `yaml:"index"`
	CellSize  float64 `yaml:"cell_size"`
	CellCount int     `yaml:"cell_count"`
	Debug     bool    `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Index:     IndexBBTree,
		CellSize:  32,
		CellCount: 1000,
	}
}

// ParseConfig reads YAML over the defaults, so omitted keys keep their
// default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("physics: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("physics: load config %s: %w", path, err)
	}
	return ParseConfig(data)
}

func (c Config) Validate() error {
	switch c.Index {
	case IndexBBTree, "":
	case IndexSpatialHash:
		if c.CellSize <= 0 || c.CellCount <= 0 {
			return fmt.Errorf("%w: spatial_hash needs positive cell_size and cell_count", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown index %q", ErrInvalidConfig, c.Index)
	}
	return nil
}
