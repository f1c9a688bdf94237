// config.go holds the per-worker search knobs. The defaults can be
// overridden by an optional tundra.toml file in the working directory,
// which is handy when tuning without recompiling.

package engine

import (
	"os"

	"github.com/BurntSushi/toml"
)

// SearchConfig are the immutable knobs of one search worker.
type SearchConfig struct {
	// Depth is the target search depth in plies.
	Depth int `toml:"depth"`
	// NHelpers is the number of helper workers besides the main one.
	NHelpers int `toml:"helpers"`
	// MaxTTDepth is the deepest ply at which the transposition table is
	// read or written. Entries close to the leaves churn too fast to be
	// worth sharing.
	MaxTTDepth int `toml:"max_tt_depth"`
	// NumEarlyMoves is how many moves per node, after the first, are
	// searched at full depth before late move reductions kick in.
	NumEarlyMoves int `toml:"num_early_moves"`
	// LimitBatch is how many nodes a worker searches before pushing its
	// local count into the shared limit.
	LimitBatch uint64 `toml:"limit_batch"`
}

// NewSearchConfig returns the default configuration.
func NewSearchConfig() SearchConfig {
	return SearchConfig{
		Depth:         10,
		NHelpers:      0,
		MaxTTDepth:    7,
		NumEarlyMoves: 4,
		LimitBatch:    100,
	}
}

// LoadSearchConfig overlays the defaults with the values found in the
// TOML file at path. A missing file is not an error.
func LoadSearchConfig(path string) (SearchConfig, error) {
	cfg := NewSearchConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return NewSearchConfig(), err
	}
	return cfg, nil
}
