package graphrepo

import (
	"os"
	"strconv"
)

// Config carries the knobs the spec leaves as open questions rather
// than universal behaviour (see DESIGN.md). Loaded the same way the
// teacher's pkg/config reads its NORNICDB_* environment variables.
type Config struct {
	// DedupDisjunction controls whether FindMany([]map[string]any)
	// deduplicates matches across query branches by node id. The
	// literal spec wording concatenates branch results without
	// deduplication, so this defaults to false.
	DedupDisjunction bool
}

// DefaultConfig returns the spec's literal default behaviour.
func DefaultConfig() Config {
	return Config{DedupDisjunction: false}
}

// LoadFromEnv returns DefaultConfig with GRAPHREPO_DEDUP_DISJUNCTION
// applied if set and parseable as a bool.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("GRAPHREPO_DEDUP_DISJUNCTION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DedupDisjunction = b
		}
	}
	return cfg
}
