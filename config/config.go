package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Range is an inclusive-start, exclusive-end vertex range [start, end), as
// it appears in the JSON "partitions" list.
type Range [2]int

// Fusion is an ordered pair (left, right) of unit indices to fuse, as it
// appears in the JSON "fusions" list.
type Fusion [2]int

// Config is the decoded shape of spec.md §6's JSON configuration.
type Config struct {
	// ThreadPoolSize is the worker pool size; 0 means "use all cores"
	// (spec.md §5). Default: 1.
	ThreadPoolSize int `json:"thread_pool_size"`

	// Partitions is the ordered list of disjoint leaf vertex ranges.
	// Default: empty, which the planner interprets as a single partition
	// spanning the whole graph.
	Partitions []Range `json:"partitions"`

	// Fusions is the ordered list of (left, right) unit-index pairs to
	// fuse. Default: empty.
	Fusions []Fusion `json:"fusions"`

	// EdgesInFusionUnit selects the software-friendly edge placement
	// policy when true, the hardware-faithful one when false. Default:
	// true. A nil value after decoding means "not specified"; callers
	// should use EdgesInFusionUnitOrDefault.
	EdgesInFusionUnit *bool `json:"edges_in_fusion_unit"`
}

// DefaultThreadPoolSize is applied when the JSON document omits
// thread_pool_size entirely.
const DefaultThreadPoolSize = 1

// EdgesInFusionUnitOrDefault returns the configured policy, defaulting to
// true (software-friendly, de-duplicated edges) when unset.
func (c *Config) EdgesInFusionUnitOrDefault() bool {
	if c.EdgesInFusionUnit == nil {
		return true
	}
	return *c.EdgesInFusionUnit
}

// Load decodes a Config from r. Unknown top-level keys are rejected
// (spec.md §6 "Unknown keys are rejected"); thread_pool_size defaults to
// DefaultThreadPoolSize when the key is absent, matching the teacher's
// convention of applying defaults after a strict decode rather than
// relying on zero values that would be indistinguishable from an explicit
// "0" (which spec.md gives its own meaning: auto-detect core count).
func Load(r io.Reader) (*Config, error) {
	var raw map[string]json.RawMessage
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: reading input: %w", err)
	}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("config: invalid JSON: %w", err)
	}
	_, hasThreadPoolSize := raw["thread_pool_size"]

	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()
	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return nil, fmt.Errorf("%w: %v", ErrUnknownField, err)
		}
		return nil, fmt.Errorf("config: decoding configuration: %w", err)
	}
	if !hasThreadPoolSize {
		cfg.ThreadPoolSize = DefaultThreadPoolSize
	}
	return cfg, nil
}
