// Package config loads execution-tunable settings for the row codec and
// operator framework, grounded on roach88-nysm's internal/harness
// scenario loader for its strict-YAML, defaults-unless-overridden idiom.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExecutionConfig holds the tunables spec §6.1/§4.1 name: the row size
// ceiling, the buffer's initial allocation when growing from empty, and
// the row count above which sort_Tree should be preferred over
// sort_InsertionLimited's bounded insertion sort.
type ExecutionConfig struct {
	MaxRowSize          int `yaml:"max_row_size"`
	InitialBufferSize   int `yaml:"initial_buffer_size"`
	SortSpillThreshold  int `yaml:"sort_spill_threshold"`
}

// DefaultConfig returns the settings matching the row codec's own
// constants (rowcodec.MaximumRecordLength, rowcodec's
// createRowInitialSize) so a caller that never loads a file gets
// consistent behavior with the codec's hardwired defaults.
func DefaultConfig() ExecutionConfig {
	return ExecutionConfig{
		MaxRowSize:         8 * 1024 * 1024,
		InitialBufferSize:  500,
		SortSpillThreshold: 10000,
	}
}

// LoadConfig reads an optional YAML file of overrides at path, starting
// from DefaultConfig. A missing file is not an error -- it means the
// caller wants the defaults. Unknown fields are rejected, catching a
// mistyped key rather than silently ignoring it.
func LoadConfig(path string) (ExecutionConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
