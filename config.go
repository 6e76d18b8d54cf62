package taskspace

import (
	"encoding/json"
	"fmt"
	"os"
)

// SchedulerConfig configures a Scheduler's memory pool, worker count, team
// scratch size, and default team size. DefaultSchedulerConfig returns the
// baseline values; LoadSchedulerConfig merges an optional project JSON file
// on top of them. NewScheduler replaces Workers <= 0 with 1 and uses every
// other field as given.
type SchedulerConfig struct {
	// CapacityBytes bounds the task-record memory pool.
	CapacityBytes uint64 `json:"capacityBytes"`
	// Log2Superblock is the pool's size-class rounding exponent (e.g. 6
	// rounds every allocation up to a multiple of 64 bytes).
	Log2Superblock uint `json:"log2Superblock"`
	// Workers is the number of concurrent worker goroutines Execute runs.
	Workers int `json:"workers"`
	// ScratchBytes is the per-team shared scratch buffer size.
	ScratchBytes int `json:"scratchBytes"`
	// DefaultTeamSize is used by TaskTeam/TaskTeamOn when the caller passes
	// teamSize <= 0 instead of an explicit team size.
	DefaultTeamSize int `json:"defaultTeamSize"`
}

// DefaultSchedulerConfig returns the baseline configuration used when no
// project file overrides it.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		CapacityBytes:   64 << 20, // 64 MiB
		Log2Superblock:  6,        // 64-byte size classes
		Workers:         4,
		ScratchBytes:    4096,
		DefaultTeamSize: 4,
	}
}

// LoadSchedulerConfig merges an optional JSON file at path over
// DefaultSchedulerConfig(). A missing file is not an error; malformed JSON
// is.
func LoadSchedulerConfig(path string) (SchedulerConfig, error) {
	cfg := DefaultSchedulerConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
