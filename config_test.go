package taskspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSchedulerConfigIsPositive(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	if cfg.CapacityBytes == 0 {
		t.Error("expected a non-zero default capacity")
	}
	if cfg.Workers <= 0 {
		t.Error("expected a positive default worker count")
	}
	if cfg.DefaultTeamSize <= 0 {
		t.Error("expected a positive default team size")
	}
}

func TestLoadSchedulerConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadSchedulerConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("expected a missing config file to not be an error, got %v", err)
	}
	if cfg != DefaultSchedulerConfig() {
		t.Error("expected a missing config file to yield exactly the defaults")
	}
}

func TestLoadSchedulerConfigMergesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data, err := json.Marshal(map[string]any{"workers": 9})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadSchedulerConfig(path)
	if err != nil {
		t.Fatalf("LoadSchedulerConfig: %v", err)
	}
	if cfg.Workers != 9 {
		t.Errorf("expected Workers overridden to 9, got %d", cfg.Workers)
	}
	if cfg.CapacityBytes != DefaultSchedulerConfig().CapacityBytes {
		t.Errorf("expected CapacityBytes to remain the default, got %d", cfg.CapacityBytes)
	}
}

func TestLoadSchedulerConfigMalformedJSONIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadSchedulerConfig(path); err == nil {
		t.Error("expected malformed JSON to be an error")
	}
}

func TestNewSchedulerDefaultsZeroWorkersToOne(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	cfg.Workers = 0

	s, err := NewScheduler(cfg)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	f := HostSpawn(s, TaskSingle(Regular), func(c *Context) (int, error) { return 1, nil })
	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got, err := f.Get(); err != nil || got != 1 {
		t.Errorf("expected the zero-worker scheduler to still run tasks, got %d, %v", got, err)
	}
}
