package config

import (
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"lifecell/internal/core"
)

// Grid size limits.
const (
	MinSize     = 5
	MaxSize     = 80
	DefaultSize = 30
)

// Fault policies applied when a generation fails.
const (
	FaultHalt  = "halt"
	FaultRetry = "retry"
)

// Config controls a simulation session.
type Config struct {
	Size    int
	Speed   int
	Paused  bool
	Workers int
	Seed    int64

	// InitialMode seeds a session that has no history to resume: "random",
	// "empty", or a registered pattern name.
	InitialMode     string
	HistoryCapacity int
	FaultPolicy     string

	SettingsPath string
	HistoryPath  string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:            DefaultSize,
		Speed:           core.DefaultRate,
		Paused:          true,
		Seed:            42,
		InitialMode:     "random",
		HistoryCapacity: 100,
		FaultPolicy:     FaultHalt,
		SettingsPath:    "lifecell.toml",
		HistoryPath:     "lifecell_history.json",
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Size = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Speed = parsed
		}
	}
	if v, ok := cfg["paused"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Paused = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["initial"]; ok && v != "" {
		c.InitialMode = v
	}
	if v, ok := cfg["history"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.HistoryCapacity = parsed
		}
	}
	if v, ok := cfg["fault_policy"]; ok {
		c.FaultPolicy = strings.ToLower(v)
	}
	if v, ok := cfg["settings"]; ok {
		c.SettingsPath = v
	}
	if v, ok := cfg["history_file"]; ok {
		c.HistoryPath = v
	}
	return c
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, fmt.Sprintf("interior grid size (%d-%d)", MinSize, MaxSize))
	fs.IntVar(&c.Speed, "speed", c.Speed, fmt.Sprintf("generations per second (%d-%d)", core.MinRate, core.MaxRate))
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start paused")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker goroutines (0 = one per CPU)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random resets")
	fs.StringVar(&c.InitialMode, "initial", c.InitialMode, "initial grid: random, empty or a pattern name")
	fs.IntVar(&c.HistoryCapacity, "history", c.HistoryCapacity, "generations kept for undo/redo")
	fs.StringVar(&c.FaultPolicy, "fault-policy", c.FaultPolicy, "on a failed generation: halt or retry")
	fs.StringVar(&c.SettingsPath, "settings", c.SettingsPath, "settings file (empty disables)")
	fs.StringVar(&c.HistoryPath, "history-file", c.HistoryPath, "history file (empty disables)")
}

// Validate checks ranges that make a session impossible to start.
func (c Config) Validate() error {
	if c.Size < MinSize || c.Size > MaxSize {
		return fmt.Errorf("grid size %d outside %d-%d", c.Size, MinSize, MaxSize)
	}
	if !core.Rate(c.Speed).Valid() {
		return fmt.Errorf("speed %d outside %d-%d", c.Speed, core.MinRate, core.MaxRate)
	}
	if c.Workers < 0 {
		return fmt.Errorf("negative worker count %d", c.Workers)
	}
	if c.HistoryCapacity < 1 {
		return fmt.Errorf("history capacity %d must be positive", c.HistoryCapacity)
	}
	switch c.FaultPolicy {
	case FaultHalt, FaultRetry:
	default:
		return fmt.Errorf("unknown fault policy %q", c.FaultPolicy)
	}
	return nil
}

// WorkerCount resolves Workers against the grid: 0 means one per CPU, and
// there are never more workers than cells.
func (c Config) WorkerCount() int {
	w := c.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	return min(max(w, 1), c.Size*c.Size)
}
