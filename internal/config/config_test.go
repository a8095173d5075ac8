package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	require.Equal(t, DefaultSize, c.Size)
	require.True(t, c.Paused)
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"size":         "12",
		"speed":        "9",
		"paused":       "false",
		"workers":      "3",
		"seed":         "7",
		"initial":      "glider",
		"history":      "20",
		"fault_policy": "RETRY",
		"settings":     "",
		"history_file": "h.json",
	})
	require.Equal(t, 12, c.Size)
	require.Equal(t, 9, c.Speed)
	require.False(t, c.Paused)
	require.Equal(t, 3, c.Workers)
	require.EqualValues(t, 7, c.Seed)
	require.Equal(t, "glider", c.InitialMode)
	require.Equal(t, 20, c.HistoryCapacity)
	require.Equal(t, FaultRetry, c.FaultPolicy)
	require.Empty(t, c.SettingsPath)
	require.Equal(t, "h.json", c.HistoryPath)
	require.NoError(t, c.Validate())

	bad := FromMap(map[string]string{"size": "x", "workers": "-2", "history": "0"})
	require.Equal(t, DefaultConfig(), bad)
}

func TestValidateRanges(t *testing.T) {
	cases := map[string]func(*Config){
		"small":   func(c *Config) { c.Size = MinSize - 1 },
		"large":   func(c *Config) { c.Size = MaxSize + 1 },
		"slow":    func(c *Config) { c.Speed = 0 },
		"fast":    func(c *Config) { c.Speed = 31 },
		"workers": func(c *Config) { c.Workers = -1 },
		"history": func(c *Config) { c.HistoryCapacity = 0 },
		"policy":  func(c *Config) { c.FaultPolicy = "ignore" },
	}
	for name, mutate := range cases {
		c := DefaultConfig()
		mutate(&c)
		require.Error(t, c.Validate(), name)
	}
}

func TestWorkerCount(t *testing.T) {
	c := DefaultConfig()
	c.Size = 5
	c.Workers = 100
	require.Equal(t, 25, c.WorkerCount())
	c.Workers = 3
	require.Equal(t, 3, c.WorkerCount())
	c.Workers = 0
	require.GreaterOrEqual(t, c.WorkerCount(), 1)
}

func TestBind(t *testing.T) {
	c := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-size", "40", "-speed", "12", "-fault-policy", "retry", "-history-file", ""}))
	require.Equal(t, 40, c.Size)
	require.Equal(t, 12, c.Speed)
	require.Equal(t, FaultRetry, c.FaultPolicy)
	require.Empty(t, c.HistoryPath)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	_, err := LoadSettings(path)
	require.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, SaveSettings(path, Settings{Speed: 17, Paused: false}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "speed = 17")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, Settings{Speed: 17, Paused: false}, s)
}

func TestLoadSettingsDefaultsAndErrors(t *testing.T) {
	dir := t.TempDir()
	partial := filepath.Join(dir, "partial.toml")
	require.NoError(t, os.WriteFile(partial, []byte("paused = false\n"), 0o644))
	s, err := LoadSettings(partial)
	require.NoError(t, err)
	require.Equal(t, Settings{Speed: 5, Paused: false}, s)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("speed = [\n"), 0o644))
	_, err = LoadSettings(broken)
	require.Error(t, err)

	fast := filepath.Join(dir, "fast.toml")
	require.NoError(t, os.WriteFile(fast, []byte("speed = 40\n"), 0o644))
	_, err = LoadSettings(fast)
	require.Error(t, err)
}
