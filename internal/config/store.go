package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"lifecell/internal/core"
	"lifecell/internal/fileutil"
)

// Settings is the persisted part of a session: the last speed and whether
// the simulation was paused.
type Settings struct {
	Speed  int  `toml:"speed"`
	Paused bool `toml:"paused"`
}

// LoadSettings reads settings from a TOML file. Missing files surface as
// fs.ErrNotExist through errors.Is.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{Speed: core.DefaultRate, Paused: true}
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings %s: %w", path, err)
	}
	if !core.Rate(s.Speed).Valid() {
		return Settings{}, fmt.Errorf("settings %s: speed %d outside %d-%d", path, s.Speed, core.MinRate, core.MaxRate)
	}
	return s, nil
}

// SaveSettings writes settings atomically.
func SaveSettings(path string, s Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return fileutil.WriteAtomic(path, buf.Bytes())
}
