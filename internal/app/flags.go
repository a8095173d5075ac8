package app

import "flag"

// Config holds the window parameters of the GUI build.
type Config struct {
	Scale    int
	TPS      int
	HUDWidth int
	Resume   bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 16, TPS: 60, HUDWidth: 200, Resume: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "window ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels (0 hides it)")
	fs.BoolVar(&c.Resume, "resume", c.Resume, "resume the saved session instead of starting fresh")
}
