package app

import "flag"

// Config represents the command-line parameters for the application.
type Config struct {
	ConfigPath string
	Slot       string
	PIN        string
	Seed       int64
	Regen      bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file overriding the built-in settings")
	fs.StringVar(&c.Slot, "slot", c.Slot, "local save slot (default from config)")
	fs.StringVar(&c.PIN, "pin", c.PIN, "entry PIN (falls back to $GARDEN_PIN)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for terrain generation")
	fs.BoolVar(&c.Regen, "regen", c.Regen, "generate fresh terrain on start")
}
