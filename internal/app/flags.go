package app

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	ConfigPath string
	Width      int
	Height     int
	HUDWidth   int
	Prefs      string
	LogLevel   string
	Overrides  KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "impact",
		Scale:    2,
		TPS:      60,
		Seed:     1337,
		Width:    960,
		Height:   640,
		HUDWidth: 260,
		Prefs:    "meteorfall",
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "planet shading downsample factor")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file with simulation tunables")
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "control panel width in pixels (0 hides it)")
	fs.StringVar(&c.Prefs, "prefs", c.Prefs, "preferences app name (empty disables persistence)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
	fs.Var(&c.Overrides, "set", "simulation override key=value (repeatable)")
}

// SimOptions returns the factory map for the selected simulation.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{}
	for _, kv := range c.Overrides {
		opts[kv.Key] = kv.Value
	}
	if c.ConfigPath != "" {
		opts["config"] = c.ConfigPath
	}
	return opts
}

// KeyValue is a single key=value override.
type KeyValue struct {
	Key   string
	Value string
}

// KVList collects repeated key=value flags.
type KVList []KeyValue

func (l *KVList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, kv := range *l {
		parts[i] = kv.Key + "=" + kv.Value
	}
	return strings.Join(parts, ",")
}

// Set parses one or more comma separated key=value pairs.
func (l *KVList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q: want key=value", part)
		}
		*l = append(*l, KeyValue{Key: key, Value: strings.TrimSpace(value)})
	}
	return nil
}

// Keys returns the override keys in sorted order.
func (l KVList) Keys() []string {
	keys := make([]string, 0, len(l))
	for _, kv := range l {
		keys = append(keys, kv.Key)
	}
	sort.Strings(keys)
	return keys
}
