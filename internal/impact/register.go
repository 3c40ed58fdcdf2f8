package impact

import (
	"log/slog"

	"meteorfall/internal/core"
)

func init() {
	core.Register("impact", func(cfg map[string]string) core.Sim {
		return fromRegistry("impact", DefaultConfig(), cfg)
	})
	core.Register("impact-classic", func(cfg map[string]string) core.Sim {
		return fromRegistry("impact-classic", ClassicConfig(), cfg)
	})
}

// fromRegistry builds a variant from base, an optional "config" YAML path and
// flag-style overrides. A config file that fails to load is logged and
// skipped; overrides that leave the config invalid are logged and dropped.
func fromRegistry(name string, base Config, cfg map[string]string) *Simulation {
	if path := cfg["config"]; path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			slog.Default().Error("impact config ignored", "path", path, "err", err)
		} else {
			// File values win over the variant preset except for the
			// variant's effect switches.
			loaded.Shockwave.Enabled = loaded.Shockwave.Enabled && base.Shockwave.Enabled
			loaded.Flash.Enabled = loaded.Flash.Enabled && base.Flash.Enabled
			base = loaded
		}
	}
	applied := ApplyMap(base, cfg)
	if err := applied.Validate(); err != nil {
		slog.Default().Error("impact overrides ignored", "sim", name, "err", err)
		applied = base
	}
	return New(applied, WithName(name), WithLogger(slog.Default()))
}
