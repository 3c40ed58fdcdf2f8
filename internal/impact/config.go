package impact

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// TargetConfig is the default impact site in geographic degrees.
type TargetConfig struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// MotionConfig controls meteor spawning and flight.
type MotionConfig struct {
	SpawnOffset        [3]float64 `yaml:"spawnOffset"`
	BaseStep           float64    `yaml:"baseStep"`
	ReferenceVelocity  float64    `yaml:"referenceVelocity"`
	ProximityThreshold float64    `yaml:"proximityThreshold"`
	EscapeRadius       float64    `yaml:"escapeRadius"`
	MeteorRadius       float64    `yaml:"meteorRadius"`
}

// DeflectionConfig controls the one-shot deflection impulse.
type DeflectionConfig struct {
	MinDistance       float64    `yaml:"minDistance"`
	BaseDeltaV        float64    `yaml:"baseDeltaV"`
	ReferenceVelocity float64    `yaml:"referenceVelocity"`
	ReferenceMass     float64    `yaml:"referenceMass"`
	MarkerOffset      [3]float64 `yaml:"markerOffset"`
}

// ExplosionConfig shapes the particle burst spawned on impact.
type ExplosionConfig struct {
	Particles   int        `yaml:"particles"`
	RadiusMin   float64    `yaml:"radiusMin"`
	RadiusRange float64    `yaml:"radiusRange"`
	Life        int        `yaml:"life"`
	Color       [3]float64 `yaml:"color"`
	PointSize   float64    `yaml:"pointSize"`
}

// ShockwaveConfig shapes the expanding shell spawned on impact.
type ShockwaveConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Life      int     `yaml:"life"`
	Radius    float64 `yaml:"radius"`
	ScaleStep float64 `yaml:"scaleStep"`
	Opacity   float64 `yaml:"opacity"`
}

// FlashConfig controls the full-screen flash after an impact.
type FlashConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Delay    time.Duration `yaml:"delay"`
	Duration time.Duration `yaml:"duration"`
	Step     time.Duration `yaml:"step"`
}

// Config holds every tunable of the impact simulation.
type Config struct {
	Seed       int64            `yaml:"seed"`
	Target     TargetConfig     `yaml:"target"`
	Defaults   Parameters       `yaml:"defaults"`
	Motion     MotionConfig     `yaml:"motion"`
	Deflection DeflectionConfig `yaml:"deflection"`
	Explosion  ExplosionConfig  `yaml:"explosion"`
	Shockwave  ShockwaveConfig  `yaml:"shockwave"`
	Flash      FlashConfig      `yaml:"flash"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed:     1337,
		Target:   TargetConfig{Lat: 26, Lon: 30},
		Defaults: DefaultParameters(),
		Motion: MotionConfig{
			SpawnOffset:        [3]float64{2, 2, 2},
			BaseStep:           0.02,
			ReferenceVelocity:  20000,
			ProximityThreshold: 0.05,
			EscapeRadius:       12,
			MeteorRadius:       0.05,
		},
		Deflection: DeflectionConfig{
			MinDistance:       0.5,
			BaseDeltaV:        0.01,
			ReferenceVelocity: 20000,
			ReferenceMass:     1e8,
			MarkerOffset:      [3]float64{0.2, 0.2, 0.2},
		},
		Explosion: ExplosionConfig{
			Particles:   3000,
			RadiusMin:   0.05,
			RadiusRange: 0.05,
			Life:        120,
			Color:       [3]float64{1, 0.2, 0},
			PointSize:   0.02,
		},
		Shockwave: ShockwaveConfig{
			Enabled:   true,
			Life:      60,
			Radius:    0.05,
			ScaleStep: 0.08,
			Opacity:   0.8,
		},
		Flash: FlashConfig{
			Enabled:  true,
			Delay:    time.Second,
			Duration: time.Second,
			Step:     16 * time.Millisecond,
		},
	}
}

// ClassicConfig reproduces the explosion-only variant: no shockwave and no
// screen flash.
func ClassicConfig() Config {
	c := DefaultConfig()
	c.Shockwave.Enabled = false
	c.Flash.Enabled = false
	return c
}

// Offset returns the spawn offset as a vector.
func (c MotionConfig) Offset() mgl64.Vec3 { return mgl64.Vec3(c.SpawnOffset) }

// SpeedScale maps a clamped real-world velocity onto a per-tick step in scene
// units.
func (c MotionConfig) SpeedScale(velocity float64) float64 {
	if c.ReferenceVelocity <= 0 {
		return c.BaseStep
	}
	return c.BaseStep * velocity / c.ReferenceVelocity
}

// DeltaV returns the deflection impulse magnitude for p.
func (c DeflectionConfig) DeltaV(p Parameters) float64 {
	return c.BaseDeltaV * (p.Velocity / c.ReferenceVelocity) * (c.ReferenceMass / p.Mass)
}

// Validate reports configuration values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Motion.BaseStep <= 0 {
		errs = append(errs, fmt.Errorf("motion.baseStep must be positive, got %v", c.Motion.BaseStep))
	}
	if c.Motion.ReferenceVelocity <= 0 {
		errs = append(errs, fmt.Errorf("motion.referenceVelocity must be positive, got %v", c.Motion.ReferenceVelocity))
	}
	if c.Motion.ProximityThreshold <= 0 {
		errs = append(errs, fmt.Errorf("motion.proximityThreshold must be positive, got %v", c.Motion.ProximityThreshold))
	}
	// A straight flight can only skip over the threshold sphere when one step
	// is at least its diameter.
	if c.Motion.BaseStep > 0 && c.Motion.ReferenceVelocity > 0 {
		if fastest := c.Motion.SpeedScale(MaxVelocity); fastest >= 2*c.Motion.ProximityThreshold {
			errs = append(errs, fmt.Errorf("motion step %.4f at max velocity can overshoot proximity %.4f", fastest, c.Motion.ProximityThreshold))
		}
	}
	if reach := c.Motion.Offset().Len() + 1; c.Motion.EscapeRadius <= reach {
		errs = append(errs, fmt.Errorf("motion.escapeRadius must exceed %.3f, got %v", reach, c.Motion.EscapeRadius))
	}
	if c.Deflection.ReferenceVelocity <= 0 || c.Deflection.ReferenceMass <= 0 {
		errs = append(errs, errors.New("deflection reference velocity and mass must be positive"))
	}
	if c.Deflection.MinDistance < 0 {
		errs = append(errs, fmt.Errorf("deflection.minDistance must not be negative, got %v", c.Deflection.MinDistance))
	}
	if c.Explosion.Particles < 0 {
		errs = append(errs, fmt.Errorf("explosion.particles must not be negative, got %d", c.Explosion.Particles))
	}
	if c.Explosion.Life <= 0 {
		errs = append(errs, fmt.Errorf("explosion.life must be positive, got %d", c.Explosion.Life))
	}
	if c.Explosion.RadiusMin < 0 || c.Explosion.RadiusRange < 0 {
		errs = append(errs, errors.New("explosion radii must not be negative"))
	}
	if c.Shockwave.Enabled && c.Shockwave.Life <= 0 {
		errs = append(errs, fmt.Errorf("shockwave.life must be positive, got %d", c.Shockwave.Life))
	}
	if c.Flash.Enabled && (c.Flash.Duration <= 0 || c.Flash.Step <= 0) {
		errs = append(errs, errors.New("flash duration and step must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read impact config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse impact config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid impact config: %w", err)
	}
	return cfg, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overrides fields of base from a string map. Unknown keys and
// unparseable values are ignored.
func ApplyMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["lat"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Target.Lat = parsed
		}
	}
	if v, ok := cfg["lon"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Target.Lon = parsed
		}
	}
	if v, ok := cfg["mass"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Defaults.Mass = parsed
		}
	}
	if v, ok := cfg["velocity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Defaults.Velocity = parsed
		}
	}
	if v, ok := cfg["strength"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Defaults.Strength = parsed
		}
	}
	if v, ok := cfg["base_step"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Motion.BaseStep = parsed
		}
	}
	if v, ok := cfg["proximity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Motion.ProximityThreshold = parsed
		}
	}
	if v, ok := cfg["escape_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Motion.EscapeRadius = parsed
		}
	}
	if v, ok := cfg["min_deflect_distance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Deflection.MinDistance = parsed
		}
	}
	if v, ok := cfg["particles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Explosion.Particles = parsed
		}
	}
	if v, ok := cfg["explosion_life"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Explosion.Life = parsed
		}
	}
	if v, ok := cfg["shockwaves"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Shockwave.Enabled = parsed
		}
	}
	if v, ok := cfg["flash"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Flash.Enabled = parsed
		}
	}
	if v, ok := cfg["flash_delay"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
			c.Flash.Delay = parsed
		}
	}
	return c
}
