package impact

import (
	"math"
	"strconv"

	"meteorfall/internal/geom"
)

// Input bounds. Values outside are clamped, never rejected.
const (
	MinMass     = 1e6
	MaxMass     = 1e12
	MinVelocity = 11000.0
	MaxVelocity = 72000.0
	MinStrength = 1e6
	MaxStrength = 1e9
)

// Parameters are the user inputs captured for one simulation run.
type Parameters struct {
	Mass     float64 `yaml:"mass"`
	Velocity float64 `yaml:"velocity"`
	Strength float64 `yaml:"strength"`
}

// DefaultParameters returns the start-up inputs.
func DefaultParameters() Parameters {
	return Parameters{Mass: 1e8, Velocity: 20000, Strength: 1e7}
}

// Capture clamps raw inputs into their valid ranges.
func Capture(mass, velocity, strength float64) Parameters {
	return Parameters{
		Mass:     geom.Clamp(mass, MinMass, MaxMass),
		Velocity: geom.Clamp(velocity, MinVelocity, MaxVelocity),
		Strength: geom.Clamp(strength, MinStrength, MaxStrength),
	}
}

// Clamped returns p with every field clamped.
func (p Parameters) Clamped() Parameters {
	return Capture(p.Mass, p.Velocity, p.Strength)
}

// ParseParameters clamps textual inputs. Unparseable text falls back to the
// lower bound of the field, mirroring a NaN slider value.
func ParseParameters(mass, velocity, strength string) Parameters {
	return Capture(parseOrNaN(mass), parseOrNaN(velocity), parseOrNaN(strength))
}

func parseOrNaN(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
