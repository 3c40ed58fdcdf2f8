package impact

import (
	"fmt"
	"strconv"

	"meteorfall/internal/core"
)

const (
	paramMass     = "mass"
	paramVelocity = "velocity"
	paramStrength = "strength"
)

// Parameters returns the pending inputs and the active configuration for the
// HUD.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	lat, lon := s.TargetLatLon()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Meteor",
			Params: []core.Parameter{
				floatParam(paramMass, "Mass (kg)", s.pending.Mass, "Meteor mass; heavier bodies deflect less."),
				floatParam(paramVelocity, "Velocity (m/s)", s.pending.Velocity, "Entry velocity; scales the per-tick step."),
				floatParam(paramStrength, "Strength (Pa)", s.pending.Strength, "Material strength, recorded with the run."),
			},
		},
		{
			Name: "Target",
			Params: []core.Parameter{
				floatParam("lat", "Latitude", lat, "Impact site latitude in degrees."),
				floatParam("lon", "Longitude", lon, "Impact site longitude in degrees."),
			},
		},
		{
			Name: "Effects",
			Params: []core.Parameter{
				{Key: "particles", Label: "Particles", Type: core.ParamTypeInt, Value: strconv.Itoa(s.cfg.Explosion.Particles)},
				{Key: "explosion_life", Label: "Explosion life", Type: core.ParamTypeInt, Value: strconv.Itoa(s.cfg.Explosion.Life)},
				{Key: "shockwaves", Label: "Shockwaves", Type: core.ParamTypeBool, Value: strconv.FormatBool(s.cfg.Shockwave.Enabled)},
				{Key: "flash", Label: "Flash", Type: core.ParamTypeBool, Value: strconv.FormatBool(s.cfg.Flash.Enabled)},
			},
		},
	}}
}

func floatParam(key, label string, v float64, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeFloat,
		Value:       strconv.FormatFloat(v, 'g', 6, 64),
		Description: desc,
	}
}

// ParameterControls lists the HUD sliders.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: paramMass, Label: "Mass", Type: core.ParamTypeFloat, Step: 0.25, Logarithmic: true, Min: MinMass, Max: MaxMass, HasMin: true, HasMax: true},
		{Key: paramVelocity, Label: "Velocity", Type: core.ParamTypeFloat, Step: 1000, Min: MinVelocity, Max: MaxVelocity, HasMin: true, HasMax: true},
		{Key: paramStrength, Label: "Strength", Type: core.ParamTypeFloat, Step: 0.25, Logarithmic: true, Min: MinStrength, Max: MaxStrength, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a pending input. Values are clamped; the change
// takes effect on the next launch.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	p := s.pending
	switch key {
	case paramMass:
		p.Mass = value
	case paramVelocity:
		p.Velocity = value
	case paramStrength:
		p.Strength = value
	default:
		return false
	}
	s.pending = p.Clamped()
	return true
}

// Actions lists the HUD buttons.
func (s *Simulation) Actions() []core.Action {
	return []core.Action{
		{Key: "simulate", Label: "Simulate", Hint: "Space"},
		{Key: "deflect", Label: "Deflect", Hint: "D"},
		{Key: "reset", Label: "Reset", Hint: "R"},
	}
}

// Trigger runs a HUD action by key.
func (s *Simulation) Trigger(key string) error {
	switch key {
	case "simulate":
		s.Launch()
		return nil
	case "deflect":
		_, err := s.Deflect()
		return err
	case "reset":
		s.Reset(0)
		return nil
	default:
		return fmt.Errorf("unknown action %q", key)
	}
}
