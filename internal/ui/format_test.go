package ui

import (
	"strings"
	"testing"

	"meteorfall/internal/core"
	"meteorfall/internal/scene"
)

type namedSim struct{ name string }

func (s namedSim) Name() string      { return s.name }
func (namedSim) Reset(int64)         {}
func (namedSim) Step()               {}
func (namedSim) Scene() *scene.Graph { return scene.NewGraph() }

func TestBuildTitle(t *testing.T) {
	cases := []struct {
		sim  core.Sim
		want string
	}{
		{nil, "Controls"},
		{namedSim{""}, "Controls"},
		{namedSim{"impact"}, "Impact Controls"},
		{namedSim{"impact-classic"}, "Impact classic Controls"},
	}
	for _, tc := range cases {
		if got := buildTitle(tc.sim); got != tc.want {
			t.Fatalf("buildTitle(%v) = %q, want %q", tc.sim, got, tc.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	log := core.ParameterControl{Logarithmic: true, Step: 0.25}
	if got := formatValue(log, 1e8); got != "1.00e+08" {
		t.Fatalf("log value = %q", got)
	}
	lin := core.ParameterControl{Step: 1000}
	if got := formatValue(lin, 20000); got != "20000" {
		t.Fatalf("linear value = %q", got)
	}
	fine := core.ParameterControl{Step: 0.05}
	if got := formatValue(fine, 0.5); got != "0.50" {
		t.Fatalf("fine value = %q", got)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("too late to deflect: the meteor is too close to Earth", 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Fatalf("line %q longer than 20", l)
		}
	}
	if got := strings.Join(lines, " "); got != "too late to deflect: the meteor is too close to Earth" {
		t.Fatalf("wrap lost words: %q", got)
	}
	if got := wrap("x", 0); len(got) != 1 {
		t.Fatalf("zero width wrap = %v", got)
	}
}
