package app

import (
	"flag"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"meteorfall/internal/impact"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-sim", "impact-classic", "-tps", "30", "-set", "lat=10,lon=20", "-set", "flash=false", "-config", "x.yaml"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Sim != "impact-classic" || cfg.TPS != 30 {
		t.Fatalf("cfg = %+v", cfg)
	}
	opts := cfg.SimOptions()
	if opts["lat"] != "10" || opts["lon"] != "20" || opts["flash"] != "false" || opts["config"] != "x.yaml" {
		t.Fatalf("options = %v", opts)
	}
	if got := cfg.Overrides.String(); got != "lat=10,lon=20,flash=false" {
		t.Fatalf("String() = %q", got)
	}
	if got := strings.Join(cfg.Overrides.Keys(), ","); got != "flash,lat,lon" {
		t.Fatalf("Keys() = %q", got)
	}
}

func TestKVListRejectsMalformed(t *testing.T) {
	var l KVList
	if err := l.Set("novalue"); err == nil {
		t.Fatal("missing '=' accepted")
	}
	if err := l.Set("=1"); err == nil {
		t.Fatal("empty key accepted")
	}
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: "meteorfall_test"})
	if err != nil {
		t.Fatalf("gdata.Open: %v", err)
	}
	return m
}

func TestPreferencesRoundTrip(t *testing.T) {
	store := openTestStore(t)
	pm := NewPreferencesManager(store, discard())
	if err := pm.Load(); err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if pm.Get() != DefaultPreferences() {
		t.Fatalf("empty store prefs = %+v", pm.Get())
	}

	sim := impact.New(impact.DefaultConfig(), impact.WithLogger(discard()))
	sim.SetFloatParameter("velocity", 45000)
	sim.SetTargetLatLon(-20, 100)
	pm.Capture(sim)
	if err := pm.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewPreferencesManager(store, discard())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := reloaded.Get()
	if got.Params.Velocity != 45000 || math.Abs(got.TargetLat+20) > 1e-9 || math.Abs(got.TargetLon-100) > 1e-9 {
		t.Fatalf("reloaded = %+v", got)
	}

	fresh := impact.New(impact.DefaultConfig(), impact.WithLogger(discard()))
	reloaded.Apply(fresh)
	if fresh.Pending().Velocity != 45000 {
		t.Fatalf("pending = %+v after Apply", fresh.Pending())
	}
	lat, lon := fresh.TargetLatLon()
	if math.Abs(lat+20) > 1e-9 || math.Abs(lon-100) > 1e-9 {
		t.Fatalf("target = %v, %v after Apply", lat, lon)
	}
}

func TestPreferencesCorruptData(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveObjectProp(prefsObject, prefsProperty, []byte("params: [not, a, map")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}
	pm := NewPreferencesManager(store, discard())
	if err := pm.Load(); err == nil {
		t.Fatal("corrupt preferences accepted")
	}
	if pm.Get() != DefaultPreferences() {
		t.Fatal("corrupt preferences must fall back to defaults")
	}
}

func TestPreferencesClampOnSet(t *testing.T) {
	pm := NewPreferencesManager(nil, discard())
	pm.Set(Preferences{Params: impact.Parameters{Mass: 1, Velocity: 1e9, Strength: 1e7}})
	p := pm.Get().Params
	if p.Mass != impact.MinMass || p.Velocity != impact.MaxVelocity {
		t.Fatalf("params = %+v", p)
	}
	if err := pm.Save(); err != nil {
		t.Fatalf("in-memory Save: %v", err)
	}
}
