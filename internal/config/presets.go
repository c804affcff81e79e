package config

import "sort"

// Presets tweak DefaultConfig for a particular feel.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"calm": func(c *Config) {
		c.Breathing.Amplitude = 0.02
		c.Breathing.Frequency = 0.8
		c.Boundary.Limit = 4
		c.Scene.RingSpin = 0.05
	},
	"frenzy": func(c *Config) {
		c.Physics.LinearDamping = 0.3
		c.Physics.AngularDamping = 0.3
		c.Physics.Restitution = 0.8
		c.Split.BaseSpeed = 0.5
		c.Split.SpeedJitter = 0.5
		c.Split.LateralSpeed = 0.25
		c.Breathing.Frequency = 4
	},
	"swarm": func(c *Config) {
		c.Scene.InitialScale = 1.2
		c.Split.Ratio = 0.8
		c.Split.MinScale = 0.1
		c.Split.MaxObjects = 256
		c.Boundary.Limit = 2.5
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
