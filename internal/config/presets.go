package config

import "sort"

var Presets = map[string]*Config{
	"reference": {
		Electrons: 1000, Seed: 1, Generator: "libc", Workers: 1, AngleMode: "reference",
	},
	"tiny": {
		Electrons: 10, Seed: 1, Generator: "libc", Workers: 1, AngleMode: "reference",
	},
	"stress": {
		Electrons: 20000, Seed: 1, Generator: "libc", Workers: 1, AngleMode: "reference",
	},
	"parallel": {
		Electrons: 20000, Seed: 1, Generator: "libc", Workers: 8, AngleMode: "reference",
	},
	"physical": {
		Electrons: 1000, Seed: 1, Generator: "pcg", Workers: 1, AngleMode: "physical",
	},
}

// GetPreset returns a copy of the named preset layered over the defaults, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Electrons = p.Electrons
	cfg.Seed = p.Seed
	cfg.Generator = p.Generator
	cfg.Workers = p.Workers
	cfg.AngleMode = p.AngleMode
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
