package config

import (
	"strings"
)

// Preset is a named pair of typical return and fee rates for a fund type.
type Preset struct {
	Name        string  `yaml:"name" json:"name"`
	ReturnRate  float64 `yaml:"returnRate" json:"returnRate"`
	FeeRate     float64 `yaml:"feeRate" json:"feeRate"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// Presets returns the built-in investment presets.
func Presets() []Preset {
	return []Preset{
		{Name: "S&P 500 Index Fund", ReturnRate: 7, FeeRate: 0.1, Description: "Broad large-cap US index"},
		{Name: "NASDAQ 100", ReturnRate: 10, FeeRate: 0.2, Description: "Technology-weighted large caps"},
		{Name: "Conservative Bonds", ReturnRate: 4, FeeRate: 0.5, Description: "Investment-grade bond fund"},
		{Name: "High Growth Tech", ReturnRate: 12, FeeRate: 0.8, Description: "Actively managed growth fund"},
		{Name: "Dividend Aristocrats", ReturnRate: 8, FeeRate: 0.3, Description: "Long-running dividend growers"},
	}
}

// AllPresets returns the built-in presets followed by any configured ones.
// A configured preset replaces a built-in of the same name.
func (c *Configuration) AllPresets() []Preset {
	all := Presets()
	for _, custom := range c.Presets {
		replaced := false
		for i := range all {
			if strings.EqualFold(all[i].Name, custom.Name) {
				all[i] = custom
				replaced = true
				break
			}
		}
		if !replaced {
			all = append(all, custom)
		}
	}
	return all
}

// PresetIndex maps lower-cased preset names to presets.
func (c *Configuration) PresetIndex() map[string]Preset {
	all := c.AllPresets()
	index := make(map[string]Preset, len(all))
	for _, preset := range all {
		index[strings.ToLower(preset.Name)] = preset
	}
	return index
}

// FindPreset looks up a preset by case-insensitive name.
func (c *Configuration) FindPreset(name string) (Preset, bool) {
	preset, ok := c.PresetIndex()[strings.ToLower(name)]
	return preset, ok
}
