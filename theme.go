package constellation

import "maps"

// DefaultGroup is the group key used for skills without a group and for
// colour lookups of unknown groups.
const DefaultGroup = "default"

// GroupColors is the colour pair of one skill group: Color paints the
// node, its ring and links; Particle paints orbiting and flowing dots.
type GroupColors struct {
	Color    string `json:"color" toml:"color" yaml:"color"`
	Particle string `json:"particle" toml:"particle" yaml:"particle"`
}

// Theme holds the group palette and the class name that marks dark mode.
type Theme struct {
	Groups    map[string]GroupColors
	DarkClass string
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Groups: map[string]GroupColors{
			"frontend":   {Color: "#3b82f6", Particle: "#93c5fd"},
			"backend":    {Color: "#22c55e", Particle: "#86efac"},
			"tools":      {Color: "#f59e0b", Particle: "#fcd34d"},
			DefaultGroup: {Color: "#94a3b8", Particle: "#cbd5e1"},
		},
		DarkClass: "dark",
	}
}

// Colors returns the colour pair for group, or the default pair when the
// group is unknown.
func (t Theme) Colors(group string) GroupColors {
	if c, ok := t.Groups[group]; ok {
		return c
	}
	return t.Groups[DefaultGroup]
}

// merge overlays groups on top of t. The default entry can be replaced
// but never removed.
func (t Theme) merge(groups map[string]GroupColors) Theme {
	out := Theme{Groups: maps.Clone(t.Groups), DarkClass: t.DarkClass}
	if out.Groups == nil {
		out.Groups = make(map[string]GroupColors, len(groups))
	}
	for k, v := range groups {
		out.Groups[k] = v
	}
	if _, ok := out.Groups[DefaultGroup]; !ok {
		out.Groups[DefaultGroup] = DefaultTheme().Groups[DefaultGroup]
	}
	return out
}
