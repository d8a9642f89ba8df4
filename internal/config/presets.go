package config

import (
	"sort"

	"github.com/san-kum/ambient/internal/ambient"
)

var Themes = map[string]ambient.Theme{
	"sunset": ambient.SunsetTheme,
	"ocean":  {Name: "ocean", BaseHue: 170, HueRange: 50, Saturation: 55, Brightness: 85},
	"forest": {Name: "forest", BaseHue: 80, HueRange: 60, Saturation: 50, Brightness: 75},
	"dusk":   {Name: "dusk", BaseHue: 220, HueRange: 80, Saturation: 40, Brightness: 70},
}

func GetTheme(name string) (ambient.Theme, bool) {
	th, ok := Themes[name]
	return th, ok
}

// ListThemes returns the preset names sorted.
func ListThemes() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
