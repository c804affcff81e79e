package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a HUD color scheme. Ring colors the torus wireframe; spheres
// keep their material colors.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Ring       lipgloss.Color
}

// Palettes named after the look of cells under a microscope.
var (
	ThemePetri = Theme{
		Name:       "petri",
		Primary:    lipgloss.Color("#7fd1c7"), // culture teal
		Secondary:  lipgloss.Color("#c9e4de"),
		Accent:     lipgloss.Color("#f2c14e"),
		Background: lipgloss.Color("#0d1b1e"),
		Text:       lipgloss.Color("#eef6f4"),
		Muted:      lipgloss.Color("#5b7a78"),
		Success:    lipgloss.Color("#8bd17c"),
		Warning:    lipgloss.Color("#f2c14e"),
		Error:      lipgloss.Color("#e4572e"),
		Ring:       lipgloss.Color("#c9e4de"),
	}

	ThemeStain = Theme{
		Name:       "stain",
		Primary:    lipgloss.Color("#e07bb5"), // eosin
		Secondary:  lipgloss.Color("#6a4c93"), // hematoxylin
		Accent:     lipgloss.Color("#ffd6ec"),
		Background: lipgloss.Color("#1a0f1f"),
		Text:       lipgloss.Color("#fbeaf3"),
		Muted:      lipgloss.Color("#7d5f80"),
		Success:    lipgloss.Color("#9bd18b"),
		Warning:    lipgloss.Color("#f4a259"),
		Error:      lipgloss.Color("#d7263d"),
		Ring:       lipgloss.Color("#b392d6"),
	}

	ThemeDarkfield = Theme{
		Name:       "darkfield",
		Primary:    lipgloss.Color("#f5f5f0"),
		Secondary:  lipgloss.Color("#b8b8b0"),
		Accent:     lipgloss.Color("#9ad1ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#f5f5f0"),
		Muted:      lipgloss.Color("#55554f"),
		Success:    lipgloss.Color("#a3e4a1"),
		Warning:    lipgloss.Color("#e8c872"),
		Error:      lipgloss.Color("#e26d5a"),
		Ring:       lipgloss.Color("#8a8a84"),
	}

	ThemeFluorescence = Theme{
		Name:       "fluorescence",
		Primary:    lipgloss.Color("#39ff6a"), // GFP
		Secondary:  lipgloss.Color("#3d7dff"), // DAPI
		Accent:     lipgloss.Color("#ff3d7f"),
		Background: lipgloss.Color("#02040a"),
		Text:       lipgloss.Color("#d8ffe2"),
		Muted:      lipgloss.Color("#2f5a3c"),
		Success:    lipgloss.Color("#39ff6a"),
		Warning:    lipgloss.Color("#ffe14d"),
		Error:      lipgloss.Color("#ff3d7f"),
		Ring:       lipgloss.Color("#3d7dff"),
	}

	ThemeAgar = Theme{
		Name:       "agar",
		Primary:    lipgloss.Color("#e9b872"), // amber gel
		Secondary:  lipgloss.Color("#c47f3a"),
		Accent:     lipgloss.Color("#f7e3af"),
		Background: lipgloss.Color("#24170b"),
		Text:       lipgloss.Color("#fff4e0"),
		Muted:      lipgloss.Color("#8a6a45"),
		Success:    lipgloss.Color("#a6c36f"),
		Warning:    lipgloss.Color("#f0a202"),
		Error:      lipgloss.Color("#d1495b"),
		Ring:       lipgloss.Color("#f7e3af"),
	}

	// CurrentTheme is the palette the HUD draws with.
	CurrentTheme = ThemePetri

	// Themes lists the palettes in the order `t` cycles through them.
	Themes = []Theme{
		ThemePetri,
		ThemeStain,
		ThemeDarkfield,
		ThemeFluorescence,
		ThemeAgar,
	}
)

// GetTheme returns the theme called name, or petri when there is none.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePetri
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one and returns it.
func NextTheme() Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			break
		}
	}
	return CurrentTheme
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
