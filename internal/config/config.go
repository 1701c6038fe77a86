package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/pixelmark/internal/theme"
)

// Label is one entry in the label palette. Order matters: it fixes the
// class index in exported datasets.
type Label struct {
	Name  string
	Color string // #RRGGBB, empty means auto-assigned
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	TemplateDir  string
	HistoryLimit int
	BrushRadius  int
	Labels       []Label
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // Default to empty to allow fallback to Env/Default
		HistoryLimit: 100,
		BrushRadius:  12,
		Notify: Notify{
			Save:   false,
			Export: false,
			Copy:   false,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// LabelNames returns the palette names in order.
func (c *Config) LabelNames() []string {
	names := make([]string, 0, len(c.Labels))
	for _, l := range c.Labels {
		names = append(names, l.Name)
	}
	return names
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.TemplateDir != "" {
		fmt.Fprintf(&sb, "template_dir = %s\n", c.TemplateDir)
	}
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	fmt.Fprintf(&sb, "brush_radius = %d\n", c.BrushRadius)
	sb.WriteString("\n")

	// Labels section, in palette order
	if len(c.Labels) > 0 {
		sb.WriteString("[labels]\n")
		for _, l := range c.Labels {
			if l.Color != "" {
				fmt.Fprintf(&sb, "%s = %s\n", l.Name, l.Color)
			} else {
				fmt.Fprintf(&sb, "%s =\n", l.Name)
			}
		}
		sb.WriteString("\n")
	}

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", toHex(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", toHex(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", toHex(t.ToolbarBackground))
		fmt.Fprintf(&sb, "TabBackground: %s\n", toHex(t.TabBackground))
		fmt.Fprintf(&sb, "TabActive: %s\n", toHex(t.TabActive))
		fmt.Fprintf(&sb, "TabHover: %s\n", toHex(t.TabHover))
		fmt.Fprintf(&sb, "TabText: %s\n", toHex(t.TabText))
		fmt.Fprintf(&sb, "TabTextActive: %s\n", toHex(t.TabTextActive))
		fmt.Fprintf(&sb, "TabTextHover: %s\n", toHex(t.TabTextHover))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", toHex(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", toHex(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", toHex(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonText: %s\n", toHex(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonTextHover: %s\n", toHex(t.ButtonTextHover))
		fmt.Fprintf(&sb, "ButtonTextPress: %s\n", toHex(t.ButtonTextPress))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", toHex(t.ButtonBorder))
		fmt.Fprintf(&sb, "CheckerLight: %s\n", toHex(t.CheckerLight))
		fmt.Fprintf(&sb, "CheckerDark: %s\n", toHex(t.CheckerDark))
		fmt.Fprintf(&sb, "Shape: %s\n", toHex(t.Shape))
		fmt.Fprintf(&sb, "ShapePending: %s\n", toHex(t.ShapePending))
		fmt.Fprintf(&sb, "Selection: %s\n", toHex(t.Selection))
		fmt.Fprintf(&sb, "Handle: %s\n", toHex(t.Handle))
		fmt.Fprintf(&sb, "Vertex: %s\n", toHex(t.Vertex))
		fmt.Fprintf(&sb, "MaskTint: %s\n", toHex(t.MaskTint))
		fmt.Fprintf(&sb, "LabelText: %s\n", toHex(t.LabelText))
		fmt.Fprintf(&sb, "LabelBack: %s\n", toHex(t.LabelBack))
		fmt.Fprintf(&sb, "Crosshair: %s\n", toHex(t.Crosshair))
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	if rgba, ok := c.(color.RGBA); ok {
		if rgba.A == 255 {
			return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
		}
		return fmt.Sprintf("#%02X%02X%02X%02X", rgba.R, rgba.G, rgba.B, rgba.A)
	}

	// Fallback for non-color.RGBA types (though unlikely in this app's context)
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "#00000000"
	}
	r8 := uint8(r >> 8)
	g8 := uint8(g >> 8)
	b8 := uint8(b >> 8)
	a8 := uint8(a >> 8)

	if a8 == 255 {
		return fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r8, g8, b8, a8)
}
