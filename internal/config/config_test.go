package config

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/annotations
history_limit = 50
brush_radius = 20

[labels]
person = #FF0000
car = #00FF00
tree =

[notify]
save = true
export = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
Selection = #00FFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}

	if cfg.SaveDir != "/tmp/annotations" {
		t.Errorf("Expected save_dir '/tmp/annotations', got '%s'", cfg.SaveDir)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("Expected history_limit 50, got %d", cfg.HistoryLimit)
	}
	if cfg.BrushRadius != 20 {
		t.Errorf("Expected brush_radius 20, got %d", cfg.BrushRadius)
	}

	if len(cfg.Labels) != 3 {
		t.Fatalf("Expected 3 labels, got %v", cfg.Labels)
	}
	if cfg.Labels[0].Name != "person" || cfg.Labels[0].Color != "#FF0000" {
		t.Errorf("Unexpected first label: %+v", cfg.Labels[0])
	}
	if cfg.Labels[2].Name != "tree" || cfg.Labels[2].Color != "" {
		t.Errorf("Label without color should parse: %+v", cfg.Labels[2])
	}

	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if cfg.Notify.Export {
		t.Error("Expected notify.export to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
	if theme.Selection.G != 0xFF || theme.Selection.B != 0xFF {
		t.Errorf("Unexpected Selection color: %+v", theme.Selection)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.HistoryLimit != 100 {
		t.Errorf("Expected default history_limit 100, got %d", cfg.HistoryLimit)
	}
	if cfg.BrushRadius != 12 {
		t.Errorf("Expected default brush_radius 12, got %d", cfg.BrushRadius)
	}
}

func TestInvalidValues(t *testing.T) {
	if _, err := Parse(strings.NewReader("history_limit = zero")); err == nil {
		t.Error("Expected error for non-numeric history_limit")
	}
	if _, err := Parse(strings.NewReader("brush_radius = -3")); err == nil {
		t.Error("Expected error for negative brush_radius")
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/shots
history_limit = 25
brush_radius = 8

[labels]
person = #FF0000
car =

[notify]
save = true
export = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.HistoryLimit != cfg2.HistoryLimit {
		t.Errorf("HistoryLimit mismatch: %d vs %d", cfg.HistoryLimit, cfg2.HistoryLimit)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if len(cfg.Labels) != len(cfg2.Labels) {
		t.Fatalf("Label count mismatch: %v vs %v", cfg.Labels, cfg2.Labels)
	}
	for i := range cfg.Labels {
		if cfg.Labels[i] != cfg2.Labels[i] {
			t.Errorf("Label %d mismatch: %+v vs %+v", i, cfg.Labels[i], cfg2.Labels[i])
		}
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if t1.Background != t2.Background {
		t.Errorf("Theme background mismatch: %v vs %v", t1.Background, t2.Background)
	}
}
