package app

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/pixelmark/internal/config"
	"github.com/example/pixelmark/internal/editor"
)

func TestLabelSwatch(t *testing.T) {
	if got := labelSwatch("#FF8000"); got != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("labelSwatch(#FF8000) = %v", got)
	}
	if got := labelSwatch("  #00ff00 "); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("labelSwatch with whitespace = %v", got)
	}
	gray := color.RGBA{128, 128, 128, 255}
	if got := labelSwatch(""); got != gray {
		t.Errorf("labelSwatch(\"\") = %v, want gray fallback", got)
	}
	if got := labelSwatch("#zzzzzz"); got != gray {
		t.Errorf("labelSwatch(bad hex) = %v, want gray fallback", got)
	}
}

func TestShortcutListSatisfiesInterface(t *testing.T) {
	var keys KeyboardShortcuts = shortcutList{{Rune: 'z'}, {Rune: 'y'}}
	got := keys.KeyboardShortcuts()
	if len(got) != 2 || got[0].Rune != 'z' || got[1].Rune != 'y' {
		t.Errorf("KeyboardShortcuts() = %v", got)
	}
}

func TestDrawShortcutsLayout(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 800, 600))
	var triggered []string
	drawShortcuts(dst, 800, 600, false, 1.5, func(a string) { triggered = append(triggered, a) })

	if len(shortcutRects) == 0 {
		t.Fatal("no shortcut rects laid out")
	}
	prev := 0
	for i := range shortcutRects {
		r := shortcutRects[i].rect
		if r.Min.Y < 600-bottomHeight-2 {
			t.Errorf("shortcut %d rect %v not in the bottom bar", i, r)
		}
		if r.Min.X < prev {
			t.Errorf("shortcut %d rect %v overlaps previous", i, r)
		}
		prev = r.Max.X
	}

	// the undo entry comes first and routes through the trigger callback
	shortcutRects[0].Activate()
	if len(triggered) != 1 || triggered[0] != "undo" {
		t.Errorf("triggered = %v, want [undo]", triggered)
	}
}

func TestDrawShortcutsBuildingMode(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	drawShortcuts(dst, 400, 300, true, 1, func(string) {})
	if len(shortcutRects) != 2 {
		t.Fatalf("building mode shortcuts = %d, want 2", len(shortcutRects))
	}
}

func TestDrawToolbarLayout(t *testing.T) {
	toolButtons = []*CacheButton{
		{Button: &ToolButton{label: "S:Select", tool: editor.ToolSelect}},
		{Button: &ToolButton{label: "B:Box", tool: editor.ToolBox}},
	}
	labelButtons = []*CacheButton{
		{Button: &LabelButton{label: config.Label{Name: "car", Color: "#FF0000"}}},
	}
	templateButtons = nil
	t.Cleanup(func() {
		toolButtons = nil
		labelButtons = nil
	})

	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	drawToolbar(dst, 300, editor.ToolBox, "car", "")

	for i, cb := range toolButtons {
		want := image.Rect(0, tabHeight+i*24, toolbarWidth, tabHeight+(i+1)*24)
		if cb.Rect() != want {
			t.Errorf("tool button %d rect = %v, want %v", i, cb.Rect(), want)
		}
	}
	lr := labelButtons[0].Rect()
	if lr.Min.Y < tabHeight+len(toolButtons)*24 {
		t.Errorf("label button rect %v overlaps the tool rows", lr)
	}
	if lr.Max.X != toolbarWidth {
		t.Errorf("label button rect %v does not span the toolbar", lr)
	}
}

func TestCacheButtonInvalidatesOnResize(t *testing.T) {
	tb := &ToolButton{label: "B:Box", tool: editor.ToolBox}
	cb := &CacheButton{Button: tb}
	cb.SetRect(image.Rect(0, 0, 80, 24))

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	cb.Draw(dst, StateDefault)
	if cb.cache[StateDefault] == nil {
		t.Fatal("draw did not populate the cache")
	}

	cb.SetRect(image.Rect(0, 24, 80, 48))
	if cb.cache[StateDefault] != nil {
		t.Error("resize did not invalidate the cache")
	}
}

func TestToolButtonActivate(t *testing.T) {
	called := false
	tb := &ToolButton{label: "S:Select", tool: editor.ToolSelect, onSelect: func() { called = true }}
	tb.Activate()
	if !called {
		t.Error("Activate did not invoke onSelect")
	}
}
