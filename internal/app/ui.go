package app

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/pixelmark/internal/config"
	"github.com/example/pixelmark/internal/editor"
)

const (
	tabHeight    = 24
	bottomHeight = 24
)

var toolbarWidth = 96

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// ToolButton represents a toolbar button that selects an annotation tool.
type ToolButton struct {
	label    string
	tool     editor.Tool
	rect     image.Rectangle
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	c := color.RGBA{200, 200, 200, 255}
	switch state {
	case StateHover:
		c = color.RGBA{180, 180, 180, 255}
	case StatePressed:
		c = color.RGBA{150, 150, 150, 255}
	}
	draw.Draw(dst, tb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

// LabelButton selects the class label applied to newly drawn shapes.
type LabelButton struct {
	label    config.Label
	rect     image.Rectangle
	onSelect func()
}

func (lb *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	c := color.RGBA{200, 200, 200, 255}
	switch state {
	case StateHover:
		c = color.RGBA{180, 180, 180, 255}
	case StatePressed:
		c = color.RGBA{150, 150, 150, 255}
	}
	draw.Draw(dst, lb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	swatch := image.Rect(lb.rect.Min.X+3, lb.rect.Min.Y+4, lb.rect.Min.X+15, lb.rect.Min.Y+16)
	draw.Draw(dst, swatch, &image.Uniform{labelSwatch(lb.label.Color)}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(lb.rect.Min.X+19, lb.rect.Min.Y+14)}
	d.DrawString(lb.label.Name)
}

func (lb *LabelButton) Rect() image.Rectangle { return lb.rect }

func (lb *LabelButton) SetRect(r image.Rectangle) {
	if r != lb.rect {
		lb.rect = r
	}
}

func (lb *LabelButton) Activate() {
	if lb.onSelect != nil {
		lb.onSelect()
	}
}

// labelSwatch parses a #RRGGBB palette color, falling back to gray.
func labelSwatch(hex string) color.RGBA {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return color.RGBA{128, 128, 128, 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{128, 128, 128, 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// TabButton draws an image title in the header bar.
type TabButton struct {
	label    string
	rect     image.Rectangle
	onSelect func()
}

func (tb *TabButton) Draw(dst *image.RGBA, state ButtonState) {
	c := color.RGBA{200, 200, 200, 255}
	switch state {
	case StateHover:
		c = color.RGBA{180, 180, 180, 255}
	case StatePressed:
		c = color.RGBA{150, 150, 150, 255}
	}
	draw.Draw(dst, tb.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *TabButton) Rect() image.Rectangle { return tb.rect }

func (tb *TabButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *TabButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	col := color.RGBA{200, 200, 200, 255}
	switch state {
	case StateHover:
		col = color.RGBA{180, 180, 180, 255}
	case StatePressed:
		col = color.RGBA{150, 150, 150, 255}
	}
	draw.Draw(dst, s.rect, &image.Uniform{col}, image.Point{}, draw.Src)
	drawRect(dst, s.rect, color.Black, 1)
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

var shortcutRects []Shortcut
var hoverShortcut = -1

var tabButtons []TabButton
var toolButtons []*CacheButton
var labelButtons []*CacheButton
var templateButtons []*CacheButton

// keyboardAction maps a keyboard shortcut to the action name.
var keyboardAction = map[KeyShortcut]string{}
var hoverTab = -1
var hoverTool = -1
var hoverLabel = -1
var hoverTemplate = -1

func drawTabs(dst *image.RGBA, tabs []*ImageTab, current int) {
	draw.Draw(dst, image.Rect(0, 0, toolbarWidth, tabHeight),
		&image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)

	// program title in the top-left corner
	title := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	title.DrawString("Pixelmark")

	tabButtons = tabButtons[:0]
	x := toolbarWidth
	for i, t := range tabs {
		tb := TabButton{label: t.Title, onSelect: nil}
		tb.SetRect(image.Rect(x, 0, x+100, tabHeight))
		state := StateDefault
		if i == current {
			state = StatePressed
		} else if i == hoverTab {
			state = StateHover
		}
		tb.Draw(dst, state)
		tabButtons = append(tabButtons, tb)
		x += 100
	}
	draw.Draw(dst, image.Rect(x, 0, dst.Bounds().Dx(), tabHeight),
		&image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)
}

func drawToolbar(dst *image.RGBA, height int, tool editor.Tool, label string, templateID string) {
	draw.Draw(dst, image.Rect(0, tabHeight, toolbarWidth, height-bottomHeight),
		&image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)

	y := tabHeight
	for i, cb := range toolButtons {
		r := image.Rect(0, y, toolbarWidth, y+24)
		cb.SetRect(r)
		tb := cb.Button.(*ToolButton)
		state := StateDefault
		if tb.tool == tool {
			state = StatePressed
		} else if i == hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
		y += 24
	}

	// label palette below the tools
	y += 4
	for i, cb := range labelButtons {
		r := image.Rect(0, y, toolbarWidth, y+20)
		cb.SetRect(r)
		lb := cb.Button.(*LabelButton)
		state := StateDefault
		if lb.label.Name == label {
			state = StatePressed
		} else if i == hoverLabel {
			state = StateHover
		}
		cb.Draw(dst, state)
		y += 20
	}

	// keypoint templates only matter while the keypoints tool is armed
	if tool == editor.ToolKeypoints && len(templateButtons) > 0 {
		y += 4
		for i, cb := range templateButtons {
			r := image.Rect(0, y, toolbarWidth, y+20)
			cb.SetRect(r)
			tb := cb.Button.(*ToolButton)
			state := StateDefault
			if tb.label == templateID {
				state = StatePressed
			} else if i == hoverTemplate {
				state = StateHover
			}
			cb.Draw(dst, state)
			y += 20
		}
	}
}

func drawShortcuts(dst *image.RGBA, width, height int, building bool, z float64, trigger func(string)) {
	rect := image.Rect(0, height-bottomHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{220, 220, 220, 255}}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]
	var shortcuts []Shortcut
	if building {
		shortcuts = []Shortcut{
			{label: "Enter:finish", action: func() { trigger("finish") }},
			{label: "Esc:cancel", action: func() { trigger("cancel") }},
		}
	} else {
		zoomStr := "+/-:zoom (" + strconv.Itoa(int(z*100)) + "%)"
		shortcuts = []Shortcut{
			{label: "^Z:undo", action: func() { trigger("undo") }},
			{label: "^Y:redo", action: func() { trigger("redo") }},
			{label: "^D:dup", action: func() { trigger("dup") }},
			{label: "Del:delete", action: func() { trigger("delete") }},
			{label: zoomStr, action: nil},
			{label: "F:fit", action: func() { trigger("fit") }},
			{label: "^C:copy", action: func() { trigger("copy") }},
			{label: "^S:save", action: func() { trigger("save") }},
			{label: "^E:export", action: func() { trigger("export") }},
			{label: "Q:quit", action: func() { trigger("quit") }},
		}
	}
	x := toolbarWidth + 4
	y := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}
}
