package app

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/pixelmark/internal/editor"
	"github.com/example/pixelmark/internal/render"
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 48, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	for t := 0; t < thick; t++ {
		rr := r.Inset(t)
		if rr.Empty() {
			return
		}
		for x := rr.Min.X; x < rr.Max.X; x++ {
			dst.Set(x, rr.Min.Y, col)
			dst.Set(x, rr.Max.Y-1, col)
		}
		for y := rr.Min.Y; y < rr.Max.Y; y++ {
			dst.Set(rr.Min.X, y, col)
			dst.Set(rr.Max.X-1, y, col)
		}
	}
}

type paintState struct {
	width, height  int
	tabs           []*ImageTab
	current        int
	snap           editor.Snapshot
	label          string
	templateID     string
	message        string
	messageUntil   time.Time
	handleShortcut func(string)
	renderer       *render.Renderer
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	// The canvas viewport sits right of the toolbar and below the tab strip.
	// The renderer draws in viewport coordinates on a sub-canvas so the
	// camera origin matches the events the editor receives.
	full := b.RGBA()
	canvasRect := image.Rect(toolbarWidth, tabHeight, st.width, st.height-bottomHeight)
	canvas := image.NewRGBA(image.Rect(0, 0, canvasRect.Dx(), canvasRect.Dy()))

	var tabImg image.Image
	if len(st.tabs) > 0 {
		tabImg = st.tabs[st.current].Image
	}
	st.renderer.Frame(canvas, tabImg, st.snap)
	if ctx.Err() != nil {
		return
	}
	draw.Draw(full, canvasRect, canvas, image.Point{}, draw.Src)

	if ctx.Err() != nil {
		return
	}

	drawTabs(full, st.tabs, st.current)
	drawToolbar(full, st.height, st.snap.Tool, st.label, st.templateID)
	building := st.snap.State == editor.StateBuilding
	drawShortcuts(full, st.width, st.height, building, st.snap.Camera.Zoom, st.handleShortcut)

	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: full, Src: image.Black, Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		draw.Draw(full, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
		drawRect(full, rect, color.Black, 2)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
