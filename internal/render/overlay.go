// Package render draws annotation overlays on top of the image canvas.
// The editor never draws; it hands out snapshots and this package turns
// them into pixels.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/pixelmark/internal/annotation"
	"github.com/example/pixelmark/internal/camera"
	"github.com/example/pixelmark/internal/editor"
	"github.com/example/pixelmark/internal/geometry"
	"github.com/example/pixelmark/internal/theme"
)

const (
	vertexRadius = 3
	pointRadius  = 4
	pointRing    = 7
	checkerSize  = 8
)

// Renderer draws editor snapshots using a theme palette.
type Renderer struct {
	Theme *theme.Theme
}

// New creates a Renderer. A nil theme falls back to the default palette.
func New(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{Theme: th}
}

// Frame composes a full canvas frame: checkerboard backdrop, the image
// scaled through the snapshot's camera, then the annotation overlay.
func (r *Renderer) Frame(dst *image.RGBA, img image.Image, snap editor.Snapshot) {
	drawCheckerboard(dst, dst.Bounds(), checkerSize, r.Theme.CheckerLight, r.Theme.CheckerDark)
	if img != nil {
		cam := snap.Camera
		x0, y0 := cam.WorldToScreen(0, 0)
		b := img.Bounds()
		x1, y1 := cam.WorldToScreen(float64(b.Dx()), float64(b.Dy()))
		dr := image.Rect(int(x0), int(y0), int(x1), int(y1)).Intersect(dst.Bounds())
		if !dr.Empty() {
			xdraw.NearestNeighbor.Scale(dst, image.Rect(int(x0), int(y0), int(x1), int(y1)), img, b, draw.Src, nil)
		}
	}
	r.Overlay(dst, snap)
}

// Overlay draws every annotation of the snapshot, the pending shape, and
// the tool cursor on top of dst.
func (r *Renderer) Overlay(dst *image.RGBA, snap editor.Snapshot) {
	cam := snap.Camera
	for _, a := range snap.Annotations {
		r.drawAnnotation(dst, &cam, a, snap.Selection[a.ID])
	}
	if snap.Pending != nil {
		r.drawPending(dst, &cam, snap)
	}
	if snap.Tool == editor.ToolMask {
		sx, sy := cam.WorldToScreen(snap.Cursor.X, snap.Cursor.Y)
		drawCircleThin(dst, int(sx), int(sy), int(snap.BrushRadius*cam.Zoom), r.Theme.Crosshair)
	}
}

func (r *Renderer) drawAnnotation(dst *image.RGBA, cam *camera.Camera, a *annotation.Annotation, selected bool) {
	col := r.Theme.Shape
	if selected {
		col = r.Theme.Selection
	}

	switch a.Kind {
	case annotation.KindBoundingBox:
		rect := r.screenRect(cam, a.Box)
		drawRect(dst, rect, col, 2)
		if selected {
			r.drawHandles(dst, cam, a.Box)
		}

	case annotation.KindPolygon:
		r.drawChain(dst, cam, a.Points, col, true)
		r.drawVertices(dst, cam, a.Points, selected)

	case annotation.KindPolyline:
		r.drawChain(dst, cam, a.Points, col, false)
		r.drawVertices(dst, cam, a.Points, selected)

	case annotation.KindPoint:
		sx, sy := cam.WorldToScreen(a.Point.X, a.Point.Y)
		drawFilledCircle(dst, int(sx), int(sy), pointRadius, col)
		drawCircleThin(dst, int(sx), int(sy), pointRing, col)

	case annotation.KindKeypoints:
		for _, c := range a.Connections {
			if c.A < 0 || c.B < 0 || c.A >= len(a.Keypoints) || c.B >= len(a.Keypoints) {
				continue
			}
			ax, ay := cam.WorldToScreen(a.Keypoints[c.A].X, a.Keypoints[c.A].Y)
			bx, by := cam.WorldToScreen(a.Keypoints[c.B].X, a.Keypoints[c.B].Y)
			drawLine(dst, int(ax), int(ay), int(bx), int(by), col, 1)
		}
		for _, kp := range a.Keypoints {
			sx, sy := cam.WorldToScreen(kp.X, kp.Y)
			if kp.Visible {
				drawFilledCircle(dst, int(sx), int(sy), pointRadius, r.Theme.Vertex)
			} else {
				drawCircleThin(dst, int(sx), int(sy), pointRadius, r.Theme.Vertex)
			}
		}

	case annotation.KindMask:
		r.drawMask(dst, cam, a.Mask)
		if selected {
			rect := r.screenRect(cam, a.Bounds())
			drawDashedRect(dst, rect, 4, 1, col, r.Theme.Handle)
		}
	}

	if a.Label != "" && a.Completed {
		r.drawLabelTag(dst, cam, a)
	}
}

func (r *Renderer) drawPending(dst *image.RGBA, cam *camera.Camera, snap editor.Snapshot) {
	p := snap.Pending
	col := r.Theme.ShapePending

	switch p.Kind {
	case annotation.KindBoundingBox:
		rect := r.screenRect(cam, p.Box)
		drawDashedRect(dst, rect, 4, 1, col, r.Theme.Handle)

	case annotation.KindPolygon, annotation.KindPolyline:
		r.drawChain(dst, cam, p.Points, col, false)
		r.drawVertices(dst, cam, p.Points, false)
		if len(p.Points) > 0 {
			last := p.Points[len(p.Points)-1]
			x0, y0 := cam.WorldToScreen(last.X, last.Y)
			x1, y1 := cam.WorldToScreen(snap.Cursor.X, snap.Cursor.Y)
			drawLine(dst, int(x0), int(y0), int(x1), int(y1), col, 1)
		}
		// Closing hint: highlight the first vertex once the polygon can close.
		if p.Kind == annotation.KindPolygon && len(p.Points) >= 3 {
			sx, sy := cam.WorldToScreen(p.Points[0].X, p.Points[0].Y)
			drawCircleThin(dst, int(sx), int(sy), pointRing, col)
		}

	case annotation.KindKeypoints:
		r.drawAnnotation(dst, cam, p, false)

	case annotation.KindMask:
		r.drawMask(dst, cam, p.Mask)
	}
}

func (r *Renderer) drawHandles(dst *image.RGBA, cam *camera.Camera, b annotation.Box) {
	side := int(geometry.HandleSize(cam.Zoom) * cam.Zoom)
	if side < 4 {
		side = 4
	}
	half := side / 2
	for _, c := range geometry.HandleCenters(b) {
		sx, sy := cam.WorldToScreen(c.X, c.Y)
		rect := image.Rect(int(sx)-half, int(sy)-half, int(sx)+half, int(sy)+half)
		fillRect(dst, rect, r.Theme.Handle)
		drawRect(dst, rect, r.Theme.Selection, 1)
	}
}

func (r *Renderer) drawChain(dst *image.RGBA, cam *camera.Camera, pts []annotation.Point, col color.Color, closed bool) {
	if len(pts) < 2 {
		return
	}
	for i := 1; i < len(pts); i++ {
		x0, y0 := cam.WorldToScreen(pts[i-1].X, pts[i-1].Y)
		x1, y1 := cam.WorldToScreen(pts[i].X, pts[i].Y)
		drawLine(dst, int(x0), int(y0), int(x1), int(y1), col, 2)
	}
	if closed {
		x0, y0 := cam.WorldToScreen(pts[len(pts)-1].X, pts[len(pts)-1].Y)
		x1, y1 := cam.WorldToScreen(pts[0].X, pts[0].Y)
		drawLine(dst, int(x0), int(y0), int(x1), int(y1), col, 2)
	}
}

func (r *Renderer) drawVertices(dst *image.RGBA, cam *camera.Camera, pts []annotation.Point, selected bool) {
	col := r.Theme.Vertex
	if selected {
		col = r.Theme.Selection
	}
	for _, p := range pts {
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		drawFilledCircle(dst, int(sx), int(sy), vertexRadius, col)
	}
}

func (r *Renderer) drawMask(dst *image.RGBA, cam *camera.Camera, m *annotation.Mask) {
	raster := m.Raster()
	if raster == nil {
		return
	}
	b := raster.Bounds()
	tinted := image.NewRGBA(b)
	tint := r.Theme.MaskTint
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if raster.AlphaAt(x, y).A != 0 {
				tinted.SetRGBA(x, y, tint)
			}
		}
	}
	x0, y0 := cam.WorldToScreen(float64(b.Min.X), float64(b.Min.Y))
	x1, y1 := cam.WorldToScreen(float64(b.Max.X), float64(b.Max.Y))
	xdraw.NearestNeighbor.Scale(dst, image.Rect(int(x0), int(y0), int(x1), int(y1)), tinted, b, draw.Over, nil)
}

func (r *Renderer) drawLabelTag(dst *image.RGBA, cam *camera.Camera, a *annotation.Annotation) {
	b := a.Bounds()
	sx, sy := cam.WorldToScreen(b.X, b.Y)

	meas := &font.Drawer{Face: basicfont.Face7x13}
	w := meas.MeasureString(a.Label).Ceil()
	h := 13

	x := int(sx)
	y := int(sy) - h - 4
	if y < dst.Bounds().Min.Y {
		y = int(sy) + 2
	}
	fillRect(dst, image.Rect(x, y, x+w+6, y+h+2), r.Theme.LabelBack)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(r.Theme.LabelText),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x+3, y+h-2),
	}
	d.DrawString(a.Label)
}

func (r *Renderer) screenRect(cam *camera.Camera, b annotation.Box) image.Rectangle {
	x0, y0 := cam.WorldToScreen(b.X, b.Y)
	x1, y1 := cam.WorldToScreen(b.X+b.Width, b.Y+b.Height)
	return image.Rect(int(x0), int(y0), int(x1), int(y1))
}
