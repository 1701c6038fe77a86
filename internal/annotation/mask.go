package annotation

import (
	"image"
	"image/color"
	"math"
)

func imageAlpha(v uint8) color.Alpha { return color.Alpha{A: v} }

// Mask is a freehand region over one image, stored as an alpha raster matching
// the source image dimensions. Non-zero alpha marks membership. The in-progress
// paint buffer and any committed mask never alias: commits copy.
type Mask struct {
	alpha *image.Alpha
}

// NewMask allocates an empty mask raster for an image of the given size.
func NewMask(width, height int) *Mask {
	return &Mask{alpha: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// Clone returns an independent copy of the mask raster.
func (m *Mask) Clone() *Mask {
	if m == nil || m.alpha == nil {
		return nil
	}
	dup := image.NewAlpha(m.alpha.Rect)
	copy(dup.Pix, m.alpha.Pix)
	return &Mask{alpha: dup}
}

// Size returns the raster dimensions.
func (m *Mask) Size() (int, int) {
	if m == nil || m.alpha == nil {
		return 0, 0
	}
	return m.alpha.Rect.Dx(), m.alpha.Rect.Dy()
}

// Contains reports whether the integer-rounded pixel at the given image-space
// point is painted.
func (m *Mask) Contains(x, y float64) bool {
	if m == nil || m.alpha == nil {
		return false
	}
	px := int(math.Round(x))
	py := int(math.Round(y))
	if !(image.Point{X: px, Y: py}.In(m.alpha.Rect)) {
		return false
	}
	return m.alpha.AlphaAt(px, py).A != 0
}

// Empty reports whether no pixel is painted.
func (m *Mask) Empty() bool {
	if m == nil || m.alpha == nil {
		return true
	}
	for _, a := range m.alpha.Pix {
		if a != 0 {
			return false
		}
	}
	return true
}

// Paint stamps a filled circular brush of the given radius at (x, y).
func (m *Mask) Paint(x, y, radius float64) {
	m.stamp(x, y, radius, 255)
}

// Erase clears a filled circular brush of the given radius at (x, y).
func (m *Mask) Erase(x, y, radius float64) {
	m.stamp(x, y, radius, 0)
}

// PaintStroke stamps the brush along the segment between two points so fast
// pointer motion leaves a continuous stroke. erase selects the stamp mode.
func (m *Mask) PaintStroke(x0, y0, x1, y1, radius float64, erase bool) {
	val := uint8(255)
	if erase {
		val = 0
	}
	dist := math.Hypot(x1-x0, y1-y0)
	steps := int(dist) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		m.stamp(x0+(x1-x0)*t, y0+(y1-y0)*t, radius, val)
	}
}

func (m *Mask) stamp(x, y, radius float64, val uint8) {
	if m == nil || m.alpha == nil || radius <= 0 {
		return
	}
	cx := int(math.Round(x))
	cy := int(math.Round(y))
	r := int(math.Ceil(radius))
	rr := radius * radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) > rr {
				continue
			}
			p := image.Point{X: cx + dx, Y: cy + dy}
			if !p.In(m.alpha.Rect) {
				continue
			}
			m.alpha.SetAlpha(p.X, p.Y, imageAlpha(val))
		}
	}
}

// Translate shifts the painted content by an integer pixel delta. Content
// pushed past the raster edge is dropped.
func (m *Mask) Translate(dx, dy int) {
	if m == nil || m.alpha == nil || (dx == 0 && dy == 0) {
		return
	}
	src := m.alpha
	dst := image.NewAlpha(src.Rect)
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			a := src.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			p := image.Point{X: x + dx, Y: y + dy}
			if !p.In(dst.Rect) {
				continue
			}
			dst.SetAlpha(p.X, p.Y, imageAlpha(a))
		}
	}
	m.alpha = dst
}

// TightBounds returns the smallest rectangle containing all painted pixels,
// or the empty rectangle when nothing is painted.
func (m *Mask) TightBounds() image.Rectangle {
	if m == nil || m.alpha == nil {
		return image.Rectangle{}
	}
	var r image.Rectangle
	found := false
	for y := m.alpha.Rect.Min.Y; y < m.alpha.Rect.Max.Y; y++ {
		for x := m.alpha.Rect.Min.X; x < m.alpha.Rect.Max.X; x++ {
			if m.alpha.AlphaAt(x, y).A == 0 {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				r = px
				found = true
			} else {
				r = r.Union(px)
			}
		}
	}
	return r
}

// Raster exposes the underlying alpha image for rendering. Callers must treat
// it as read-only.
func (m *Mask) Raster() *image.Alpha {
	if m == nil {
		return nil
	}
	return m.alpha
}
