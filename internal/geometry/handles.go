package geometry

import "github.com/example/pixelmark/internal/annotation"

// Handle identifies one of the eight resize handles of a bounding box.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleE:
		return "e"
	case HandleSE:
		return "se"
	case HandleS:
		return "s"
	case HandleSW:
		return "sw"
	case HandleW:
		return "w"
	}
	return "none"
}

// HandleSize returns the image-space side of a handle hit square at the given
// zoom. The floor of 8 keeps handles grabbable when zoomed far out.
func HandleSize(zoom float64) float64 {
	s := 6 / zoom
	if s < 8 {
		s = 8
	}
	return s
}

// HandleCenters returns the image-space center of each of the eight handles:
// four corners plus four edge midpoints.
func HandleCenters(b annotation.Box) map[Handle]annotation.Point {
	midX := b.X + b.Width/2
	midY := b.Y + b.Height/2
	return map[Handle]annotation.Point{
		HandleNW: {X: b.X, Y: b.Y},
		HandleN:  {X: midX, Y: b.Y},
		HandleNE: {X: b.X + b.Width, Y: b.Y},
		HandleE:  {X: b.X + b.Width, Y: midY},
		HandleSE: {X: b.X + b.Width, Y: b.Y + b.Height},
		HandleS:  {X: midX, Y: b.Y + b.Height},
		HandleSW: {X: b.X, Y: b.Y + b.Height},
		HandleW:  {X: b.X, Y: midY},
	}
}

// HandleAt returns the handle whose hit square contains p, or HandleNone.
func HandleAt(p annotation.Point, b annotation.Box, zoom float64) Handle {
	half := HandleSize(zoom) / 2
	for h, c := range HandleCenters(b) {
		if p.X >= c.X-half && p.X <= c.X+half && p.Y >= c.Y-half && p.Y <= c.Y+half {
			return h
		}
	}
	return HandleNone
}

// ResizeBox applies a drag of the given handle to the box, moving only the
// grabbed edge(s) or corner. The result is normalized so width and height
// stay non-negative, and clamped to minSize per side when the drag would
// invert past it.
func ResizeBox(b annotation.Box, h Handle, dx, dy, minSize float64) annotation.Box {
	x0, y0 := b.X, b.Y
	x1, y1 := b.X+b.Width, b.Y+b.Height
	switch h {
	case HandleNW:
		x0 += dx
		y0 += dy
	case HandleN:
		y0 += dy
	case HandleNE:
		x1 += dx
		y0 += dy
	case HandleE:
		x1 += dx
	case HandleSE:
		x1 += dx
		y1 += dy
	case HandleS:
		y1 += dy
	case HandleSW:
		x0 += dx
		y1 += dy
	case HandleW:
		x0 += dx
	}
	if x1-x0 < minSize {
		switch h {
		case HandleNW, HandleW, HandleSW:
			x0 = x1 - minSize
		default:
			x1 = x0 + minSize
		}
	}
	if y1-y0 < minSize {
		switch h {
		case HandleNW, HandleN, HandleNE:
			y0 = y1 - minSize
		default:
			y1 = y0 + minSize
		}
	}
	return annotation.Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
