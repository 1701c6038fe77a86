package annotation

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the shape variants of an Annotation.
type Kind string

const (
	KindBoundingBox Kind = "boundingbox"
	KindPolygon     Kind = "polygon"
	KindPolyline    Kind = "polyline"
	KindPoint       Kind = "point"
	KindKeypoints   Kind = "keypoints"
	KindMask        Kind = "mask"
)

// Point is an image-space coordinate.
type Point struct {
	X float64
	Y float64
}

// Box is an image-space rectangle stored as top-left corner plus size.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Keypoint is one named point of a keypoint set.
type Keypoint struct {
	Name    string
	X       float64
	Y       float64
	Visible bool
}

// Connection is a skeletal edge between two keypoint indices.
type Connection struct {
	A int
	B int
}

// Annotation is a tagged union over the six shape kinds. Kind selects which
// payload fields are meaningful; the rest stay at their zero value.
type Annotation struct {
	ID        string
	Label     string
	Kind      Kind
	CreatedAt time.Time
	Completed bool

	// KindBoundingBox
	Box Box
	// KindPolygon, KindPolyline: the closing edge of a polygon is implicit.
	Points []Point
	// KindPoint
	Point Point
	// KindKeypoints
	TemplateID  string
	Keypoints   []Keypoint
	Connections []Connection
	// KindMask
	Mask *Mask
}

// New returns an annotation of the given kind with a fresh id and timestamp.
func New(kind Kind, label string) *Annotation {
	return &Annotation{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Label:     label,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// Clone returns an independent deep copy. History entries rely on clones
// never aliasing the live annotation.
func (a *Annotation) Clone() *Annotation {
	if a == nil {
		return nil
	}
	dup := *a
	if a.Points != nil {
		dup.Points = append([]Point(nil), a.Points...)
	}
	if a.Keypoints != nil {
		dup.Keypoints = append([]Keypoint(nil), a.Keypoints...)
	}
	if a.Connections != nil {
		dup.Connections = append([]Connection(nil), a.Connections...)
	}
	if a.Mask != nil {
		dup.Mask = a.Mask.Clone()
	}
	return &dup
}

// MinBoxSize is the smallest committable bounding box edge in image pixels.
const MinBoxSize = 10

// Valid reports whether the annotation satisfies its commit-time constraints.
// Invalid shapes are discarded silently rather than committed.
func (a *Annotation) Valid() bool {
	if a == nil {
		return false
	}
	switch a.Kind {
	case KindBoundingBox:
		return a.Box.Width >= MinBoxSize && a.Box.Height >= MinBoxSize
	case KindPolygon:
		return len(a.Points) >= 3
	case KindPolyline:
		return len(a.Points) >= 2
	case KindPoint:
		return true
	case KindKeypoints:
		return a.Completed && len(a.Keypoints) > 0
	case KindMask:
		return a.Mask != nil && !a.Mask.Empty()
	}
	return false
}

// Translate shifts the annotation's geometry by an image-space delta.
// Polygons are excluded from whole-shape dragging by the editor, but the
// translation itself is defined for every kind.
func (a *Annotation) Translate(dx, dy float64) {
	switch a.Kind {
	case KindBoundingBox:
		a.Box.X += dx
		a.Box.Y += dy
	case KindPolygon, KindPolyline:
		for i := range a.Points {
			a.Points[i].X += dx
			a.Points[i].Y += dy
		}
	case KindPoint:
		a.Point.X += dx
		a.Point.Y += dy
	case KindKeypoints:
		for i := range a.Keypoints {
			a.Keypoints[i].X += dx
			a.Keypoints[i].Y += dy
		}
	case KindMask:
		if a.Mask != nil {
			a.Mask.Translate(int(dx), int(dy))
		}
	}
}

// Bounds returns the tight image-space bounding box of the shape. Exporters
// use this as the degraded representation for formats that only speak boxes.
func (a *Annotation) Bounds() Box {
	switch a.Kind {
	case KindBoundingBox:
		return a.Box
	case KindPolygon, KindPolyline:
		return pointsBounds(a.Points)
	case KindPoint:
		return Box{X: a.Point.X, Y: a.Point.Y}
	case KindKeypoints:
		pts := make([]Point, 0, len(a.Keypoints))
		for _, kp := range a.Keypoints {
			pts = append(pts, Point{X: kp.X, Y: kp.Y})
		}
		return pointsBounds(pts)
	case KindMask:
		if a.Mask == nil {
			return Box{}
		}
		r := a.Mask.TightBounds()
		return Box{
			X:      float64(r.Min.X),
			Y:      float64(r.Min.Y),
			Width:  float64(r.Dx()),
			Height: float64(r.Dy()),
		}
	}
	return Box{}
}

func pointsBounds(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
