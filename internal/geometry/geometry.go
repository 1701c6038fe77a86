// Package geometry holds the stateless hit-testing routines used by the
// editor. Every distance is computed in image space with the tolerance divided
// by the current zoom, so a hit target keeps a constant apparent size on
// screen as the view scales.
package geometry

import (
	"math"

	"github.com/example/pixelmark/internal/annotation"
)

const (
	// BoxMargin widens bounding-box hit tests (screen pixels).
	BoxMargin = 10
	// PointRadius is the grab radius for point annotations (screen pixels).
	PointRadius = 10
	// SegmentRadius is the grab radius for polyline edges (screen pixels).
	SegmentRadius = 8
	// VertexRadius is the grab radius for vertices; larger than SegmentRadius
	// so vertex grabs win over edge grabs (screen pixels).
	VertexRadius = 15
	// KeypointRadius is the grab radius for keypoints (screen pixels).
	KeypointRadius = 20
	// CloseRadius is how near the first vertex a click must land to close a
	// polygon (screen pixels).
	CloseRadius = 15
)

// Dist returns the Euclidean distance between two points.
func Dist(a, b annotation.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PointInBox reports whether p lies inside the box widened by BoxMargin/zoom.
func PointInBox(p annotation.Point, b annotation.Box, zoom float64) bool {
	m := BoxMargin / zoom
	return p.X >= b.X-m && p.X <= b.X+b.Width+m &&
		p.Y >= b.Y-m && p.Y <= b.Y+b.Height+m
}

// PointNearPoint reports whether p is within PointRadius/zoom of q.
func PointNearPoint(p, q annotation.Point, zoom float64) bool {
	return Dist(p, q) <= PointRadius/zoom
}

// SegmentDistance returns the distance from p to the segment ab using the
// standard projection clamped to t in [0,1].
func SegmentDistance(p, a, b annotation.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Dist(p, annotation.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// NearestVertex returns the index of the closest vertex within
// VertexRadius/zoom of p, or -1. Picking the closest rather than the first
// match keeps dense vertex clusters unambiguous.
func NearestVertex(p annotation.Point, pts []annotation.Point, zoom float64) int {
	radius := VertexRadius / zoom
	best := -1
	bestDist := radius
	for i, v := range pts {
		if d := Dist(p, v); d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// PointNearPolyline reports whether p is within SegmentRadius/zoom of any
// segment of the open path, or within VertexRadius/zoom of any vertex.
func PointNearPolyline(p annotation.Point, pts []annotation.Point, zoom float64) bool {
	if NearestVertex(p, pts, zoom) >= 0 {
		return true
	}
	radius := SegmentRadius / zoom
	for i := 0; i+1 < len(pts); i++ {
		if SegmentDistance(p, pts[i], pts[i+1]) <= radius {
			return true
		}
	}
	return false
}

// PointInPolygon reports whether p lies inside the closed polygon using ray
// casting. The editor deliberately does not use this for selection: polygons
// are selected and edited through their vertices only.
func PointInPolygon(p annotation.Point, pts []annotation.Point) bool {
	if len(pts) < 3 {
		return false
	}
	inside := false
	j := len(pts) - 1
	for i := 0; i < len(pts); i++ {
		pi, pj := pts[i], pts[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// NearestKeypoint returns the index of the closest keypoint within
// KeypointRadius/zoom of p, or -1.
func NearestKeypoint(p annotation.Point, kps []annotation.Keypoint, zoom float64) int {
	radius := KeypointRadius / zoom
	best := -1
	bestDist := radius
	for i, kp := range kps {
		if d := Dist(p, annotation.Point{X: kp.X, Y: kp.Y}); d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// NearFirstVertex reports whether p is within CloseRadius/zoom of the first
// accumulated vertex, the closing-loop gesture for polygons.
func NearFirstVertex(p annotation.Point, pts []annotation.Point, zoom float64) bool {
	if len(pts) == 0 {
		return false
	}
	return Dist(p, pts[0]) <= CloseRadius/zoom
}
