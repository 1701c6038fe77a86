package camera

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	zooms := []float64{0.1, 0.5, 1, 2.5, 10}
	for _, zoom := range zooms {
		c := New()
		c.SetZoom(zoom)
		c.PanX = -37.5
		c.PanY = 112.25
		wx, wy := 123.45, -67.8
		sx, sy := c.WorldToScreen(wx, wy)
		gx, gy := c.ScreenToWorld(sx, sy)
		if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
			t.Errorf("zoom %v: round trip (%v,%v) -> (%v,%v)", zoom, wx, wy, gx, gy)
		}
	}
}

func TestZoomAroundPointKeepsAnchor(t *testing.T) {
	c := New()
	c.SetZoom(1.5)
	c.PanX = 40
	c.PanY = -20
	sx, sy := 300.0, 220.0
	beforeX, beforeY := c.ScreenToWorld(sx, sy)
	c.ZoomAroundPoint(sx, sy, 3.2)
	afterX, afterY := c.ScreenToWorld(sx, sy)
	if math.Abs(beforeX-afterX) > 1e-9 || math.Abs(beforeY-afterY) > 1e-9 {
		t.Errorf("anchor moved: before (%v,%v) after (%v,%v)", beforeX, beforeY, afterX, afterY)
	}
	if c.Zoom != 3.2 {
		t.Errorf("expected zoom 3.2, got %v", c.Zoom)
	}
}

func TestZoomClamped(t *testing.T) {
	c := New()
	c.SetZoom(100)
	if c.Zoom != c.MaxZoom {
		t.Errorf("expected clamp to %v, got %v", c.MaxZoom, c.Zoom)
	}
	c.SetZoom(0.0001)
	if c.Zoom != c.MinZoom {
		t.Errorf("expected clamp to %v, got %v", c.MinZoom, c.Zoom)
	}
	c.ZoomAroundPoint(0, 0, 1000)
	if c.Zoom != c.MaxZoom {
		t.Errorf("anchored zoom escaped clamp: %v", c.Zoom)
	}
}

func TestFitToViewport(t *testing.T) {
	c := New()
	c.FitToViewport(2000, 1000, 1020, 520, 20)
	if math.Abs(c.Zoom-0.5) > 1e-9 {
		t.Errorf("expected zoom 0.5, got %v", c.Zoom)
	}
	if c.PanX != 0 || c.PanY != 0 {
		t.Errorf("expected pan reset, got (%v,%v)", c.PanX, c.PanY)
	}

	// Small images are not scaled up.
	c.FitToViewport(100, 100, 1000, 1000, 0)
	if c.Zoom != 1 {
		t.Errorf("expected zoom capped at 1, got %v", c.Zoom)
	}
}

func TestZoomInOutStep(t *testing.T) {
	c := New()
	c.ZoomIn(0, 0)
	if math.Abs(c.Zoom-1.25) > 1e-9 {
		t.Errorf("expected 1.25, got %v", c.Zoom)
	}
	c.ZoomOut(0, 0)
	if math.Abs(c.Zoom-1) > 1e-9 {
		t.Errorf("expected 1, got %v", c.Zoom)
	}
}
