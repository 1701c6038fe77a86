package camera

// Camera maps between image-space ("world") coordinates and screen-space
// coordinates. Pan is stored in screen units so dragging the view by N pixels
// translates the pan by exactly N regardless of zoom.
type Camera struct {
	Zoom     float64
	PanX     float64
	PanY     float64
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
}

const (
	defaultMinZoom  = 0.1
	defaultMaxZoom  = 10
	defaultZoomStep = 1.25
)

// New returns a camera at 1:1 zoom with no pan.
func New() *Camera {
	return &Camera{
		Zoom:     1,
		MinZoom:  defaultMinZoom,
		MaxZoom:  defaultMaxZoom,
		ZoomStep: defaultZoomStep,
	}
}

// ScreenToWorld converts a screen coordinate to image space.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.PanX) / c.Zoom, (sy - c.PanY) / c.Zoom
}

// WorldToScreen converts an image coordinate to screen space.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*c.Zoom + c.PanX, wy*c.Zoom + c.PanY
}

func (c *Camera) clamp(zoom float64) float64 {
	if zoom < c.MinZoom {
		return c.MinZoom
	}
	if zoom > c.MaxZoom {
		return c.MaxZoom
	}
	return zoom
}

// SetZoom sets the zoom level, clamped to the configured limits. The pan
// offset is left untouched.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = c.clamp(zoom)
}

// ZoomAroundPoint rescales the view so the world point currently under the
// given screen point stays under it at the new zoom level.
func (c *Camera) ZoomAroundPoint(sx, sy, newZoom float64) {
	newZoom = c.clamp(newZoom)
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = newZoom
	c.PanX = sx - wx*newZoom
	c.PanY = sy - wy*newZoom
}

// ZoomIn zooms by one step anchored at the given screen point.
func (c *Camera) ZoomIn(sx, sy float64) {
	c.ZoomAroundPoint(sx, sy, c.Zoom*c.ZoomStep)
}

// ZoomOut zooms out by one step anchored at the given screen point.
func (c *Camera) ZoomOut(sx, sy float64) {
	c.ZoomAroundPoint(sx, sy, c.Zoom/c.ZoomStep)
}

// FitToViewport resets the view so the whole image is visible inside the
// viewport with the given padding on each edge. The zoom never exceeds 1 so
// small images stay at their natural size.
func (c *Camera) FitToViewport(imgW, imgH, vpW, vpH, padding int) {
	if imgW <= 0 || imgH <= 0 {
		c.ActualSize()
		return
	}
	zx := float64(vpW-padding) / float64(imgW)
	zy := float64(vpH-padding) / float64(imgH)
	zoom := zx
	if zy < zoom {
		zoom = zy
	}
	if zoom > 1 {
		zoom = 1
	}
	c.Zoom = c.clamp(zoom)
	c.PanX = 0
	c.PanY = 0
}

// ActualSize resets to 1:1 zoom with no pan.
func (c *Camera) ActualSize() {
	c.Zoom = c.clamp(1)
	c.PanX = 0
	c.PanY = 0
}

// PanBy translates the view by a raw screen-space delta.
func (c *Camera) PanBy(dx, dy float64) {
	c.PanX += dx
	c.PanY += dy
}
