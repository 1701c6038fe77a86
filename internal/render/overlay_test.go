package render

import (
	"image"
	"testing"

	"github.com/example/pixelmark/internal/annotation"
	"github.com/example/pixelmark/internal/camera"
	"github.com/example/pixelmark/internal/editor"
	"github.com/example/pixelmark/internal/theme"
)

func snapshotWith(anns ...*annotation.Annotation) editor.Snapshot {
	return editor.Snapshot{
		Camera:      *camera.New(),
		Annotations: anns,
		Selection:   map[string]bool{},
	}
}

func TestOverlayDrawsBoxOutline(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	box := annotation.New(annotation.KindBoundingBox, "car")
	box.Box = annotation.Box{X: 20, Y: 30, Width: 60, Height: 40}
	box.Completed = true

	New(theme.Default()).Overlay(dst, snapshotWith(box))

	th := theme.Default()
	if got := dst.RGBAAt(20, 30); got != th.Shape {
		t.Errorf("top-left corner not stroked: %+v", got)
	}
	if got := dst.RGBAAt(50, 50); got == th.Shape {
		t.Errorf("box interior must not be filled")
	}
}

func TestOverlaySelectedBoxGetsHandles(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	box := annotation.New(annotation.KindBoundingBox, "car")
	box.Box = annotation.Box{X: 40, Y: 40, Width: 80, Height: 60}
	box.Completed = true

	snap := snapshotWith(box)
	snap.Selection[box.ID] = true
	New(theme.Default()).Overlay(dst, snap)

	th := theme.Default()
	// The NW handle square is centred on the corner and filled.
	if got := dst.RGBAAt(40, 40); got != th.Handle {
		t.Errorf("expected handle fill at corner, got %+v", got)
	}
	if got := dst.RGBAAt(80, 40); got != th.Handle {
		t.Errorf("expected midpoint handle on the top edge, got %+v", got)
	}
}

func TestOverlayRespectsCamera(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 400, 400))
	box := annotation.New(annotation.KindBoundingBox, "car")
	box.Box = annotation.Box{X: 10, Y: 10, Width: 50, Height: 50}
	box.Completed = true

	snap := snapshotWith(box)
	snap.Camera.Zoom = 2
	snap.Camera.PanX = 100
	snap.Camera.PanY = 100
	New(theme.Default()).Overlay(dst, snap)

	th := theme.Default()
	// World (10,10) lands at screen (120,120) under zoom 2 pan 100.
	if got := dst.RGBAAt(120, 120); got != th.Shape {
		t.Errorf("corner not drawn at the camera-mapped position: %+v", got)
	}
	if got := dst.RGBAAt(10, 10); got == th.Shape {
		t.Errorf("corner drawn at unmapped world position")
	}
}

func TestOverlayDrawsMaskTint(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	mask := annotation.New(annotation.KindMask, "blob")
	mask.Mask = annotation.NewMask(100, 100)
	mask.Mask.Paint(50, 50, 10)
	mask.Completed = true

	New(theme.Default()).Overlay(dst, snapshotWith(mask))

	if got := dst.RGBAAt(50, 50); got.A == 0 {
		t.Errorf("painted mask pixel not tinted")
	}
	if got := dst.RGBAAt(5, 5); got.A != 0 {
		t.Errorf("unpainted pixel should stay clear, got %+v", got)
	}
}

func TestFrameFillsBackdrop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	New(theme.Default()).Frame(dst, nil, snapshotWith())

	th := theme.Default()
	if got := dst.RGBAAt(0, 0); got != th.CheckerLight && got != th.CheckerDark {
		t.Errorf("backdrop not drawn: %+v", got)
	}
}
