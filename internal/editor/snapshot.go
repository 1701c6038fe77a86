package editor

import (
	"github.com/example/pixelmark/internal/annotation"
	"github.com/example/pixelmark/internal/camera"
)

// Snapshot is the read-only view handed to the rendering collaborator on each
// redraw. The engine never reads anything back from the drawing surface; the
// renderer must treat the referenced annotations as immutable.
type Snapshot struct {
	Camera      camera.Camera
	ImageID     string
	Annotations []*annotation.Annotation
	Selection   map[string]bool
	Tool        Tool
	State       State
	Pending     *annotation.Annotation
	Cursor      annotation.Point
	BrushRadius float64
}

// Snapshot captures the current camera, z-ordered annotations of the active
// image, selection set, and transient drawing state.
func (ed *Editor) Snapshot() Snapshot {
	return Snapshot{
		Camera:      *ed.Camera,
		ImageID:     ed.imageID,
		Annotations: ed.coll.List(ed.imageID),
		Selection:   ed.Selection(),
		Tool:        ed.tool,
		State:       ed.state,
		Pending:     ed.pending,
		Cursor:      ed.cursor,
		BrushRadius: ed.brushRadius,
	}
}
