// Package editor implements the interaction state machine of the annotation
// engine. It consumes pointer events in the golang.org/x/mobile vocabulary,
// hit-tests against the model through the geometry package, mutates the
// collection, and records every committed mutation in the history manager.
// All transient shape-building state lives here and only here; the collection
// is the single source of committed truth.
package editor

import (
	"log"
	"math"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixelmark/internal/annotation"
	"github.com/example/pixelmark/internal/camera"
	"github.com/example/pixelmark/internal/geometry"
	"github.com/example/pixelmark/internal/history"
)

// Tool selects what a primary press does on the canvas.
type Tool int

const (
	ToolSelect Tool = iota
	ToolBox
	ToolPolygon
	ToolPolyline
	ToolPoint
	ToolKeypoints
	ToolMask
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolBox:
		return "boundingbox"
	case ToolPolygon:
		return "polygon"
	case ToolPolyline:
		return "polyline"
	case ToolPoint:
		return "point"
	case ToolKeypoints:
		return "keypoints"
	case ToolMask:
		return "mask"
	}
	return "unknown"
}

// State is the editor's interaction state. Every state returns to StateIdle
// on commit or cancel.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateDragging
	StateResizing
	StatePanning
	StateBuilding
)

const (
	// dragThreshold is how far (screen pixels) the pointer must travel after a
	// press on an annotation before a drag starts instead of a plain select.
	dragThreshold = 3
	// doubleClickWindow is the press-to-press window for the polyline finish
	// gesture.
	doubleClickWindow = 400 * time.Millisecond
	// DefaultBrushRadius is the mask brush radius in image pixels.
	DefaultBrushRadius = 12
)

// Editor drives annotation editing for one image at a time.
type Editor struct {
	Camera *camera.Camera

	coll *annotation.Collection
	hist *history.History

	imageID string
	imageW  int
	imageH  int

	tool        Tool
	label       string
	templates   []*annotation.Template
	template    *annotation.Template
	brushRadius float64

	selection map[string]bool

	state   State
	anchor  annotation.Point
	cursor  annotation.Point
	pending *annotation.Annotation

	maskErase bool

	dragOrigin annotation.Point
	dragArmed  bool
	dragMoved  bool
	dragBefore []*annotation.Annotation

	resizeID     string
	resizeHandle geometry.Handle
	resizeVertex int
	resizeBefore *annotation.Annotation

	panX float64
	panY float64

	lastClickAt  time.Time
	lastClickPos annotation.Point

	onChange  func()
	onMessage func(string)
}

// Option configures an Editor during creation.
type Option func(*Editor)

// WithHistoryLimit bounds the per-image undo stacks.
func WithHistoryLimit(limit int) Option {
	return func(ed *Editor) { ed.hist = history.New(limit) }
}

// WithTemplates registers the available keypoint templates. The first one
// becomes the active template.
func WithTemplates(ts []*annotation.Template) Option {
	return func(ed *Editor) {
		ed.templates = ts
		if len(ts) > 0 {
			ed.template = ts[0]
		}
	}
}

// WithBrushRadius sets the mask brush radius in image pixels.
func WithBrushRadius(r float64) Option {
	return func(ed *Editor) {
		if r > 0 {
			ed.brushRadius = r
		}
	}
}

// WithOnChange registers the redraw-request callback.
func WithOnChange(fn func()) Option {
	return func(ed *Editor) { ed.onChange = fn }
}

// WithOnMessage registers the advisory message sink.
func WithOnMessage(fn func(string)) Option {
	return func(ed *Editor) { ed.onMessage = fn }
}

// New creates an editor over a fresh collection.
func New(opts ...Option) *Editor {
	ed := &Editor{
		Camera:       camera.New(),
		coll:         annotation.NewCollection(),
		hist:         history.New(history.DefaultLimit),
		selection:    make(map[string]bool),
		brushRadius:  DefaultBrushRadius,
		resizeVertex: -1,
	}
	for _, o := range opts {
		o(ed)
	}
	return ed
}

// Collection exposes the committed annotation model.
func (ed *Editor) Collection() *annotation.Collection { return ed.coll }

// History exposes the undo/redo manager.
func (ed *Editor) History() *history.History { return ed.hist }

// ImageID returns the identifier of the image being edited.
func (ed *Editor) ImageID() string { return ed.imageID }

// Tool returns the active tool.
func (ed *Editor) Tool() Tool { return ed.tool }

// Label returns the active label.
func (ed *Editor) Label() string { return ed.label }

// State returns the current interaction state.
func (ed *Editor) State() State { return ed.state }

// Templates lists the registered keypoint templates.
func (ed *Editor) Templates() []*annotation.Template { return ed.templates }

// TemplateID reports the active keypoint template id, or "" when none is set.
func (ed *Editor) TemplateID() string {
	if ed.template == nil {
		return ""
	}
	return ed.template.ID
}

func (ed *Editor) changed() {
	if ed.onChange != nil {
		ed.onChange()
	}
}

func (ed *Editor) message(text string) {
	if ed.onMessage != nil {
		ed.onMessage(text)
	}
}

// SetImage switches the image under edit. Any in-progress shape is discarded
// and the selection cleared; the image's own undo stack becomes active.
func (ed *Editor) SetImage(imageID string, width, height int) {
	ed.Cancel()
	ed.imageID = imageID
	ed.imageW = width
	ed.imageH = height
	ed.selection = make(map[string]bool)
	ed.changed()
}

// SetTool switches the active tool, cancelling any in-progress shape of a
// different kind.
func (ed *Editor) SetTool(t Tool) {
	if t == ed.tool {
		return
	}
	ed.Cancel()
	ed.tool = t
	ed.changed()
}

// SetLabel sets the label applied to newly committed annotations.
func (ed *Editor) SetLabel(label string) {
	ed.label = label
	ed.changed()
}

// SetTemplate selects the keypoint template by id. Unknown ids are ignored.
func (ed *Editor) SetTemplate(id string) {
	for _, t := range ed.templates {
		if t.ID == id {
			ed.Cancel()
			ed.template = t
			ed.changed()
			return
		}
	}
	log.Printf("editor: unknown keypoint template %q", id)
}

// Selection returns the ids of the selected annotations.
func (ed *Editor) Selection() map[string]bool {
	out := make(map[string]bool, len(ed.selection))
	for id := range ed.selection {
		out[id] = true
	}
	return out
}

// Cancel clears all transient drawing, dragging, resizing, and panning state
// and discards any incomplete shape without committing or recording history.
func (ed *Editor) Cancel() {
	ed.state = StateIdle
	ed.pending = nil
	ed.maskErase = false
	ed.dragArmed = false
	ed.dragMoved = false
	ed.dragBefore = nil
	ed.resizeID = ""
	ed.resizeHandle = geometry.HandleNone
	ed.resizeVertex = -1
	ed.resizeBefore = nil
	ed.changed()
}

// Mouse feeds one pointer event, already translated to canvas-local screen
// coordinates, into the state machine.
func (ed *Editor) Mouse(e mouse.Event) {
	if ed.imageID == "" {
		return
	}
	sx, sy := float64(e.X), float64(e.Y)
	wx, wy := ed.Camera.ScreenToWorld(sx, sy)
	p := annotation.Point{X: wx, Y: wy}
	ed.cursor = p

	switch e.Direction {
	case mouse.DirPress:
		switch e.Button {
		case mouse.ButtonLeft:
			ed.press(p, sx, sy, e.Modifiers, false)
		case mouse.ButtonRight:
			if ed.tool == ToolMask && ed.state == StateIdle {
				ed.press(p, sx, sy, e.Modifiers, true)
			}
		case mouse.ButtonMiddle:
			if ed.state == StateIdle {
				ed.state = StatePanning
				ed.panX, ed.panY = sx, sy
			}
		}
	case mouse.DirNone:
		ed.move(p, sx, sy)
	case mouse.DirRelease:
		switch e.Button {
		case mouse.ButtonLeft, mouse.ButtonRight:
			ed.release(p)
		case mouse.ButtonMiddle:
			if ed.state == StatePanning {
				ed.state = StateIdle
			}
		}
	}
}

// Key feeds a key event. Only editing-engine gestures are handled here; the
// application shell owns tool shortcuts and commands.
func (ed *Editor) Key(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	switch e.Code {
	case key.CodeEscape:
		ed.Cancel()
	case key.CodeReturnEnter:
		ed.FinishShape()
	case key.CodeDeleteForward, key.CodeDeleteBackspace:
		ed.DeleteSelected()
	}
}

func (ed *Editor) press(p annotation.Point, sx, sy float64, mods key.Modifiers, erase bool) {
	doubled := time.Since(ed.lastClickAt) < doubleClickWindow &&
		geometry.Dist(p, ed.lastClickPos)*ed.Camera.Zoom < 5
	ed.lastClickAt = time.Now()
	ed.lastClickPos = p

	switch ed.tool {
	case ToolBox:
		if !ed.requireLabel() {
			return
		}
		ed.state = StateDrawing
		ed.anchor = p
		ed.pending = annotation.New(annotation.KindBoundingBox, ed.label)
		ed.pending.Box = normalizeBox(ed.anchor, p)
		ed.changed()
	case ToolPolygon:
		if !ed.requireLabel() {
			return
		}
		ed.buildPolygon(p)
	case ToolPolyline:
		if !ed.requireLabel() {
			return
		}
		if doubled && ed.pending != nil {
			ed.FinishShape()
			return
		}
		ed.buildPolyline(p)
	case ToolPoint:
		if !ed.requireLabel() {
			return
		}
		a := annotation.New(annotation.KindPoint, ed.label)
		a.Point = p
		a.Completed = true
		ed.commit(a)
	case ToolKeypoints:
		if !ed.requireLabel() {
			return
		}
		ed.buildKeypoints(p)
	case ToolMask:
		if !ed.requireLabel() {
			return
		}
		ed.startMask(p, erase)
	case ToolSelect:
		ed.pressSelect(p, sx, sy, mods)
	}
}

func (ed *Editor) requireLabel() bool {
	if ed.label == "" {
		ed.message("select a label first")
		return false
	}
	return true
}

func (ed *Editor) buildPolygon(p annotation.Point) {
	if ed.pending == nil {
		ed.state = StateBuilding
		ed.pending = annotation.New(annotation.KindPolygon, ed.label)
	}
	if len(ed.pending.Points) >= 3 && geometry.NearFirstVertex(p, ed.pending.Points, ed.Camera.Zoom) {
		ed.FinishShape()
		return
	}
	ed.pending.Points = append(ed.pending.Points, p)
	ed.changed()
}

func (ed *Editor) buildPolyline(p annotation.Point) {
	if ed.pending == nil {
		ed.state = StateBuilding
		ed.pending = annotation.New(annotation.KindPolyline, ed.label)
	}
	ed.pending.Points = append(ed.pending.Points, p)
	ed.changed()
}

func (ed *Editor) buildKeypoints(p annotation.Point) {
	if ed.template == nil {
		ed.message("no keypoint template configured")
		return
	}
	if ed.pending == nil {
		ed.state = StateBuilding
		ed.pending = annotation.New(annotation.KindKeypoints, ed.label)
		ed.pending.TemplateID = ed.template.ID
		ed.pending.Connections = ed.template.ConnectionList()
	}
	next := len(ed.pending.Keypoints)
	if next >= len(ed.template.Points) {
		return
	}
	ed.pending.Keypoints = append(ed.pending.Keypoints, annotation.Keypoint{
		Name:    ed.template.Points[next],
		X:       p.X,
		Y:       p.Y,
		Visible: true,
	})
	if len(ed.pending.Keypoints) == len(ed.template.Points) {
		ed.pending.Completed = true
		ed.commit(ed.pending)
		ed.pending = nil
		ed.state = StateIdle
		return
	}
	ed.changed()
}

func (ed *Editor) startMask(p annotation.Point, erase bool) {
	ed.state = StateDrawing
	ed.maskErase = erase
	if ed.pending == nil {
		ed.pending = annotation.New(annotation.KindMask, ed.label)
		ed.pending.Mask = annotation.NewMask(ed.imageW, ed.imageH)
	}
	if erase {
		ed.pending.Mask.Erase(p.X, p.Y, ed.brushRadius)
	} else {
		ed.pending.Mask.Paint(p.X, p.Y, ed.brushRadius)
	}
	ed.anchor = p
	ed.changed()
}

func (ed *Editor) pressSelect(p annotation.Point, sx, sy float64, mods key.Modifiers) {
	zoom := ed.Camera.Zoom

	// A resize handle or vertex of the sole selected shape wins over any
	// other hit.
	if len(ed.selection) == 1 {
		sel := ed.coll.Get(ed.imageID, ed.soleSelection())
		if sel != nil {
			switch sel.Kind {
			case annotation.KindBoundingBox:
				if h := geometry.HandleAt(p, sel.Box, zoom); h != geometry.HandleNone {
					ed.state = StateResizing
					ed.resizeID = sel.ID
					ed.resizeHandle = h
					ed.resizeBefore = sel.Clone()
					ed.anchor = p
					return
				}
			case annotation.KindPolygon, annotation.KindPolyline:
				if v := geometry.NearestVertex(p, sel.Points, zoom); v >= 0 {
					ed.state = StateResizing
					ed.resizeID = sel.ID
					ed.resizeVertex = v
					ed.resizeBefore = sel.Clone()
					ed.anchor = p
					return
				}
			case annotation.KindKeypoints:
				if v := geometry.NearestKeypoint(p, sel.Keypoints, zoom); v >= 0 {
					ed.state = StateResizing
					ed.resizeID = sel.ID
					ed.resizeVertex = v
					ed.resizeBefore = sel.Clone()
					ed.anchor = p
					return
				}
			}
		}
	}

	hit := ed.hitTest(p)
	if hit == nil {
		if mods&key.ModShift == 0 {
			ed.selection = make(map[string]bool)
		}
		ed.changed()
		return
	}

	if mods&key.ModShift != 0 {
		if ed.selection[hit.ID] {
			delete(ed.selection, hit.ID)
		} else {
			ed.selection[hit.ID] = true
		}
	} else if !ed.selection[hit.ID] {
		ed.selection = map[string]bool{hit.ID: true}
	}

	// Polygons are vertex-edit only: no whole-shape dragging.
	if hit.Kind != annotation.KindPolygon {
		ed.dragArmed = true
		ed.dragMoved = false
		ed.dragOrigin = p
	}
	ed.changed()
}

func (ed *Editor) soleSelection() string {
	for id := range ed.selection {
		return id
	}
	return ""
}

// hitTest walks the image's annotations top-down (reverse z-order) and
// returns the first hit, kind by kind. Polygon interiors are deliberately not
// selectable; polygons only respond at their vertices.
func (ed *Editor) hitTest(p annotation.Point) *annotation.Annotation {
	zoom := ed.Camera.Zoom
	list := ed.coll.List(ed.imageID)
	for i := len(list) - 1; i >= 0; i-- {
		a := list[i]
		switch a.Kind {
		case annotation.KindBoundingBox:
			if geometry.PointInBox(p, a.Box, zoom) {
				return a
			}
		case annotation.KindPoint:
			if geometry.PointNearPoint(p, a.Point, zoom) {
				return a
			}
		case annotation.KindPolyline:
			if geometry.PointNearPolyline(p, a.Points, zoom) {
				return a
			}
		case annotation.KindPolygon:
			if geometry.NearestVertex(p, a.Points, zoom) >= 0 {
				return a
			}
		case annotation.KindKeypoints:
			if geometry.NearestKeypoint(p, a.Keypoints, zoom) >= 0 {
				return a
			}
		case annotation.KindMask:
			if a.Mask.Contains(p.X, p.Y) {
				return a
			}
		}
	}
	return nil
}

func (ed *Editor) move(p annotation.Point, sx, sy float64) {
	switch ed.state {
	case StateDrawing:
		if ed.pending == nil {
			return
		}
		switch ed.pending.Kind {
		case annotation.KindBoundingBox:
			ed.pending.Box = normalizeBox(ed.anchor, p)
		case annotation.KindMask:
			ed.pending.Mask.PaintStroke(ed.anchor.X, ed.anchor.Y, p.X, p.Y, ed.brushRadius, ed.maskErase)
			ed.anchor = p
		}
		ed.changed()
	case StatePanning:
		ed.Camera.PanBy(sx-ed.panX, sy-ed.panY)
		ed.panX, ed.panY = sx, sy
		ed.changed()
	case StateResizing:
		ed.applyResize(p)
		ed.changed()
	case StateDragging:
		ed.applyDrag(p)
		ed.changed()
	case StateIdle, StateBuilding:
		if ed.dragArmed {
			dist := geometry.Dist(p, ed.dragOrigin) * ed.Camera.Zoom
			if dist >= dragThreshold {
				ed.beginDrag()
				ed.applyDrag(p)
				ed.changed()
				return
			}
		}
		if ed.pending != nil {
			// Live rubber-band edge for multi-point shapes.
			ed.changed()
		}
	}
}

func (ed *Editor) beginDrag() {
	ed.state = StateDragging
	ed.dragArmed = false
	ed.dragMoved = false
	ed.dragBefore = nil
	for _, a := range ed.coll.List(ed.imageID) {
		if ed.selection[a.ID] {
			ed.dragBefore = append(ed.dragBefore, a.Clone())
		}
	}
}

func (ed *Editor) applyDrag(p annotation.Point) {
	dx := p.X - ed.dragOrigin.X
	dy := p.Y - ed.dragOrigin.Y
	if dx != 0 || dy != 0 {
		ed.dragMoved = true
	}
	for _, before := range ed.dragBefore {
		moved := before.Clone()
		moved.Translate(dx, dy)
		if !ed.coll.Replace(ed.imageID, moved) {
			log.Printf("editor: drag target %s is gone", before.ID)
		}
	}
}

func (ed *Editor) applyResize(p annotation.Point) {
	before := ed.resizeBefore
	if before == nil {
		return
	}
	live := before.Clone()
	switch before.Kind {
	case annotation.KindBoundingBox:
		dx := p.X - ed.anchor.X
		dy := p.Y - ed.anchor.Y
		live.Box = geometry.ResizeBox(before.Box, ed.resizeHandle, dx, dy, annotation.MinBoxSize)
	case annotation.KindPolygon, annotation.KindPolyline:
		if ed.resizeVertex >= 0 && ed.resizeVertex < len(live.Points) {
			live.Points[ed.resizeVertex] = p
		}
	case annotation.KindKeypoints:
		if ed.resizeVertex >= 0 && ed.resizeVertex < len(live.Keypoints) {
			live.Keypoints[ed.resizeVertex].X = p.X
			live.Keypoints[ed.resizeVertex].Y = p.Y
		}
	}
	if !ed.coll.Replace(ed.imageID, live) {
		log.Printf("editor: resize target %s is gone", before.ID)
	}
}

func (ed *Editor) release(p annotation.Point) {
	switch ed.state {
	case StateDrawing:
		if ed.pending == nil {
			ed.state = StateIdle
			return
		}
		switch ed.pending.Kind {
		case annotation.KindBoundingBox:
			ed.pending.Box = normalizeBox(ed.anchor, p)
			ed.pending.Completed = true
			a := ed.pending
			ed.pending = nil
			ed.state = StateIdle
			ed.commit(a)
		case annotation.KindMask:
			ed.pending.Completed = true
			a := ed.pending
			ed.pending = nil
			ed.maskErase = false
			ed.state = StateIdle
			ed.commit(a)
		}
	case StateDragging:
		ed.finishDrag()
	case StateResizing:
		ed.finishResize()
	default:
		ed.dragArmed = false
	}
}

func (ed *Editor) finishDrag() {
	ed.state = StateIdle
	defer func() {
		ed.dragBefore = nil
		ed.dragMoved = false
	}()
	if !ed.dragMoved || len(ed.dragBefore) == 0 {
		return
	}
	var after []*annotation.Annotation
	for _, before := range ed.dragBefore {
		if live := ed.coll.Get(ed.imageID, before.ID); live != nil {
			after = append(after, live.Clone())
		}
	}
	ed.hist.Record(&history.Entry{
		Action:  history.ActionMove,
		ImageID: ed.imageID,
		Before:  ed.dragBefore,
		After:   after,
	})
	ed.changed()
}

func (ed *Editor) finishResize() {
	ed.state = StateIdle
	before := ed.resizeBefore
	ed.resizeBefore = nil
	ed.resizeID = ""
	ed.resizeHandle = geometry.HandleNone
	ed.resizeVertex = -1
	if before == nil {
		return
	}
	live := ed.coll.Get(ed.imageID, before.ID)
	if live == nil {
		return
	}
	ed.hist.Record(&history.Entry{
		Action:  history.ActionResize,
		ImageID: ed.imageID,
		Before:  []*annotation.Annotation{before},
		After:   []*annotation.Annotation{live.Clone()},
	})
	ed.changed()
}

// FinishShape explicitly completes the in-progress multi-point shape: a
// polygon with at least 3 points or a polyline with at least 2. Shapes below
// their threshold are discarded silently.
func (ed *Editor) FinishShape() {
	a := ed.pending
	if a == nil {
		return
	}
	ed.pending = nil
	ed.state = StateIdle
	switch a.Kind {
	case annotation.KindPolygon, annotation.KindPolyline:
		a.Completed = true
		ed.commit(a)
	default:
		// Incomplete keypoint sets are discarded entirely.
		ed.changed()
	}
}

// commit validates the shape and, when valid, adds it to the collection and
// records the addition. Constraint violations are ordinary accidental
// gestures and discard silently.
func (ed *Editor) commit(a *annotation.Annotation) {
	if !a.Valid() {
		ed.changed()
		return
	}
	ed.coll.Add(ed.imageID, a)
	ed.hist.Record(&history.Entry{
		Action:    history.ActionAdd,
		ImageID:   ed.imageID,
		Timestamp: a.CreatedAt,
		After:     []*annotation.Annotation{a.Clone()},
		Indices:   []int{ed.coll.Count(ed.imageID) - 1},
	})
	ed.changed()
}

// DeleteSelected removes every selected annotation and records one entry so a
// single undo restores them all at their former z-order.
func (ed *Editor) DeleteSelected() {
	if len(ed.selection) == 0 {
		return
	}
	var before []*annotation.Annotation
	var indices []int
	for i, a := range ed.coll.List(ed.imageID) {
		if ed.selection[a.ID] {
			before = append(before, a.Clone())
			indices = append(indices, i)
		}
	}
	for _, a := range before {
		ed.coll.Remove(ed.imageID, a.ID)
	}
	ed.selection = make(map[string]bool)
	if len(before) == 0 {
		return
	}
	ed.hist.Record(&history.Entry{
		Action:  history.ActionDelete,
		ImageID: ed.imageID,
		Before:  before,
		Indices: indices,
	})
	ed.changed()
}

// DuplicateSelected clones the selected annotations with fresh ids, offset
// slightly so the copies are visible, and selects the copies.
func (ed *Editor) DuplicateSelected() {
	if len(ed.selection) == 0 {
		return
	}
	var after []*annotation.Annotation
	var indices []int
	newSelection := make(map[string]bool)
	for _, a := range ed.coll.List(ed.imageID) {
		if !ed.selection[a.ID] {
			continue
		}
		dup := a.Clone()
		fresh := annotation.New(a.Kind, a.Label)
		dup.ID = fresh.ID
		dup.CreatedAt = fresh.CreatedAt
		dup.Translate(10, 10)
		ed.coll.Add(ed.imageID, dup)
		after = append(after, dup.Clone())
		indices = append(indices, ed.coll.Count(ed.imageID)-1)
		newSelection[dup.ID] = true
	}
	ed.selection = newSelection
	ed.hist.Record(&history.Entry{
		Action:  history.ActionDuplicate,
		ImageID: ed.imageID,
		After:   after,
		Indices: indices,
	})
	ed.changed()
}

// ClearImage removes every annotation of the current image.
func (ed *Editor) ClearImage() {
	list := ed.coll.List(ed.imageID)
	if len(list) == 0 {
		return
	}
	before := make([]*annotation.Annotation, 0, len(list))
	for _, a := range list {
		before = append(before, a.Clone())
	}
	ed.coll.Clear(ed.imageID)
	ed.selection = make(map[string]bool)
	ed.hist.Record(&history.Entry{
		Action:  history.ActionClear,
		ImageID: ed.imageID,
		Before:  before,
	})
	ed.changed()
}

// Undo reverts the most recent committed mutation of the current image.
func (ed *Editor) Undo() {
	if ed.hist.Undo(ed.imageID, ed.coll) {
		ed.pruneSelection()
		ed.changed()
	}
}

// Redo replays the most recently undone mutation of the current image.
func (ed *Editor) Redo() {
	if ed.hist.Redo(ed.imageID, ed.coll) {
		ed.pruneSelection()
		ed.changed()
	}
}

func (ed *Editor) pruneSelection() {
	for id := range ed.selection {
		if ed.coll.Get(ed.imageID, id) == nil {
			delete(ed.selection, id)
		}
	}
}

func normalizeBox(a, b annotation.Point) annotation.Box {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return annotation.Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
