package editor

import (
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixelmark/internal/annotation"
)

func press(ed *Editor, x, y float64) {
	ed.Mouse(mouse.Event{X: float32(x), Y: float32(y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
}

func pressMod(ed *Editor, x, y float64, mods key.Modifiers) {
	ed.Mouse(mouse.Event{X: float32(x), Y: float32(y), Button: mouse.ButtonLeft, Modifiers: mods, Direction: mouse.DirPress})
}

func move(ed *Editor, x, y float64) {
	ed.Mouse(mouse.Event{X: float32(x), Y: float32(y), Direction: mouse.DirNone})
}

func release(ed *Editor, x, y float64) {
	ed.Mouse(mouse.Event{X: float32(x), Y: float32(y), Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func click(ed *Editor, x, y float64) {
	press(ed, x, y)
	release(ed, x, y)
}

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	ed := New()
	ed.SetImage("img-1", 640, 480)
	ed.SetLabel("car")
	return ed
}

func TestBoundingBoxEndToEnd(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)

	press(ed, 10, 10)
	move(ed, 60, 40)
	release(ed, 110, 80)

	list := ed.Collection().List("img-1")
	if len(list) != 1 {
		t.Fatalf("expected 1 committed annotation, got %d", len(list))
	}
	a := list[0]
	if a.Kind != annotation.KindBoundingBox || a.Label != "car" || !a.Completed {
		t.Fatalf("unexpected annotation %+v", a)
	}
	if a.Box != (annotation.Box{X: 10, Y: 10, Width: 100, Height: 70}) {
		t.Fatalf("unexpected box %+v", a.Box)
	}
	wantID, wantCreated := a.ID, a.CreatedAt

	ed.Undo()
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("expected empty collection after undo, got %d", got)
	}

	ed.Redo()
	list = ed.Collection().List("img-1")
	if len(list) != 1 {
		t.Fatalf("expected box back after redo, got %d", len(list))
	}
	if list[0].ID != wantID || !list[0].CreatedAt.Equal(wantCreated) {
		t.Errorf("redo must restore the identical id and timestamp")
	}
}

func TestBoxCommitThreshold(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)

	press(ed, 100, 100)
	release(ed, 108, 108)
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("8x8 box must be discarded silently, got %d annotations", got)
	}
	if ed.History().CanUndo("img-1") {
		t.Fatalf("a discarded gesture must not be recorded")
	}

	press(ed, 100, 100)
	release(ed, 112, 112)
	if got := ed.Collection().Count("img-1"); got != 1 {
		t.Fatalf("12x12 box must commit, got %d annotations", got)
	}
}

func TestPolygonClosure(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolPolygon)

	click(ed, 0, 0)
	click(ed, 100, 0)
	// Two accumulated points: a click near the first vertex appends, it does
	// not close.
	click(ed, 5, 5)
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("polygon must not close with fewer than 3 points")
	}

	ed.Cancel()
	click(ed, 0, 0)
	click(ed, 100, 0)
	click(ed, 100, 100)
	click(ed, 4, 3) // within 15/zoom of the first vertex
	list := ed.Collection().List("img-1")
	if len(list) != 1 {
		t.Fatalf("expected closed polygon, got %d annotations", len(list))
	}
	if len(list[0].Points) != 3 {
		t.Fatalf("expected 3-point polygon, got %d points", len(list[0].Points))
	}
}

func TestPolylineDoubleClickFinish(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolPolyline)

	click(ed, 0, 0)
	click(ed, 50, 50)
	click(ed, 50, 50) // second click at the same spot inside the window
	list := ed.Collection().List("img-1")
	if len(list) != 1 || list[0].Kind != annotation.KindPolyline {
		t.Fatalf("expected committed polyline, got %v", list)
	}
	if len(list[0].Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(list[0].Points))
	}
}

func TestPolylineExplicitFinishAndCancel(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolPolyline)

	click(ed, 0, 0)
	ed.FinishShape()
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("1-point polyline must be discarded, got %d", got)
	}

	click(ed, 0, 0)
	move(ed, 10, 10)
	click(ed, 40, 0)
	ed.Key(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress})
	if got := ed.Collection().Count("img-1"); got != 1 {
		t.Fatalf("expected explicit finish to commit, got %d", got)
	}

	ed.SetTool(ToolPolygon)
	click(ed, 0, 0)
	click(ed, 30, 0)
	ed.Key(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	if ed.State() != StateIdle {
		t.Fatalf("cancel must return to idle")
	}
	if got := ed.Collection().Count("img-1"); got != 1 {
		t.Fatalf("cancel must not commit, got %d", got)
	}
}

func TestPointToolZoomTolerance(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolPoint)
	click(ed, 100, 100)
	if got := ed.Collection().Count("img-1"); got != 1 {
		t.Fatalf("point must commit immediately, got %d", got)
	}

	ed.SetTool(ToolSelect)
	click(ed, 109, 100) // 9 image units away at zoom 1
	if len(ed.Selection()) != 1 {
		t.Fatalf("expected hit at zoom 1")
	}

	ed.Camera.SetZoom(2)
	click(ed, 218, 200) // same world point at zoom 2, radius shrinks to 5
	if len(ed.Selection()) != 0 {
		t.Fatalf("expected miss at zoom 2")
	}
}

func TestKeypointTemplateAutoComplete(t *testing.T) {
	tpl := &annotation.Template{
		ID:          "tri",
		Name:        "Triangle",
		Points:      []string{"a", "b", "c"},
		Connections: [][]int{{0, 1}, {1, 2}},
	}
	ed := New(WithTemplates([]*annotation.Template{tpl}))
	ed.SetImage("img-1", 640, 480)
	ed.SetLabel("person")
	ed.SetTool(ToolKeypoints)

	click(ed, 10, 10)
	click(ed, 20, 10)
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("incomplete set must not commit, got %d", got)
	}
	click(ed, 15, 20)

	list := ed.Collection().List("img-1")
	if len(list) != 1 {
		t.Fatalf("expected auto-completed set, got %d", len(list))
	}
	a := list[0]
	if !a.Completed || a.TemplateID != "tri" || len(a.Keypoints) != 3 || len(a.Connections) != 2 {
		t.Fatalf("unexpected keypoint set %+v", a)
	}
	if a.Keypoints[1].Name != "b" {
		t.Errorf("keypoints must follow template order, got %q", a.Keypoints[1].Name)
	}
}

func TestKeypointCancelDiscards(t *testing.T) {
	tpl := &annotation.Template{ID: "tri", Points: []string{"a", "b", "c"}}
	ed := New(WithTemplates([]*annotation.Template{tpl}))
	ed.SetImage("img-1", 640, 480)
	ed.SetLabel("person")
	ed.SetTool(ToolKeypoints)

	click(ed, 10, 10)
	click(ed, 20, 10)
	ed.Cancel()
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("cancelled incomplete set must vanish, got %d", got)
	}
}

func TestMaskPaintCommitAndEmptyDiscard(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolMask)

	press(ed, 50, 50)
	move(ed, 80, 50)
	release(ed, 80, 50)

	list := ed.Collection().List("img-1")
	if len(list) != 1 || list[0].Kind != annotation.KindMask {
		t.Fatalf("expected committed mask, got %v", list)
	}
	if !list[0].Mask.Contains(65, 50) {
		t.Errorf("stroke path must be painted")
	}
	if list[0].Mask.Contains(300, 300) {
		t.Errorf("untouched pixels must stay unpainted")
	}

	// An erase-only session produces an empty raster and is discarded.
	ed.Mouse(mouse.Event{X: 400, Y: 400, Button: mouse.ButtonRight, Direction: mouse.DirPress})
	ed.Mouse(mouse.Event{X: 420, Y: 400, Button: mouse.ButtonRight, Direction: mouse.DirRelease})
	if got := ed.Collection().Count("img-1"); got != 1 {
		t.Fatalf("empty mask must be discarded, got %d annotations", got)
	}
}

func TestSelectDragMove(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)
	press(ed, 10, 10)
	release(ed, 110, 80)

	ed.SetTool(ToolSelect)
	press(ed, 50, 40)
	move(ed, 80, 55)
	release(ed, 80, 55)

	a := ed.Collection().List("img-1")[0]
	if a.Box.X != 40 || a.Box.Y != 25 {
		t.Fatalf("expected box dragged by (30,15), got %+v", a.Box)
	}

	ed.Undo()
	a = ed.Collection().List("img-1")[0]
	if a.Box.X != 10 || a.Box.Y != 10 {
		t.Fatalf("undo must restore the pre-drag geometry, got %+v", a.Box)
	}
}

func TestClickSelectWithoutDrag(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)
	press(ed, 10, 10)
	release(ed, 110, 80)

	ed.SetTool(ToolSelect)
	press(ed, 50, 40)
	move(ed, 51, 40) // below the drag threshold
	release(ed, 51, 40)

	if len(ed.Selection()) != 1 {
		t.Fatalf("expected selection")
	}
	a := ed.Collection().List("img-1")[0]
	if a.Box.X != 10 {
		t.Fatalf("a sub-threshold move must not drag, got %+v", a.Box)
	}
	if ed.History().Len("img-1") != 1 {
		t.Fatalf("no move entry may be recorded for a plain click")
	}
}

func TestResizeHandle(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)
	press(ed, 10, 10)
	release(ed, 110, 80)

	ed.SetTool(ToolSelect)
	click(ed, 50, 40) // select

	press(ed, 110, 80) // SE handle
	move(ed, 130, 90)
	release(ed, 130, 90)

	a := ed.Collection().List("img-1")[0]
	if a.Box != (annotation.Box{X: 10, Y: 10, Width: 120, Height: 80}) {
		t.Fatalf("SE resize: got %+v", a.Box)
	}

	ed.Undo()
	a = ed.Collection().List("img-1")[0]
	if a.Box.Width != 100 || a.Box.Height != 70 {
		t.Fatalf("undo resize: got %+v", a.Box)
	}
}

func TestPolygonVertexOnlyEditing(t *testing.T) {
	ed := newTestEditor(t)
	poly := annotation.New(annotation.KindPolygon, "roof")
	poly.Points = []annotation.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}
	poly.Completed = true
	ed.Collection().Add("img-1", poly)

	// Interior clicks never select a polygon.
	click(ed, 60, 30)
	if len(ed.Selection()) != 0 {
		t.Fatalf("polygon interior click must not select")
	}

	// Vertex clicks do.
	click(ed, 100, 2)
	if !ed.Selection()[poly.ID] {
		t.Fatalf("vertex click must select the polygon")
	}

	// Dragging a vertex moves only that vertex.
	press(ed, 100, 0)
	move(ed, 120, 10)
	release(ed, 120, 10)
	got := ed.Collection().Get("img-1", poly.ID)
	if got.Points[1] != (annotation.Point{X: 120, Y: 10}) {
		t.Fatalf("vertex drag: got %+v", got.Points[1])
	}
	if got.Points[0] != (annotation.Point{X: 0, Y: 0}) || got.Points[2] != (annotation.Point{X: 100, Y: 100}) {
		t.Fatalf("other vertices must not move: %+v", got.Points)
	}
}

func TestMultiSelectShiftDrag(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)
	press(ed, 0, 0)
	release(ed, 50, 50)
	press(ed, 200, 200)
	release(ed, 260, 260)

	ed.SetTool(ToolSelect)
	click(ed, 25, 25)
	pressMod(ed, 230, 230, key.ModShift)
	release(ed, 230, 230)
	if len(ed.Selection()) != 2 {
		t.Fatalf("expected 2 selected, got %d", len(ed.Selection()))
	}

	press(ed, 230, 230)
	move(ed, 250, 230)
	release(ed, 250, 230)

	list := ed.Collection().List("img-1")
	if list[0].Box.X != 20 || list[1].Box.X != 220 {
		t.Fatalf("both selected shapes must move by the same delta: %+v %+v", list[0].Box, list[1].Box)
	}

	ed.Undo()
	list = ed.Collection().List("img-1")
	if list[0].Box.X != 0 || list[1].Box.X != 200 {
		t.Fatalf("one undo must restore both: %+v %+v", list[0].Box, list[1].Box)
	}
}

func TestToolSwitchCancelsPending(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolPolygon)
	click(ed, 0, 0)
	click(ed, 50, 0)

	ed.SetTool(ToolBox)
	if ed.State() != StateIdle {
		t.Fatalf("tool switch must cancel the pending shape")
	}
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("pending polygon must be discarded, got %d", got)
	}
}

func TestDeleteDuplicateClear(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)
	press(ed, 0, 0)
	release(ed, 50, 50)

	ed.SetTool(ToolSelect)
	click(ed, 25, 25)
	ed.DuplicateSelected()
	if got := ed.Collection().Count("img-1"); got != 2 {
		t.Fatalf("expected duplicate, got %d", got)
	}
	list := ed.Collection().List("img-1")
	if list[0].ID == list[1].ID {
		t.Fatalf("duplicate must get a fresh id")
	}
	if list[1].Box.X != 10 {
		t.Fatalf("duplicate must be offset, got %+v", list[1].Box)
	}

	ed.DeleteSelected() // the duplicate is selected after duplication
	if got := ed.Collection().Count("img-1"); got != 1 {
		t.Fatalf("expected delete, got %d", got)
	}
	ed.Undo()
	if got := ed.Collection().Count("img-1"); got != 2 {
		t.Fatalf("undo delete failed, got %d", got)
	}

	ed.ClearImage()
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("expected clear, got %d", got)
	}
	ed.Undo()
	if got := ed.Collection().Count("img-1"); got != 2 {
		t.Fatalf("undo clear failed, got %d", got)
	}
}

func TestNoLabelIsAdvisoryNoOp(t *testing.T) {
	var msgs []string
	ed := New(WithOnMessage(func(m string) { msgs = append(msgs, m) }))
	ed.SetImage("img-1", 640, 480)
	ed.SetTool(ToolBox)

	press(ed, 10, 10)
	release(ed, 110, 80)
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("drawing without a label must be a no-op, got %d", got)
	}
	if len(msgs) == 0 {
		t.Fatalf("expected an advisory message")
	}
}

func TestPanningDoesNotTouchModel(t *testing.T) {
	ed := newTestEditor(t)
	ed.Mouse(mouse.Event{X: 100, Y: 100, Button: mouse.ButtonMiddle, Direction: mouse.DirPress})
	move(ed, 130, 80)
	ed.Mouse(mouse.Event{X: 130, Y: 80, Button: mouse.ButtonMiddle, Direction: mouse.DirRelease})

	if ed.Camera.PanX != 30 || ed.Camera.PanY != -20 {
		t.Fatalf("expected raw screen-delta pan, got (%v,%v)", ed.Camera.PanX, ed.Camera.PanY)
	}
	if ed.History().Len("img-1") != 0 {
		t.Fatalf("panning must not record history")
	}
}

func TestSwitchingImagesSwitchesHistory(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolBox)
	press(ed, 0, 0)
	release(ed, 50, 50)

	ed.SetImage("img-2", 320, 240)
	ed.SetLabel("car")
	if ed.History().CanUndo("img-2") {
		t.Fatalf("fresh image must have an empty stack")
	}
	ed.Undo() // no-op on img-2
	if got := ed.Collection().Count("img-1"); got != 1 {
		t.Fatalf("undo on another image must not touch img-1")
	}

	ed.SetImage("img-1", 640, 480)
	ed.Undo()
	if got := ed.Collection().Count("img-1"); got != 0 {
		t.Fatalf("img-1 stack must still be undoable after switching back")
	}
}

func TestHistoryRecordOnlyOnCommit(t *testing.T) {
	ed := newTestEditor(t)
	ed.SetTool(ToolPolygon)
	click(ed, 0, 0)
	click(ed, 50, 0)
	ed.Cancel()
	if ed.History().Len("img-1") != 0 {
		t.Fatalf("cancelled shapes must never reach history")
	}
}
