package history

import (
	"fmt"
	"testing"

	"github.com/example/pixelmark/internal/annotation"
)

func addEntry(img string, a *annotation.Annotation, index int) *Entry {
	return &Entry{
		Action:  ActionAdd,
		ImageID: img,
		After:   []*annotation.Annotation{a.Clone()},
		Indices: []int{index},
	}
}

func newBox(label string, x float64) *annotation.Annotation {
	a := annotation.New(annotation.KindBoundingBox, label)
	a.Box = annotation.Box{X: x, Y: 0, Width: 20, Height: 20}
	a.Completed = true
	return a
}

func TestUndoRedoIdempotence(t *testing.T) {
	const img = "img-1"
	coll := annotation.NewCollection()
	h := New(0)

	const n = 5
	var ids []string
	for i := 0; i < n; i++ {
		a := newBox(fmt.Sprintf("car-%d", i), float64(i*30))
		coll.Add(img, a)
		ids = append(ids, a.ID)
		h.Record(addEntry(img, a, i))
	}

	for i := 0; i < n; i++ {
		if !h.Undo(img, coll) {
			t.Fatalf("undo %d failed", i)
		}
	}
	if got := coll.Count(img); got != 0 {
		t.Fatalf("expected empty collection after %d undos, got %d", n, got)
	}
	if h.Undo(img, coll) {
		t.Fatalf("undo past the beginning should be a no-op")
	}

	for i := 0; i < n; i++ {
		if !h.Redo(img, coll) {
			t.Fatalf("redo %d failed", i)
		}
	}
	if h.Redo(img, coll) {
		t.Fatalf("redo past the end should be a no-op")
	}

	list := coll.List(img)
	if len(list) != n {
		t.Fatalf("expected %d annotations, got %d", n, len(list))
	}
	for i, a := range list {
		if a.ID != ids[i] {
			t.Errorf("z-order slot %d: got id %s, want %s", i, a.ID, ids[i])
		}
		if a.Box.X != float64(i*30) {
			t.Errorf("slot %d: got x %v, want %v", i, a.Box.X, i*30)
		}
	}
}

func TestBoundedHistoryDropsOldest(t *testing.T) {
	const img = "img-1"
	coll := annotation.NewCollection()
	h := New(3)

	for i := 0; i < 10; i++ {
		a := newBox("car", float64(i))
		coll.Add(img, a)
		h.Record(addEntry(img, a, i))
	}
	if got := h.Len(img); got != 3 {
		t.Fatalf("expected stack bounded to 3, got %d", got)
	}

	// Only the 3 most recent adds remain undoable.
	undone := 0
	for h.Undo(img, coll) {
		undone++
	}
	if undone != 3 {
		t.Errorf("expected 3 undos, got %d", undone)
	}
	if got := coll.Count(img); got != 7 {
		t.Errorf("expected 7 annotations to survive, got %d", got)
	}
}

func TestRecordTruncatesRedoFuture(t *testing.T) {
	const img = "img-1"
	coll := annotation.NewCollection()
	h := New(0)

	a := newBox("a", 0)
	coll.Add(img, a)
	h.Record(addEntry(img, a, 0))

	b := newBox("b", 30)
	coll.Add(img, b)
	h.Record(addEntry(img, b, 1))

	h.Undo(img, coll) // drop b

	c := newBox("c", 60)
	coll.Add(img, c)
	h.Record(addEntry(img, c, 1))

	if h.Redo(img, coll) {
		t.Fatalf("redo should be empty after a fresh record")
	}
	if got := h.Len(img); got != 2 {
		t.Errorf("expected 2 entries after truncation, got %d", got)
	}
}

func TestUndoDeleteRestoresZOrder(t *testing.T) {
	const img = "img-1"
	coll := annotation.NewCollection()
	h := New(0)

	var all []*annotation.Annotation
	for i := 0; i < 3; i++ {
		a := newBox("x", float64(i))
		coll.Add(img, a)
		all = append(all, a)
	}
	middle := all[1]
	removed, idx := coll.Remove(img, middle.ID)
	h.Record(&Entry{
		Action:  ActionDelete,
		ImageID: img,
		Before:  []*annotation.Annotation{removed.Clone()},
		Indices: []int{idx},
	})

	h.Undo(img, coll)
	list := coll.List(img)
	if len(list) != 3 || list[1].ID != middle.ID {
		t.Fatalf("expected middle annotation restored at slot 1, got %v", list)
	}
}

func TestUndoModifyRestoresBefore(t *testing.T) {
	const img = "img-1"
	coll := annotation.NewCollection()
	h := New(0)

	a := newBox("x", 0)
	coll.Add(img, a)

	before := a.Clone()
	a.Box.X = 500
	h.Record(&Entry{
		Action:  ActionMove,
		ImageID: img,
		Before:  []*annotation.Annotation{before},
		After:   []*annotation.Annotation{a.Clone()},
	})

	h.Undo(img, coll)
	if got := coll.Get(img, a.ID).Box.X; got != 0 {
		t.Errorf("undo move: got x %v, want 0", got)
	}
	h.Redo(img, coll)
	if got := coll.Get(img, a.ID).Box.X; got != 500 {
		t.Errorf("redo move: got x %v, want 500", got)
	}
}

func TestHistoryScopedPerImage(t *testing.T) {
	coll := annotation.NewCollection()
	h := New(0)

	a := newBox("a", 0)
	coll.Add("img-1", a)
	h.Record(addEntry("img-1", a, 0))

	if h.CanUndo("img-2") {
		t.Errorf("image 2 must have its own empty stack")
	}
	if !h.CanUndo("img-1") {
		t.Errorf("image 1 should be undoable")
	}
	if h.Undo("img-2", coll) {
		t.Errorf("undo on the wrong image must be a no-op")
	}
	if coll.Count("img-1") != 1 {
		t.Errorf("image 1 annotations must be untouched")
	}
}

func TestClearUndo(t *testing.T) {
	const img = "img-1"
	coll := annotation.NewCollection()
	h := New(0)

	var before []*annotation.Annotation
	for i := 0; i < 4; i++ {
		a := newBox("x", float64(i))
		coll.Add(img, a)
		before = append(before, a.Clone())
	}
	coll.Clear(img)
	h.Record(&Entry{Action: ActionClear, ImageID: img, Before: before})

	h.Undo(img, coll)
	if got := coll.Count(img); got != 4 {
		t.Fatalf("expected 4 restored, got %d", got)
	}
	h.Redo(img, coll)
	if got := coll.Count(img); got != 0 {
		t.Fatalf("expected cleared again, got %d", got)
	}
}
