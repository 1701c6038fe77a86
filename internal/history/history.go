// Package history implements the per-image undo/redo stacks. Entries hold
// deep-cloned before/after annotation state so replay never depends on the
// live, mutable model.
package history

import (
	"log"
	"time"

	"github.com/example/pixelmark/internal/annotation"
)

// Action names the mutation a history entry records.
type Action string

const (
	ActionAdd       Action = "add"
	ActionDelete    Action = "delete"
	ActionModify    Action = "modify"
	ActionMove      Action = "move"
	ActionResize    Action = "resize"
	ActionDuplicate Action = "duplicate"
	ActionClear     Action = "clear"
)

// Entry is one recorded mutation. Before and After hold clones of the affected
// annotations; Indices preserves the z-order slots for add/delete replay,
// aligned with Before (delete, clear) or After (add, duplicate).
type Entry struct {
	Action    Action
	ImageID   string
	Timestamp time.Time
	Before    []*annotation.Annotation
	After     []*annotation.Annotation
	Indices   []int
}

func (e *Entry) indexAt(i int) int {
	if i < len(e.Indices) {
		return e.Indices[i]
	}
	return -1
}

// DefaultLimit bounds each per-image stack.
const DefaultLimit = 100

type stack struct {
	entries []*Entry
	// index points at the most recently applied entry; -1 means before any.
	index int
}

// History keeps one bounded undo/redo stack per image. Switching images
// switches which stack is active; stacks are never merged.
type History struct {
	limit  int
	stacks map[string]*stack
}

// New returns a History bounded to limit entries per image. A non-positive
// limit falls back to DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit, stacks: make(map[string]*stack)}
}

func (h *History) stackFor(imageID string) *stack {
	s, ok := h.stacks[imageID]
	if !ok {
		s = &stack{index: -1}
		h.stacks[imageID] = s
	}
	return s
}

// Record appends an entry for the image, discarding any redo-able future and
// dropping the oldest entry when the stack exceeds its bound.
func (h *History) Record(e *Entry) {
	if e == nil || e.ImageID == "" {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	s := h.stackFor(e.ImageID)
	s.entries = append(s.entries[:s.index+1], e)
	s.index = len(s.entries) - 1
	if len(s.entries) > h.limit {
		drop := len(s.entries) - h.limit
		s.entries = append([]*Entry(nil), s.entries[drop:]...)
		s.index -= drop
	}
}

// CanUndo reports whether the image has an entry to undo.
func (h *History) CanUndo(imageID string) bool {
	s, ok := h.stacks[imageID]
	return ok && s.index >= 0
}

// CanRedo reports whether the image has an undone entry to replay.
func (h *History) CanRedo(imageID string) bool {
	s, ok := h.stacks[imageID]
	return ok && s.index < len(s.entries)-1
}

// Len returns the number of recorded entries for the image.
func (h *History) Len(imageID string) int {
	s, ok := h.stacks[imageID]
	if !ok {
		return 0
	}
	return len(s.entries)
}

// Undo applies the inverse of the current entry to the collection and steps
// the cursor back. It reports whether anything was undone.
func (h *History) Undo(imageID string, coll *annotation.Collection) bool {
	s, ok := h.stacks[imageID]
	if !ok || s.index < 0 {
		return false
	}
	if s.index >= len(s.entries) {
		log.Printf("history: cursor %d out of range for %s", s.index, imageID)
		s.index = len(s.entries) - 1
		return false
	}
	applyInverse(s.entries[s.index], coll)
	s.index--
	return true
}

// Redo re-applies the next entry's forward effect. It reports whether
// anything was redone.
func (h *History) Redo(imageID string, coll *annotation.Collection) bool {
	s, ok := h.stacks[imageID]
	if !ok || s.index >= len(s.entries)-1 {
		return false
	}
	s.index++
	applyForward(s.entries[s.index], coll)
	return true
}

func applyForward(e *Entry, coll *annotation.Collection) {
	switch e.Action {
	case ActionAdd, ActionDuplicate:
		for i, a := range e.After {
			coll.InsertAt(e.ImageID, e.indexAt(i), a.Clone())
		}
	case ActionDelete:
		for _, a := range e.Before {
			coll.Remove(e.ImageID, a.ID)
		}
	case ActionModify, ActionMove, ActionResize:
		for _, a := range e.After {
			if !coll.Replace(e.ImageID, a.Clone()) {
				log.Printf("history: redo %s: annotation %s is gone", e.Action, a.ID)
			}
		}
	case ActionClear:
		coll.Clear(e.ImageID)
	}
}

func applyInverse(e *Entry, coll *annotation.Collection) {
	switch e.Action {
	case ActionAdd, ActionDuplicate:
		for _, a := range e.After {
			if removed, _ := coll.Remove(e.ImageID, a.ID); removed == nil {
				log.Printf("history: undo %s: annotation %s is gone", e.Action, a.ID)
			}
		}
	case ActionDelete:
		// Reinsert lowest z-order first so recorded indices stay valid.
		for i, a := range e.Before {
			coll.InsertAt(e.ImageID, e.indexAt(i), a.Clone())
		}
	case ActionModify, ActionMove, ActionResize:
		for _, a := range e.Before {
			if !coll.Replace(e.ImageID, a.Clone()) {
				log.Printf("history: undo %s: annotation %s is gone", e.Action, a.ID)
			}
		}
	case ActionClear:
		for _, a := range e.Before {
			coll.Add(e.ImageID, a.Clone())
		}
	}
}
