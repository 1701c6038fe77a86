package annotation

// Collection is the single source of truth for committed annotations, keyed by
// image identifier. Slice order is z-order: later entries draw on top and are
// hit-tested first. Keys are created lazily on first insert.
type Collection struct {
	byImage map[string][]*Annotation
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byImage: make(map[string][]*Annotation)}
}

// Add appends an annotation at the top of the z-order for the image.
func (c *Collection) Add(imageID string, a *Annotation) {
	if a == nil {
		return
	}
	c.byImage[imageID] = append(c.byImage[imageID], a)
}

// InsertAt restores an annotation at a specific z-order index. Out-of-range
// indices append.
func (c *Collection) InsertAt(imageID string, index int, a *Annotation) {
	if a == nil {
		return
	}
	list := c.byImage[imageID]
	if index < 0 || index > len(list) {
		index = len(list)
	}
	list = append(list, nil)
	copy(list[index+1:], list[index:])
	list[index] = a
	c.byImage[imageID] = list
}

// Get returns the live annotation with the given id, or nil.
func (c *Collection) Get(imageID, id string) *Annotation {
	for _, a := range c.byImage[imageID] {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// IndexOf returns the z-order index of the annotation, or -1.
func (c *Collection) IndexOf(imageID, id string) int {
	for i, a := range c.byImage[imageID] {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Remove deletes the annotation with the given id and returns it with its
// former z-order index, or (nil, -1) when absent.
func (c *Collection) Remove(imageID, id string) (*Annotation, int) {
	list := c.byImage[imageID]
	for i, a := range list {
		if a.ID == id {
			c.byImage[imageID] = append(list[:i], list[i+1:]...)
			if len(c.byImage[imageID]) == 0 {
				delete(c.byImage, imageID)
			}
			return a, i
		}
	}
	return nil, -1
}

// Replace swaps the stored annotation that shares the id of repl, keeping its
// z-order position. It reports whether a matching id existed.
func (c *Collection) Replace(imageID string, repl *Annotation) bool {
	if repl == nil {
		return false
	}
	for i, a := range c.byImage[imageID] {
		if a.ID == repl.ID {
			c.byImage[imageID][i] = repl
			return true
		}
	}
	return false
}

// List returns the image's annotations in z-order. The returned slice is a
// copy; the annotations themselves are live.
func (c *Collection) List(imageID string) []*Annotation {
	list := c.byImage[imageID]
	if len(list) == 0 {
		return nil
	}
	return append([]*Annotation(nil), list...)
}

// Count returns the number of annotations for the image.
func (c *Collection) Count(imageID string) int {
	return len(c.byImage[imageID])
}

// Clear removes and returns all annotations of one image in z-order.
func (c *Collection) Clear(imageID string) []*Annotation {
	list := c.byImage[imageID]
	if len(list) == 0 {
		return nil
	}
	delete(c.byImage, imageID)
	return list
}

// Images lists the image identifiers that currently hold annotations.
func (c *Collection) Images() []string {
	out := make([]string, 0, len(c.byImage))
	for id := range c.byImage {
		out = append(out, id)
	}
	return out
}
