// Package export turns a frozen snapshot of the annotation model into the
// interchange formats: a native JSON session plus YOLO, COCO, and Pascal VOC.
// Exporters only ever read session data; they never touch the live model.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/example/pixelmark/internal/annotation"
)

// SessionVersion is bumped when the session layout changes incompatibly.
const SessionVersion = 1

// Label is one entry of the label palette, with its display color in
// #RRGGBB form.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Session is a whole annotation session frozen to plain data.
type Session struct {
	Version int           `json:"version"`
	SavedAt time.Time     `json:"saved_at"`
	Labels  []Label       `json:"labels,omitempty"`
	Images  []ImageRecord `json:"images"`
}

// ImageRecord holds one image's identity, dimensions, and annotations in
// z-order.
type ImageRecord struct {
	ID          string   `json:"id"`
	Path        string   `json:"path"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Annotations []Record `json:"annotations"`
}

// BoxRecord is an image-space rectangle.
type BoxRecord struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointRecord is an image-space coordinate.
type PointRecord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// KeypointRecord is one named keypoint.
type KeypointRecord struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// Record is one annotation frozen to plain data. Kind selects which payload
// fields are set. Masks lose their raster here and keep only their tight
// bounding box; raster persistence is out of scope.
type Record struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	Kind        string           `json:"kind"`
	CreatedAt   time.Time        `json:"created_at"`
	Box         *BoxRecord       `json:"box,omitempty"`
	Points      []PointRecord    `json:"points,omitempty"`
	Point       *PointRecord     `json:"point,omitempty"`
	TemplateID  string           `json:"template_id,omitempty"`
	Keypoints   []KeypointRecord `json:"keypoints,omitempty"`
	Connections [][]int          `json:"connections,omitempty"`
}

// ImageInfo describes one image fed into a session snapshot.
type ImageInfo struct {
	ID     string
	Path   string
	Width  int
	Height int
}

// BuildSession freezes the collection into a Session. Only completed
// annotations are exported; images without annotations still appear so
// exporters can emit empty label files for them.
func BuildSession(coll *annotation.Collection, images []ImageInfo, labels []Label) *Session {
	s := &Session{Version: SessionVersion, SavedAt: time.Now(), Labels: labels}
	for _, info := range images {
		rec := ImageRecord{
			ID:          info.ID,
			Path:        info.Path,
			Width:       info.Width,
			Height:      info.Height,
			Annotations: []Record{},
		}
		for _, a := range coll.List(info.ID) {
			if !a.Completed {
				continue
			}
			rec.Annotations = append(rec.Annotations, freeze(a))
		}
		s.Images = append(s.Images, rec)
	}
	return s
}

func freeze(a *annotation.Annotation) Record {
	r := Record{
		ID:        a.ID,
		Label:     a.Label,
		Kind:      string(a.Kind),
		CreatedAt: a.CreatedAt,
	}
	switch a.Kind {
	case annotation.KindBoundingBox, annotation.KindMask:
		b := a.Bounds()
		r.Box = &BoxRecord{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	case annotation.KindPolygon, annotation.KindPolyline:
		for _, p := range a.Points {
			r.Points = append(r.Points, PointRecord{X: p.X, Y: p.Y})
		}
	case annotation.KindPoint:
		r.Point = &PointRecord{X: a.Point.X, Y: a.Point.Y}
	case annotation.KindKeypoints:
		r.TemplateID = a.TemplateID
		for _, kp := range a.Keypoints {
			r.Keypoints = append(r.Keypoints, KeypointRecord{Name: kp.Name, X: kp.X, Y: kp.Y, Visible: kp.Visible})
		}
		for _, c := range a.Connections {
			r.Connections = append(r.Connections, []int{c.A, c.B})
		}
	}
	return r
}

// Bounds returns the record's tight bounding box, degrading every kind the
// same way the live model does.
func (r Record) Bounds() BoxRecord {
	switch {
	case r.Box != nil:
		return *r.Box
	case r.Point != nil:
		return BoxRecord{X: r.Point.X, Y: r.Point.Y}
	case len(r.Points) > 0:
		return pointBounds(r.Points)
	case len(r.Keypoints) > 0:
		pts := make([]PointRecord, 0, len(r.Keypoints))
		for _, kp := range r.Keypoints {
			pts = append(pts, PointRecord{X: kp.X, Y: kp.Y})
		}
		return pointBounds(pts)
	}
	return BoxRecord{}
}

func pointBounds(pts []PointRecord) BoxRecord {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return BoxRecord{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// WriteSession writes the session as indented JSON.
func WriteSession(s *Session, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// ReadSession loads a session JSON file.
func ReadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Version > SessionVersion {
		return nil, fmt.Errorf("session version %d is newer than supported %d", s.Version, SessionVersion)
	}
	return &s, nil
}

// RestoreInto thaws a session's annotations back into a live collection, in
// saved z-order. Mask records come back as bounding boxes: the raster is not
// persisted, only its tight bounds survive a save cycle.
func RestoreInto(s *Session, coll *annotation.Collection) {
	for _, img := range s.Images {
		for _, r := range img.Annotations {
			if a := thaw(r); a != nil {
				coll.Add(img.ID, a)
			}
		}
	}
}

func thaw(r Record) *annotation.Annotation {
	kind := annotation.Kind(r.Kind)
	if kind == annotation.KindMask {
		kind = annotation.KindBoundingBox
	}
	a := annotation.New(kind, r.Label)
	if r.ID != "" {
		a.ID = r.ID
	}
	if !r.CreatedAt.IsZero() {
		a.CreatedAt = r.CreatedAt
	}
	a.Completed = true
	switch kind {
	case annotation.KindBoundingBox:
		if r.Box == nil {
			return nil
		}
		a.Box = annotation.Box{X: r.Box.X, Y: r.Box.Y, Width: r.Box.Width, Height: r.Box.Height}
	case annotation.KindPolygon, annotation.KindPolyline:
		for _, p := range r.Points {
			a.Points = append(a.Points, annotation.Point{X: p.X, Y: p.Y})
		}
	case annotation.KindPoint:
		if r.Point == nil {
			return nil
		}
		a.Point = annotation.Point{X: r.Point.X, Y: r.Point.Y}
	case annotation.KindKeypoints:
		a.TemplateID = r.TemplateID
		for _, kp := range r.Keypoints {
			a.Keypoints = append(a.Keypoints, annotation.Keypoint{Name: kp.Name, X: kp.X, Y: kp.Y, Visible: kp.Visible})
		}
		for _, c := range r.Connections {
			if len(c) == 2 {
				a.Connections = append(a.Connections, annotation.Connection{A: c[0], B: c[1]})
			}
		}
	default:
		return nil
	}
	return a
}

// labelIndex maps label names to their palette position. Labels missing from
// the palette are appended in first-seen order so every annotation exports.
func labelIndex(s *Session) (map[string]int, []string) {
	idx := make(map[string]int)
	var names []string
	for _, l := range s.Labels {
		if _, ok := idx[l.Name]; !ok {
			idx[l.Name] = len(names)
			names = append(names, l.Name)
		}
	}
	for _, img := range s.Images {
		for _, r := range img.Annotations {
			if _, ok := idx[r.Label]; !ok {
				idx[r.Label] = len(names)
				names = append(names, r.Label)
			}
		}
	}
	return idx, names
}
