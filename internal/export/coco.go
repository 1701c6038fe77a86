package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/pixelmark/internal/annotation"
)

// COCO dataset JSON structures, one file for the whole session.

type cocoDataset struct {
	Info        cocoInfo         `json:"info"`
	Images      []cocoImage      `json:"images"`
	Annotations []cocoAnnotation `json:"annotations"`
	Categories  []cocoCategory   `json:"categories"`
}

type cocoInfo struct {
	Description string `json:"description"`
	Version     string `json:"version"`
	DateCreated string `json:"date_created"`
}

type cocoImage struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type cocoAnnotation struct {
	ID           int         `json:"id"`
	ImageID      int         `json:"image_id"`
	CategoryID   int         `json:"category_id"`
	BBox         [4]float64  `json:"bbox"`
	Area         float64     `json:"area"`
	IsCrowd      int         `json:"iscrowd"`
	Segmentation [][]float64 `json:"segmentation,omitempty"`
	Keypoints    []float64   `json:"keypoints,omitempty"`
	NumKeypoints int         `json:"num_keypoints,omitempty"`
}

type cocoCategory struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Keypoints []string `json:"keypoints,omitempty"`
	Skeleton  [][]int  `json:"skeleton,omitempty"`
}

// BuildCOCO converts a session into a COCO dataset. Categories are numbered
// from 1 in palette order; polygons carry their segmentation, keypoint sets
// their (x, y, visibility) triplets, and everything else degrades to its
// bounding box.
func BuildCOCO(s *Session) *cocoDataset {
	classIdx, names := labelIndex(s)
	ds := &cocoDataset{
		Info: cocoInfo{
			Description: "pixelmark export",
			Version:     fmt.Sprintf("%d", s.Version),
			DateCreated: s.SavedAt.Format("2006-01-02"),
		},
		Images:      []cocoImage{},
		Annotations: []cocoAnnotation{},
	}
	catExtras := map[string]*cocoCategory{}
	for i, name := range names {
		ds.Categories = append(ds.Categories, cocoCategory{ID: i + 1, Name: name})
		catExtras[name] = &ds.Categories[i]
	}

	annID := 1
	for imgNum, img := range s.Images {
		ds.Images = append(ds.Images, cocoImage{
			ID:       imgNum + 1,
			FileName: filepath.Base(img.Path),
			Width:    img.Width,
			Height:   img.Height,
		})
		for _, r := range img.Annotations {
			b := r.Bounds()
			ca := cocoAnnotation{
				ID:         annID,
				ImageID:    imgNum + 1,
				CategoryID: classIdx[r.Label] + 1,
				BBox:       [4]float64{b.X, b.Y, b.Width, b.Height},
				Area:       b.Width * b.Height,
			}
			switch annotation.Kind(r.Kind) {
			case annotation.KindPolygon:
				seg := make([]float64, 0, len(r.Points)*2)
				for _, p := range r.Points {
					seg = append(seg, p.X, p.Y)
				}
				ca.Segmentation = [][]float64{seg}
				ca.Area = polygonArea(r.Points)
			case annotation.KindKeypoints:
				kps := make([]float64, 0, len(r.Keypoints)*3)
				visible := 0
				for _, kp := range r.Keypoints {
					v := 0.0
					if kp.Visible {
						v = 2
						visible++
					}
					kps = append(kps, kp.X, kp.Y, v)
				}
				ca.Keypoints = kps
				ca.NumKeypoints = visible
				if cat := catExtras[r.Label]; cat != nil && len(cat.Keypoints) == 0 {
					for _, kp := range r.Keypoints {
						cat.Keypoints = append(cat.Keypoints, kp.Name)
					}
					for _, c := range r.Connections {
						if len(c) == 2 {
							// COCO skeletons are 1-based.
							cat.Skeleton = append(cat.Skeleton, []int{c[0] + 1, c[1] + 1})
						}
					}
				}
			}
			ds.Annotations = append(ds.Annotations, ca)
			annID++
		}
	}
	return ds
}

// polygonArea is the shoelace formula over the closed polygon.
func polygonArea(pts []PointRecord) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	j := len(pts) - 1
	for i := 0; i < len(pts); i++ {
		sum += (pts[j].X + pts[i].X) * (pts[j].Y - pts[i].Y)
		j = i
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// WriteCOCO writes the whole session as a single COCO JSON file.
func WriteCOCO(s *Session, path string) error {
	data, err := json.MarshalIndent(BuildCOCO(s), "", "  ")
	if err != nil {
		return fmt.Errorf("encode coco: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write coco: %w", err)
	}
	return nil
}
