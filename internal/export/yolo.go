package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// YOLOLines renders one image's annotations as YOLO label lines: class index
// followed by normalized center and size, one annotation per line. Kinds
// without a native YOLO representation degrade to their bounding box.
func YOLOLines(img ImageRecord, classIdx map[string]int) []string {
	if img.Width <= 0 || img.Height <= 0 {
		return nil
	}
	var lines []string
	w := float64(img.Width)
	h := float64(img.Height)
	for _, r := range img.Annotations {
		idx, ok := classIdx[r.Label]
		if !ok {
			continue
		}
		b := r.Bounds()
		cx := clamp01((b.X + b.Width/2) / w)
		cy := clamp01((b.Y + b.Height/2) / h)
		bw := clamp01(b.Width / w)
		bh := clamp01(b.Height / h)
		lines = append(lines, fmt.Sprintf("%d %.6f %.6f %.6f %.6f", idx, cx, cy, bw, bh))
	}
	return lines
}

// YOLOText renders a single image's YOLO label lines as one newline-joined
// string, suitable for placing on the clipboard. Returns "" when the image
// has no exportable annotations.
func YOLOText(s *Session, imageID string) string {
	classIdx, _ := labelIndex(s)
	for _, img := range s.Images {
		if img.ID != imageID {
			continue
		}
		lines := YOLOLines(img, classIdx)
		if len(lines) == 0 {
			return ""
		}
		return strings.Join(lines, "\n") + "\n"
	}
	return ""
}

// WriteYOLO writes one .txt label file per image into dir, plus classes.txt
// listing the class names in index order.
func WriteYOLO(s *Session, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	classIdx, names := labelIndex(s)
	for _, img := range s.Images {
		lines := YOLOLines(img, classIdx)
		name := labelFileName(img)
		content := strings.Join(lines, "\n")
		if content != "" {
			content += "\n"
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	classes := strings.Join(names, "\n")
	if classes != "" {
		classes += "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "classes.txt"), []byte(classes), 0o644); err != nil {
		return fmt.Errorf("write classes.txt: %w", err)
	}
	return nil
}

func labelFileName(img ImageRecord) string {
	base := filepath.Base(img.Path)
	if base == "." || base == "" {
		base = img.ID
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".txt"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
