package export

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// Pascal VOC XML structures, one file per image.

type vocAnnotation struct {
	XMLName  xml.Name    `xml:"annotation"`
	Folder   string      `xml:"folder"`
	Filename string      `xml:"filename"`
	Size     vocSize     `xml:"size"`
	Objects  []vocObject `xml:"object"`
}

type vocSize struct {
	Width  int `xml:"width"`
	Height int `xml:"height"`
	Depth  int `xml:"depth"`
}

type vocObject struct {
	Name      string    `xml:"name"`
	Pose      string    `xml:"pose"`
	Truncated int       `xml:"truncated"`
	Difficult int       `xml:"difficult"`
	BndBox    vocBndBox `xml:"bndbox"`
}

type vocBndBox struct {
	Xmin int `xml:"xmin"`
	Ymin int `xml:"ymin"`
	Xmax int `xml:"xmax"`
	Ymax int `xml:"ymax"`
}

// buildVOC converts one image record into a VOC annotation document. Every
// kind degrades to its bounding box, which is VOC's only geometry.
func buildVOC(img ImageRecord) vocAnnotation {
	doc := vocAnnotation{
		Folder:   filepath.Base(filepath.Dir(img.Path)),
		Filename: filepath.Base(img.Path),
		Size:     vocSize{Width: img.Width, Height: img.Height, Depth: 3},
		Objects:  []vocObject{},
	}
	for _, r := range img.Annotations {
		b := r.Bounds()
		doc.Objects = append(doc.Objects, vocObject{
			Name:      r.Label,
			Pose:      "Unspecified",
			Truncated: 0,
			Difficult: 0,
			BndBox: vocBndBox{
				Xmin: int(math.Floor(b.X)),
				Ymin: int(math.Floor(b.Y)),
				Xmax: int(math.Ceil(b.X + b.Width)),
				Ymax: int(math.Ceil(b.Y + b.Height)),
			},
		})
	}
	return doc
}

// WriteVOC writes one XML file per image into dir.
func WriteVOC(s *Session, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for _, img := range s.Images {
		doc := buildVOC(img)
		data, err := xml.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode voc for %s: %w", img.Path, err)
		}
		name := strings.TrimSuffix(labelFileName(img), ".txt") + ".xml"
		out := append([]byte(xml.Header), data...)
		out = append(out, '\n')
		if err := os.WriteFile(filepath.Join(dir, name), out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
