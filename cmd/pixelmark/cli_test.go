package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/pixelmark/internal/config"
	"github.com/example/pixelmark/internal/export"
)

func TestParseAnnotateRequiresImages(t *testing.T) {
	_, err := parseAnnotateCmd(nil, &root{program: "pixelmark annotate"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "pixelmark annotate") {
		t.Errorf("usage text missing program name: %q", uerr.Error())
	}
}

func TestParseExportRejectsUnknownFormat(t *testing.T) {
	_, err := parseExportCmd([]string{"tfrecord"}, &root{program: "pixelmark export"})
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "unknown export format"; !strings.Contains(err.Error(), want) {
		t.Errorf("expected error to contain %q, got %v", want, err)
	}
}

func TestParseExportRequiresFormat(t *testing.T) {
	_, err := parseExportCmd(nil, &root{program: "pixelmark export"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseImagesRequiresDir(t *testing.T) {
	_, err := parseImagesCmd(nil, &root{program: "pixelmark images"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestConfigUnknownSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"frobnicate"}, &root{program: "pixelmark config", config: config.New()})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error")
	} else if want := "unknown config command"; !strings.Contains(err.Error(), want) {
		t.Errorf("expected error to contain %q, got %v", want, err)
	}
}

func TestExportRunMissingSession(t *testing.T) {
	cmd, err := parseExportCmd([]string{"-session", filepath.Join(t.TempDir(), "missing.json"), "yolo"}, &root{program: "pixelmark export"})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error for missing session file")
	}
}

func TestExportRunYOLO(t *testing.T) {
	dir := t.TempDir()
	sess := &export.Session{
		Version: export.SessionVersion,
		SavedAt: time.Now(),
		Labels:  []export.Label{{Name: "car"}},
		Images: []export.ImageRecord{{
			ID:     "img-1",
			Path:   "photos/one.jpg",
			Width:  100,
			Height: 100,
			Annotations: []export.Record{{
				ID:    "a-1",
				Label: "car",
				Kind:  "boundingbox",
				Box:   &export.BoxRecord{X: 10, Y: 10, Width: 40, Height: 20},
			}},
		}},
	}
	sessionPath := filepath.Join(dir, "session.json")
	if err := export.WriteSession(sess, sessionPath); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "yolo")
	cmd, err := parseExportCmd([]string{"-session", sessionPath, "-out", out, "yolo"}, &root{program: "pixelmark export"})
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	labels, err := os.ReadFile(filepath.Join(out, "one.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(labels), "0 ") {
		t.Errorf("label file = %q, want class 0 line", labels)
	}
	classes, err := os.ReadFile(filepath.Join(out, "classes.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(classes) != "car\n" {
		t.Errorf("classes.txt = %q", classes)
	}
}

func TestLoadTemplatesMergesUserOverBuiltin(t *testing.T) {
	dir := t.TempDir()
	override := "id: person\nname: Custom Person\npoints: [head, tail]\nconnections: [[0, 1]]\n"
	if err := os.WriteFile(filepath.Join(dir, "person.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	a := &annotateCmd{root: &root{config: config.New()}, templateDir: dir}
	templates, err := a.loadTemplates()
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, tpl := range templates {
		if tpl.ID == "person" {
			found = true
			if tpl.Name != "Custom Person" {
				t.Errorf("user template did not override built-in: %+v", tpl)
			}
		}
	}
	if !found {
		t.Error("person template missing")
	}
}
