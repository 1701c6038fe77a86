package annotation

import (
	"testing"
	"testing/fstest"
)

func TestParseTemplate(t *testing.T) {
	data := []byte(`
id: tri
name: Triangle
points: [a, b, c]
connections:
  - [0, 1]
  - [1, 2]
`)
	tpl, err := ParseTemplate(data)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if tpl.ID != "tri" || len(tpl.Points) != 3 {
		t.Fatalf("unexpected template %+v", tpl)
	}
	conns := tpl.ConnectionList()
	if len(conns) != 2 || conns[0] != (Connection{A: 0, B: 1}) {
		t.Fatalf("unexpected connections %+v", conns)
	}
}

func TestParseTemplateRejectsBadConnections(t *testing.T) {
	if _, err := ParseTemplate([]byte("id: x\npoints: [a]\nconnections: [[0, 5]]\n")); err == nil {
		t.Fatalf("expected out-of-range connection error")
	}
	if _, err := ParseTemplate([]byte("points: [a]\n")); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestLoadTemplatesFS(t *testing.T) {
	fsys := fstest.MapFS{
		"tpl/b.yaml":    {Data: []byte("id: b\npoints: [p]\n")},
		"tpl/a.yaml":    {Data: []byte("id: a\npoints: [p, q]\nconnections: [[0, 1]]\n")},
		"tpl/notes.txt": {Data: []byte("ignored")},
	}
	ts, err := LoadTemplatesFS(fsys, "tpl")
	if err != nil {
		t.Fatalf("LoadTemplatesFS: %v", err)
	}
	if len(ts) != 2 || ts[0].ID != "a" || ts[1].ID != "b" {
		t.Fatalf("expected sorted templates a,b; got %+v", ts)
	}
}

func TestLoadTemplateDirMissingIsNotError(t *testing.T) {
	ts, err := LoadTemplateDir("/does/not/exist")
	if err != nil || ts != nil {
		t.Fatalf("missing dir: got %v, %v", ts, err)
	}
}
