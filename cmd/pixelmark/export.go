package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/pixelmark/internal/export"
)

// exportCmd converts a saved session into a dataset format.
type exportCmd struct {
	*root
	fs      *flag.FlagSet
	session string
	out     string
	format  string
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.StringVar(&e.session, "session", "session.json", "session file to export")
	fs.StringVar(&e.out, "out", "", "output directory (yolo, voc) or file (coco); defaults per format")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: e}
	}
	e.format = fs.Arg(0)
	switch e.format {
	case "yolo", "coco", "voc":
	default:
		return nil, fmt.Errorf("unknown export format %q (want yolo, coco, or voc)", e.format)
	}
	return e, nil
}

func (e *exportCmd) Run() error {
	sess, err := export.ReadSession(e.session)
	if err != nil {
		return err
	}

	out := e.out
	switch e.format {
	case "yolo":
		if out == "" {
			out = "yolo"
		}
		if err := export.WriteYOLO(sess, out); err != nil {
			return err
		}
	case "voc":
		if out == "" {
			out = "voc"
		}
		if err := export.WriteVOC(sess, out); err != nil {
			return err
		}
	case "coco":
		if out == "" {
			out = "coco.json"
		}
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := export.WriteCOCO(sess, out); err != nil {
			return err
		}
	}
	if e.notifier != nil {
		e.notifier.Export(e.format, out)
	}
	fmt.Fprintf(os.Stderr, "exported %s to %s\n", e.format, out)
	return nil
}
