package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/example/pixelmark/assets"
	"github.com/example/pixelmark/internal/annotation"
	"github.com/example/pixelmark/internal/app"
	"github.com/example/pixelmark/internal/export"
	"github.com/example/pixelmark/internal/imageio"
)

// annotateCmd opens images in the interactive editor.
type annotateCmd struct {
	*root
	fs          *flag.FlagSet
	dir         string
	session     string
	exportDir   string
	templateDir string
	paths       []string
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.StringVar(&a.dir, "dir", "", "annotate every image in this directory")
	fs.StringVar(&a.session, "session", "session.json", "session file to load and save")
	fs.StringVar(&a.exportDir, "export-dir", "export", "directory the export shortcut writes YOLO labels into")
	fs.StringVar(&a.templateDir, "templates", "", "keypoint template directory (overrides the configured one)")
	fs.Usage = usageFunc(a)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	a.paths = fs.Args()
	if a.dir == "" && len(a.paths) == 0 {
		return nil, &UsageError{of: a}
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	paths := append([]string(nil), a.paths...)
	if a.dir != "" {
		listed, err := imageio.ListImageFiles(a.dir)
		if err != nil {
			return fmt.Errorf("list images in %s: %w", a.dir, err)
		}
		paths = append(paths, listed...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found")
	}

	// A pre-existing session pins image ids so its annotations reattach.
	var prior *export.Session
	idByPath := map[string]string{}
	if _, err := os.Stat(a.session); err == nil {
		prior, err = export.ReadSession(a.session)
		if err != nil {
			return err
		}
		for _, img := range prior.Images {
			idByPath[img.Path] = img.ID
		}
	}

	tabs, err := loadTabs(paths, idByPath)
	if err != nil {
		return err
	}

	templates, err := a.loadTemplates()
	if err != nil {
		return err
	}

	application := app.New(
		app.WithImages(tabs),
		app.WithConfig(a.config),
		app.WithTheme(a.activeTheme),
		app.WithTemplates(templates),
		app.WithNotifier(a.notifier),
		app.WithSessionPath(a.session),
		app.WithExportDir(a.exportDir),
	)
	if prior != nil {
		export.RestoreInto(prior, application.Editor().Collection())
	}
	application.Run()
	return nil
}

func loadTabs(paths []string, idByPath map[string]string) ([]*app.ImageTab, error) {
	var tabs []*app.ImageTab
	for _, p := range paths {
		img, err := imageio.Load(p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		id, ok := idByPath[p]
		if !ok {
			id = uuid.Must(uuid.NewV7()).String()
		}
		b := img.Bounds()
		tabs = append(tabs, &app.ImageTab{
			ID:     id,
			Path:   p,
			Title:  filepath.Base(p),
			Image:  img,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}
	return tabs, nil
}

// loadTemplates merges the built-in keypoint templates with the user's
// template directory; a user template with the same id wins.
func (a *annotateCmd) loadTemplates() ([]*annotation.Template, error) {
	builtin, err := annotation.LoadTemplatesFS(assets.Templates(), "templates")
	if err != nil {
		return nil, fmt.Errorf("built-in templates: %w", err)
	}
	dir := a.templateDir
	if dir == "" {
		dir = a.config.TemplateDir
	}
	user, err := annotation.LoadTemplateDir(dir)
	if err != nil {
		return nil, fmt.Errorf("templates in %s: %w", dir, err)
	}
	byID := map[string]int{}
	out := make([]*annotation.Template, 0, len(builtin)+len(user))
	for _, t := range builtin {
		byID[t.ID] = len(out)
		out = append(out, t)
	}
	for _, t := range user {
		if i, ok := byID[t.ID]; ok {
			out[i] = t
			continue
		}
		byID[t.ID] = len(out)
		out = append(out, t)
	}
	return out, nil
}
