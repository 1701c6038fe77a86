package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/example/pixelmark/assets"
	"github.com/example/pixelmark/internal/annotation"
)

// templatesCmd lists the keypoint templates the keypoints tool can place.
type templatesCmd struct {
	*root
	fs  *flag.FlagSet
	dir string
}

func (t *templatesCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func parseTemplatesCmd(args []string, r *root) (*templatesCmd, error) {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	t := &templatesCmd{root: r, fs: fs}
	fs.StringVar(&t.dir, "dir", "", "keypoint template directory (overrides the configured one)")
	fs.Usage = usageFunc(t)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *templatesCmd) Run() error {
	builtin, err := annotation.LoadTemplatesFS(assets.Templates(), "templates")
	if err != nil {
		return fmt.Errorf("built-in templates: %w", err)
	}
	dir := t.dir
	if dir == "" {
		dir = t.config.TemplateDir
	}
	user, err := annotation.LoadTemplateDir(dir)
	if err != nil {
		return fmt.Errorf("templates in %s: %w", dir, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	seen := map[string]bool{}
	for _, tpl := range user {
		seen[tpl.ID] = true
		fmt.Fprintf(w, "%s\t%s\t%d points\t%d connections\tuser\n", tpl.ID, tpl.Name, len(tpl.Points), len(tpl.Connections))
	}
	for _, tpl := range builtin {
		if seen[tpl.ID] {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d points\t%d connections\tbuilt-in\n", tpl.ID, tpl.Name, len(tpl.Points), len(tpl.Connections))
	}
	return w.Flush()
}
