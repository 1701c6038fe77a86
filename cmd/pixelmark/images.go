package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/example/pixelmark/internal/imageio"
)

// imagesCmd lists the annotatable images in a directory.
type imagesCmd struct {
	*root
	fs  *flag.FlagSet
	dir string
}

func (i *imagesCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseImagesCmd(args []string, r *root) (*imagesCmd, error) {
	fs := flag.NewFlagSet("images", flag.ExitOnError)
	i := &imagesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(i)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: i}
	}
	i.dir = fs.Arg(0)
	return i, nil
}

func (i *imagesCmd) Run() error {
	paths, err := imageio.ListImageFiles(i.dir)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, p := range paths {
		width, height, err := imageio.Size(p)
		if err != nil {
			fmt.Fprintf(w, "%s\t(unreadable: %v)\n", p, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%dx%d\n", p, width, height)
	}
	return w.Flush()
}
